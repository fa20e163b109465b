package gallery

import "errors"

// Failure kinds surfaced to the presentation layer. The messages are shown to
// users as-is, so they stay short and free of internals. Anything not wrapped
// in one of these is an unexpected transport or runtime failure.
var (
	ErrUnauthenticated = errors.New("sign in to manage photos")
	ErrNotFound        = errors.New("photo not found")
	ErrForbidden       = errors.New("only the uploader can delete this photo")
	ErrStorageWrite    = errors.New("uploading the file failed")
	ErrRecordWrite     = errors.New("saving the photo details failed")
	ErrRecordDelete    = errors.New("deleting the photo failed")
)
