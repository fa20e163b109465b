package domain

import "time"

// Photo is one row in the photos table. The binary content lives in the blob
// store; Src is the public URL pointing at it.
type Photo struct {
	ID          int64     `json:"id"`
	Src         string    `json:"src"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	UserEmail   string    `json:"user_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// UserAvatar comes from the uploader's session and is never persisted.
	UserAvatar string `json:"user_avatar,omitempty"`
}

// FallbackSrc is the image served when the gallery has nothing real to show.
const FallbackSrc = "/img1.png"

// FallbackPhotos is the placeholder gallery returned when listing fails or the
// table is empty. Always exactly one element, so callers never render an empty
// wall.
func FallbackPhotos() []Photo {
	return []Photo{
		{ID: 1, Src: FallbackSrc, Description: "Opening day on the slopes"},
	}
}
