package blob

import (
	"net/url"
	"regexp"
	"strings"
)

// publicPrefix is the route under which this service exposes the photos blob
// namespace.
const publicPrefix = "/storage/v1/object/public/photos/"

var publicObjectRE = regexp.MustCompile(`/storage/v1/object/public/photos/(.+)$`)

// URLScheme turns storage paths into public URLs and back.
type URLScheme struct {
	// Base is the externally visible origin, e.g. "https://trip.example.com".
	Base string
}

// Public returns the public URL for the object at path.
func (s URLScheme) Public(path string) string {
	return strings.TrimSuffix(s.Base, "/") + publicPrefix + path
}

// ParsePublicURL extracts the storage path from a public object URL. It
// reports false for anything that does not match the public-object shape, in
// which case callers skip blob-level operations.
func ParsePublicURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	m := publicObjectRE.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}
