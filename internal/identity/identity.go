package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrNoSession is returned when no verifiable session accompanies the request.
var ErrNoSession = errors.New("no active session")

// Identity is the current caller as established by the login flow. It is read
// fresh per operation and never persisted.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DisplayName returns the name to show for this identity, falling back to the
// local part of the email when no display name is set.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	local, _, _ := strings.Cut(i.Email, "@")
	return local
}

// Provider resolves the caller behind ctx.
type Provider interface {
	Current(ctx context.Context) (*Identity, error)
}
