package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionManager mints and verifies the signed session tokens handed out
// after login.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for ident.
func (m *SessionManager) Issue(ident Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":     ident.ID,
		"email":   ident.Email,
		"name":    ident.Name,
		"picture": ident.AvatarURL,
		"exp":     time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses tokenString and reconstructs the identity it carries.
func (m *SessionManager) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("session token has no subject")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &Identity{ID: sub, Email: email, Name: name, AvatarURL: picture}, nil
}

// SessionProvider resolves identities from the session token carried in ctx.
type SessionProvider struct {
	sessions *SessionManager
}

func NewSessionProvider(sessions *SessionManager) *SessionProvider {
	return &SessionProvider{sessions: sessions}
}

func (p *SessionProvider) Current(ctx context.Context) (*Identity, error) {
	raw, ok := TokenFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	return p.sessions.Verify(raw)
}
