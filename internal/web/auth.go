package web

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/jmoon-dev/skigallery/internal/config"
	"github.com/jmoon-dev/skigallery/internal/identity"
)

const stateCookieName = "sg_auth_state"

// Authenticator runs the OIDC login flow and turns verified ID tokens into
// session cookies.
type Authenticator struct {
	oauth      *oauth2.Config
	verifier   *oidc.IDTokenVerifier
	sessions   *identity.SessionManager
	cookieName string
	sessionTTL time.Duration
}

func NewAuthenticator(ctx context.Context, props config.AuthProperties, sessions *identity.SessionManager) (*Authenticator, error) {
	provider, err := oidc.NewProvider(ctx, props.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &Authenticator{
		oauth: &oauth2.Config{
			ClientID:     props.ClientID,
			ClientSecret: props.ClientSecret,
			RedirectURL:  props.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier:   provider.Verifier(&oidc.Config{ClientID: props.ClientID}),
		sessions:   sessions,
		cookieName: props.CookieName,
		sessionTTL: props.SessionTTL,
	}, nil
}

func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *Server) Login(c *gin.Context) {
	if s.auth == nil {
		c.JSON(http.StatusServiceUnavailable, fail("login is not configured"))
		return
	}

	state, err := randString(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("could not start login"))
		return
	}
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, s.auth.oauth.AuthCodeURL(state))
}

func (s *Server) Callback(c *gin.Context) {
	if s.auth == nil {
		c.JSON(http.StatusServiceUnavailable, fail("login is not configured"))
		return
	}

	state, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, fail("login state mismatch"))
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	token, err := s.auth.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		s.logger.Error("code exchange failed", "error", err)
		c.JSON(http.StatusBadRequest, fail("signing in failed"))
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, fail("signing in failed"))
		return
	}

	idToken, err := s.auth.verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		s.logger.Error("id token verification failed", "error", err)
		c.JSON(http.StatusBadRequest, fail("signing in failed"))
		return
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		s.logger.Error("failed to parse id token claims", "error", err)
		c.JSON(http.StatusBadRequest, fail("signing in failed"))
		return
	}

	session, err := s.auth.sessions.Issue(identity.Identity{
		ID:        idToken.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.Picture,
	})
	if err != nil {
		s.logger.Error("failed to issue session", "error", err)
		c.JSON(http.StatusInternalServerError, fail("signing in failed"))
		return
	}

	c.SetCookie(s.auth.cookieName, session, int(s.auth.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) Logout(c *gin.Context) {
	c.SetCookie(s.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
