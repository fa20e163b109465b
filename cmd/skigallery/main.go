package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/jmoon-dev/skigallery/internal/blob"
	"github.com/jmoon-dev/skigallery/internal/blob/local"
	"github.com/jmoon-dev/skigallery/internal/blob/s3"
	"github.com/jmoon-dev/skigallery/internal/config"
	"github.com/jmoon-dev/skigallery/internal/db"
	"github.com/jmoon-dev/skigallery/internal/gallery"
	"github.com/jmoon-dev/skigallery/internal/identity"
	"github.com/jmoon-dev/skigallery/internal/logging"
	"github.com/jmoon-dev/skigallery/internal/store"
	"github.com/jmoon-dev/skigallery/internal/web"
)

func main() {
	// Missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	props, err := config.Read()
	if err != nil {
		log.Fatalf("failed to read configuration: %v", err)
	}

	logger, cleanup, err := logging.New(props.LogLevel, props.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(props.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	blobs, err := newBlobStore(props)
	if err != nil {
		logger.Error("failed to initialize blob store", "error", err)
		return
	}

	sessions := identity.NewSessionManager(props.Auth.SessionSecret, props.Auth.SessionTTL)
	provider := identity.NewSessionProvider(sessions)
	urls := blob.URLScheme{Base: props.Server.PublicBaseURL}

	service := gallery.NewService(store.NewPhotoStore(database), blobs, urls, provider, props.Blob.CacheControl, logger)

	var auth *web.Authenticator
	if props.Auth.Issuer != "" {
		auth, err = web.NewAuthenticator(context.Background(), props.Auth, sessions)
		if err != nil {
			logger.Error("failed to initialize OIDC provider, login disabled", "error", err)
			auth = nil
		}
	} else {
		logger.Warn("AUTH_ISSUER not set, login disabled")
	}

	server := web.NewServer(props, service, blobs, provider, auth, logger)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newBlobStore(props *config.Properties) (blob.Store, error) {
	switch props.Blob.Backend {
	case "s3":
		return s3.NewStore(
			props.Blob.S3Endpoint,
			props.Blob.S3AccessKey,
			props.Blob.S3SecretKey,
			props.Blob.S3Bucket,
			props.Blob.S3UseSSL,
		)
	default:
		return local.NewStore(props.Blob.LocalPath)
	}
}
