package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	// Properties holds every runtime setting, populated from the environment.
	Properties struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
		LogFile  string `env:"LOG_FILE"`

		Server ServerProperties `envPrefix:"HTTP_"`
		DB     DBProperties     `envPrefix:"DB_"`
		Blob   BlobProperties   `envPrefix:"BLOB_"`
		Auth   AuthProperties   `envPrefix:"AUTH_"`
	}

	ServerProperties struct {
		Port         string        `env:"PORT" envDefault:"8080"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"60s"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"120s"`
		// PublicBaseURL is the externally visible origin of this server. It
		// prefixes every public object URL written into photo records.
		PublicBaseURL string   `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
		CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	DBProperties struct {
		Path string `env:"PATH" envDefault:"/data/skigallery.db"`
	}

	BlobProperties struct {
		// Backend selects the blob namespace implementation: "local" or "s3".
		Backend      string `env:"BACKEND" envDefault:"local"`
		LocalPath    string `env:"LOCAL_PATH" envDefault:"/data/photos"`
		CacheControl string `env:"CACHE_CONTROL" envDefault:"max-age=3600"`

		S3Endpoint  string `env:"S3_ENDPOINT"`
		S3AccessKey string `env:"S3_ACCESS_KEY"`
		S3SecretKey string `env:"S3_SECRET_KEY"`
		S3Bucket    string `env:"S3_BUCKET" envDefault:"photos"`
		S3UseSSL    bool   `env:"S3_USE_SSL" envDefault:"true"`
	}

	AuthProperties struct {
		// Issuer is the OIDC issuer URL. Leave empty to run without login
		// (uploads and deletes will be rejected as unauthenticated).
		Issuer        string        `env:"ISSUER"`
		ClientID      string        `env:"CLIENT_ID"`
		ClientSecret  string        `env:"CLIENT_SECRET"`
		RedirectURL   string        `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`
		SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev-only-secret"`
		SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"72h"`
		CookieName    string        `env:"COOKIE_NAME" envDefault:"sg_session"`
	}
)

// Read parses the environment into Properties.
func Read() (*Properties, error) {
	props := &Properties{}
	if err := env.Parse(props); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return props, nil
}
