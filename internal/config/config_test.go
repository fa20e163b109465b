package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	props, err := Read()
	require.NoError(t, err)

	assert.Equal(t, "8080", props.Server.Port)
	assert.Equal(t, "http://localhost:8080", props.Server.PublicBaseURL)
	assert.Equal(t, "local", props.Blob.Backend)
	assert.Equal(t, "max-age=3600", props.Blob.CacheControl)
	assert.Equal(t, 72*time.Hour, props.Auth.SessionTTL)
	assert.NotEmpty(t, props.DB.Path)
}

func TestReadCustomValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_PATH", "/custom/gallery.db")
	t.Setenv("BLOB_BACKEND", "s3")
	t.Setenv("BLOB_S3_BUCKET", "trip-photos")
	t.Setenv("AUTH_SESSION_TTL", "1h")

	props, err := Read()
	require.NoError(t, err)

	assert.Equal(t, "9000", props.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, props.Server.CORSOrigins)
	assert.Equal(t, "/custom/gallery.db", props.DB.Path)
	assert.Equal(t, "s3", props.Blob.Backend)
	assert.Equal(t, "trip-photos", props.Blob.S3Bucket)
	assert.Equal(t, time.Hour, props.Auth.SessionTTL)
}
