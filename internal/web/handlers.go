package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmoon-dev/skigallery/internal/gallery"
)

const maxUploadSize = 20 * 1024 * 1024 // 20 MB

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the stdlib sniffer has no
// WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

func fail(message string) gin.H {
	return gin.H{"success": false, "error": message}
}

// statusFor maps a gallery failure kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gallery.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, gallery.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gallery.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the user-facing message for a gallery failure, hiding
// anything unclassified behind a generic line.
func messageFor(err error) string {
	for _, kind := range []error{
		gallery.ErrUnauthenticated,
		gallery.ErrNotFound,
		gallery.ErrForbidden,
		gallery.ErrStorageWrite,
		gallery.ErrRecordWrite,
		gallery.ErrRecordDelete,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "something went wrong, try again later"
}

func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListPhotos(c *gin.Context) {
	photos, fallback := s.service.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "fallback": fallback, "photos": photos})
}

func (s *Server) UploadPhoto(c *gin.Context) {
	description := strings.TrimSpace(c.PostForm("description"))
	if description == "" {
		c.JSON(http.StatusBadRequest, fail("a description is required"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("an image file is required"))
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, fail("image is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("an image file is required"))
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			s.logger.Error("failed to close upload file", "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		s.logger.Error("read upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, fail("reading the upload failed"))
		return
	}
	if len(data) > maxUploadSize {
		c.JSON(http.StatusBadRequest, fail("image is too large"))
		return
	}

	contentType, ok := allowedImageMIME(data)
	if !ok {
		c.JSON(http.StatusBadRequest, fail("unsupported image format"))
		return
	}

	photo, err := s.service.Upload(c.Request.Context(), fileHeader.Filename, description,
		bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		s.logger.Error("upload photo failed", "error", err)
		c.JSON(statusFor(err), fail(messageFor(err)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "photo": photo})
}

func (s *Server) DeletePhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, fail("invalid photo id"))
		return
	}

	var body struct {
		Src string `json:"src"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid request body"))
		return
	}

	if err := s.service.Delete(c.Request.Context(), id, body.Src); err != nil {
		s.logger.Error("delete photo failed", "photo_id", id, "error", err)
		c.JSON(statusFor(err), fail(messageFor(err)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) Me(c *gin.Context) {
	ident, err := s.ident.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, fail("not signed in"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": ident})
}

// PublicObject streams a stored blob. This is the route behind every photo
// record's src URL when this server hosts the namespace.
func (s *Server) PublicObject(c *gin.Context) {
	object := strings.TrimPrefix(c.Param("object"), "/")
	if object == "" {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}

	rc, contentType, err := s.blobs.Open(c.Request.Context(), object)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			s.logger.Error("failed to close blob reader", "object", object, "error", cerr)
		}
	}()

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=3600")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		s.logger.Error("write blob failed", "object", object, "error", err)
	}
}
