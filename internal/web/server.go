package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jmoon-dev/skigallery/internal/blob"
	"github.com/jmoon-dev/skigallery/internal/config"
	"github.com/jmoon-dev/skigallery/internal/gallery"
	"github.com/jmoon-dev/skigallery/internal/identity"
)

//go:embed site
var siteFS embed.FS

// Server is the HTTP front of the gallery: the JSON API, the login flow, the
// public object route and the static promotional page.
type Server struct {
	engine     *gin.Engine
	service    *gallery.Service
	blobs      blob.Store
	ident      identity.Provider
	auth       *Authenticator
	cookieName string
	props      config.ServerProperties
	logger     *slog.Logger
}

// NewServer assembles the router. auth may be nil when no OIDC issuer is
// configured; login routes then answer 503 and every write stays
// unauthenticated.
func NewServer(
	props *config.Properties,
	service *gallery.Service,
	blobs blob.Store,
	ident identity.Provider,
	auth *Authenticator,
	logger *slog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine:     gin.New(),
		service:    service,
		blobs:      blobs,
		ident:      ident,
		auth:       auth,
		cookieName: props.Auth.CookieName,
		props:      props.Server,
		logger:     logger,
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestLogger())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     props.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.engine.Use(s.sessionToken())

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.GetHealth)

	s.engine.GET("/api/photos", s.ListPhotos)
	s.engine.POST("/api/photos", s.UploadPhoto)
	s.engine.DELETE("/api/photos/:id", s.DeletePhoto)
	s.engine.GET("/api/me", s.Me)

	s.engine.GET("/auth/login", s.Login)
	s.engine.GET("/auth/callback", s.Callback)
	s.engine.GET("/auth/logout", s.Logout)

	s.engine.GET("/storage/v1/object/public/photos/*object", s.PublicObject)

	site, err := fs.Sub(siteFS, "site")
	if err != nil {
		panic(fmt.Errorf("embedded site missing: %w", err))
	}
	fileServer := http.FileServer(http.FS(site))
	s.engine.GET("/", gin.WrapH(fileServer))
	s.engine.GET("/img1.png", gin.WrapH(fileServer))
	s.engine.GET("/site.css", gin.WrapH(fileServer))

	s.engine.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{}) })
}

// sessionToken carries the caller's raw session token (bearer header or
// cookie) into the request context so the identity provider can resolve it
// per operation.
func (s *Server) sessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		} else if cookie, err := c.Cookie(s.cookieName); err == nil {
			raw = cookie
		}
		if raw != "" {
			ctx := identity.WithToken(c.Request.Context(), raw)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%s", s.props.Port)
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.props.ReadTimeout,
		WriteTimeout: s.props.WriteTimeout,
	}
	return srv.ListenAndServe()
}
