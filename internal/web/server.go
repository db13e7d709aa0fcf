package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/abhisek/agriscan/internal/imaging"
	"github.com/abhisek/agriscan/internal/scan"
)

const (
	// SessionCookie names the cookie holding the session ID.
	SessionCookie = "agriscan_session"

	sessionLocal    = "session_id"
	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
)

// Options configures the HTTP shell.
type Options struct {
	MaxUploadBytes int64
	Logger         *slog.Logger
	// AccessLog receives one line per request. Nil disables it.
	AccessLog io.Writer

	// SessionTTL drops sessions idle for longer. Zero uses DefaultSessionTTL.
	SessionTTL  time.Duration
	MaxSessions int
}

// Server is the browser front end over a scan.Service.
type Server struct {
	app       *fiber.App
	service   *scan.Service
	store     *Store
	log       *slog.Logger
	maxUpload int64
}

// New builds the fiber app and registers every route.
func New(service *scan.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = imaging.DefaultMaxBytes
	}

	s := &Server{
		service:   service,
		store:     NewStore(opts.SessionTTL, opts.MaxSessions),
		log:       opts.Logger,
		maxUpload: opts.MaxUploadBytes,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "AgriScan",
		DisableStartupMessage: true,
		// Leave room for the multipart envelope around the image.
		BodyLimit:    int(opts.MaxUploadBytes) + 1<<20,
		ErrorHandler: s.handleError,
	})

	s.app.Use(recover.New())
	if opts.AccessLog != nil {
		s.app.Use(logger.New(logger.Config{Output: opts.AccessLog}))
	}

	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api", s.withSession)
	api.Get("/labels", s.handleLabels)
	api.Get("/presets", s.handlePresets)
	api.Get("/session", s.handleSession)
	api.Post("/scan", s.handleScan)
	api.Post("/presets/:name", s.handlePreset)
	api.Delete("/session", s.handleNewScan)

	s.app.Get("/", s.withSession, s.handleIndex)
	s.app.Post("/classify", s.withSession, s.handleClassify)

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Store returns the session store.
func (s *Server) Store() *Store {
	return s.store
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(); n > 0 {
				s.log.Debug("expired sessions dropped", "count", n, "live", s.store.Len())
			}
		}
	}
}

// withSession resolves the session cookie. Only IDs this server issued
// and still holds are honoured; anything else gets a fresh session.
func (s *Server) withSession(c *fiber.Ctx) error {
	id := c.Cookies(SessionCookie)
	if !s.store.Has(id) {
		id = s.store.Create().ID
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(sessionLocal, id)
	return c.Next()
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(errorView{Error: err.Error()})
}
