package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-devpot/internal/generator"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/pkg/interfaces"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	healthPath      = "/_health"
	notFoundPage    = "404.html"
	indexPage       = "index.html"
	shutdownTimeout = 5 * time.Second
)

var errOutputDirRequired = errors.New("server: output directory is required")

// Builder runs a generator build. generator.Service satisfies it.
type Builder interface {
	Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error)
}

// Config configures the preview server.
type Config struct {
	Addr      string
	OutputDir string
	// WatchDirs are watched recursively when Watch is set.
	WatchDirs []string
	Watch     bool
	Debounce  time.Duration
}

// BuildStatus describes the last build triggered by the server.
type BuildStatus struct {
	BuildID    string    `json:"build_id,omitempty"`
	Pages      int       `json:"pages"`
	Skipped    int       `json:"skipped"`
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
}

type healthResponse struct {
	Status    string       `json:"status"`
	LastBuild *BuildStatus `json:"last_build,omitempty"`
}

// Server serves the generated site and rebuilds it when sources change.
type Server struct {
	cfg     Config
	echo    *echo.Echo
	builder Builder
	logger  interfaces.Logger

	buildMu sync.Mutex
	mu      sync.RWMutex
	last    *BuildStatus
}

// New prepares a preview server over cfg.OutputDir.
func New(cfg Config, builder Builder, logger interfaces.Logger) (*Server, error) {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, errOutputDirRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	s := &Server{
		cfg:     cfg,
		echo:    echo.New(),
		builder: builder,
		logger:  logger,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler exposes the HTTP handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// LastBuild returns the status of the last rebuild, if any.
func (s *Server) LastBuild() *BuildStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	status := *s.last
	return &status
}

// Start serves until ctx is cancelled. With Watch set, changes under
// WatchDirs trigger debounced rebuilds.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.cfg.Watch {
		if s.builder == nil {
			return errors.New("server: watch requires a builder")
		}
		watcher, err := NewWatcher(s.cfg.WatchDirs, s.cfg.Debounce, func() {
			_ = s.Rebuild(ctx)
		}, s.logger)
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				s.logger.Error("server.watch.failed", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.start", "addr", s.cfg.Addr, "output_dir", s.cfg.OutputDir, "watch", s.cfg.Watch)
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

// Rebuild runs one build and records its outcome. Concurrent calls are
// serialised.
func (s *Server) Rebuild(ctx context.Context) error {
	if s.builder == nil {
		return errors.New("server: builder is required")
	}
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	s.logger.Info("server.rebuild.start")
	result, err := s.builder.Build(ctx, generator.BuildOptions{})
	status := &BuildStatus{FinishedAt: time.Now().UTC()}
	if result != nil {
		status.BuildID = result.BuildID
		status.Pages = result.PagesBuilt
		status.Skipped = result.PagesSkipped
	}
	if err != nil {
		status.Error = err.Error()
		s.logger.Error("server.rebuild.failed", "error", err)
	} else {
		s.logger.Info("server.rebuild.success", "pages", status.Pages, "skipped", status.Skipped)
	}

	s.mu.Lock()
	s.last = status
	s.mu.Unlock()
	return err
}

func (s *Server) setupMiddleware() {
	e := s.echo
	e.HTTPErrorHandler = s.httpErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("server.request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String())
			return nil
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
			return next(c)
		}
	})
}

func (s *Server) setupRoutes() {
	s.echo.GET(healthPath, s.handleHealth)
	s.echo.GET("/*", s.handleFile)
	s.echo.HEAD("/*", s.handleFile)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", LastBuild: s.LastBuild()})
}

// handleFile maps a request path onto the output directory. Directories and
// extensionless paths fall back to their index.html.
func (s *Server) handleFile(c echo.Context) error {
	file, ok := s.resolve(c.Request().URL.Path)
	if !ok {
		return echo.ErrNotFound
	}
	return c.File(file)
}

func (s *Server) resolve(requestPath string) (string, bool) {
	cleaned := path.Clean("/" + requestPath)
	candidates := []string{cleaned}
	if path.Ext(cleaned) == "" || strings.HasSuffix(requestPath, "/") {
		candidates = []string{path.Join(cleaned, indexPage), cleaned}
	}
	for _, candidate := range candidates {
		full := filepath.Join(s.cfg.OutputDir, filepath.FromSlash(strings.TrimPrefix(candidate, "/")))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		return full, true
	}
	return "", false
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		page, readErr := os.ReadFile(filepath.Join(s.cfg.OutputDir, notFoundPage))
		if readErr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, page)
			return
		}
	}
	s.echo.DefaultHTTPErrorHandler(err, c)
}
