package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/logfields"
	"git.home.luguber.info/inful/moss/internal/metrics"
)

// DefaultHost keeps the preview on the loopback interface.
const DefaultHost = "127.0.0.1"

const shutdownTimeout = 5 * time.Second

// ErrSiteNotGenerated is returned when the site directory has no index.html.
var ErrSiteNotGenerated = errors.New("site has not been generated")

// Options configures a preview server.
type Options struct {
	Host string
	Port int

	// Registry is served on /metrics; nil disables the endpoint.
	Registry *prom.Registry
	Logger   *slog.Logger
}

// Server serves one generated site directory.
type Server struct {
	siteDir string
	opts    Options
	logger  *slog.Logger
}

// New validates siteDir and returns a server for it.
func New(siteDir string, opts Options) (*Server, error) {
	index := filepath.Join(siteDir, "index.html")
	if st, err := os.Stat(index); err != nil || st.IsDir() {
		return nil, ferrors.WrapError(ErrSiteNotGenerated, ferrors.CategoryRuntime,
			fmt.Sprintf("no index.html in %s; generate the site first", siteDir)).
			Fatal().
			WithContext("path", siteDir).
			Build()
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{siteDir: siteDir, opts: opts, logger: logger}, nil
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

// Handler returns the routing for the site, /health and /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	if s.opts.Registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	mux.Handle("/", noCache(http.FileServer(http.Dir(s.siteDir))))
	return chain(s.logger, mux)
}

// ListenAndServe listens on Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "cannot listen for preview").
			Fatal().
			WithContext("addr", s.Addr()).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second, ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving preview", logfields.Addr(ln.Addr().String()), logfields.Path(s.siteDir))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview shutdown: %w", err)
	}
	s.logger.Info("Preview stopped")
	return nil
}
