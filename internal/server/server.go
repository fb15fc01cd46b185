// Package server exposes a single tile board over HTTP.
//
// The API drives the same [board.Board] the editor uses, headlessly: size
// reports arrive through PUT /api/bounds, background clicks through
// POST /api/deselect. All board access is serialized behind one mutex, so
// the board keeps its single-writer discipline across request goroutines.
// Image fetches run outside the lock.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tileboard/pkg/board"
	"github.com/matzehuels/tileboard/pkg/geom"
	"github.com/matzehuels/tileboard/pkg/images"
)

const (
	// DefaultLocalImages is the length of the list served at /api/images.
	DefaultLocalImages = 100

	// DefaultImageBaseURL prefixes the urls of the local image list.
	DefaultImageBaseURL = "https://via.placeholder.com"

	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

// Options configures a [Server].
type Options struct {
	Logger *log.Logger

	// Board receives tile images from Images. POST /api/tiles answers 204
	// when it is nil.
	Images board.ImageSource

	// LocalImages and ImageBaseURL shape the list served at /api/images.
	LocalImages  int
	ImageBaseURL string

	// Bounds, when set, is published as the initial surface size.
	Bounds *geom.Bounds

	// NewID overrides tile id generation.
	NewID func() string
}

// Server owns a board and the HTTP routes that drive it.
type Server struct {
	logger *log.Logger

	mu     sync.Mutex
	board  *board.Board
	sizes  board.SizeFeed
	clicks board.ClickFeed

	photos []images.Photo
	router chi.Router
}

// New creates a Server with a mounted, empty board.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	n := opts.LocalImages
	if n <= 0 {
		n = DefaultLocalImages
	}
	base := opts.ImageBaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}

	s := &Server{
		logger: logger,
		photos: images.Local(n, base),
	}
	s.board = board.New(board.Options{
		Logger: logger.WithPrefix("board"),
		Images: opts.Images,
		NewID:  opts.NewID,
	})
	s.board.Mount(&s.sizes, &s.clicks)
	if opts.Bounds != nil {
		s.sizes.Publish(*opts.Bounds)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/images", s.handleImages)
		r.Get("/bounds", s.handleGetBounds)
		r.Put("/bounds", s.handlePutBounds)
		r.Post("/deselect", s.handleDeselect)

		r.Route("/tiles", func(r chi.Router) {
			r.Get("/", s.handleListTiles)
			r.Post("/", s.handleAddTile)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTile)
				r.Patch("/", s.handleUpdateTile)
				r.Delete("/", s.handleDeleteTile)
				r.Post("/select", s.handleSelect)
			})
		})
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and tears the board down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// Close tears the board down. Late image fetches are then dropped.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.Teardown()
}
