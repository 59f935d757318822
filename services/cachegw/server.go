package cachegw

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"turbocache/pkg/bus"
)

// Server wires the object store, optional event bus, and configuration
// behind the artifact cache HTTP handlers. Handlers keep no mutable state of
// their own: everything durable lives in the object store.
type Server struct {
	store  ObjectStore
	bus    *bus.Bus
	logger *log.Logger
	config Config
}

// NewServer initialises the gateway. The bus may be nil, in which case
// validated usage events are counted and discarded.
func NewServer(store ObjectStore, b *bus.Bus, logger *log.Logger, cfg Config) (*Server, error) {
	if store == nil {
		return nil, errors.New("object store is required")
	}
	if cfg.AuthToken == "" {
		return nil, errors.New("auth token is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Server{
		store:  store,
		bus:    b,
		logger: logger,
		config: cfg,
	}, nil
}

// Routes constructs the chi router containing all gateway endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v8/artifacts", func(r chi.Router) {
		r.Use(s.requireAuth)

		// Status is a capability probe and carries no team scope.
		r.Get("/status", s.handleStatus)

		r.Group(func(r chi.Router) {
			r.Use(resolveTeam)

			r.Post("/events", s.handleEvents)
			r.Post("/", s.handleQuery)
			r.Put("/{hash}", s.handleUpload)
			r.Get("/{hash}", s.handleDownload)
			r.Head("/{hash}", s.handleExists)
		})
	})

	return r
}
