package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	// Root is the directory served by GET /download.
	Root string
	// Prefix names the download; empty omits Content-Disposition.
	Prefix string
	// Stream writes the archive to the client while it is produced instead
	// of buffering it first.
	Stream bool
	CORS   CORSConfig
}

// Handler serves archives of a single directory.
type Handler struct {
	config   HandlerConfig
	archiver Archiver
	logger   *slog.Logger
}

// NewHandler creates a new Handler with the given configuration and archiver.
func NewHandler(config *HandlerConfig, archiver Archiver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		config:   *config,
		archiver: archiver,
		logger:   logger,
	}
}

// Router returns an http.Handler exposing GET /download.
// Every other path or method is answered as an unhandled rejection.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(h.logger))
	r.Use(Recoverer(h.logger))

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		HandleError(w, h.logger, fmt.Errorf("%w: %s", ErrRouteNotFound, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		HandleError(w, h.logger, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, r.URL.Path))
	})

	r.Get("/download", h.handleDownload)

	return r
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", RequestIDFromContext(r.Context()))

	if h.config.Stream {
		err := StreamResponse(r.Context(), w, h.archiver, h.config.Root, h.config.Prefix)
		if errors.Is(err, ErrResponseCommitted) {
			logger.Error("archive stream interrupted", "error", err)
			// The status line is already out; drop the connection so the
			// client does not mistake the partial body for a whole archive.
			panic(http.ErrAbortHandler)
		}
		if err != nil {
			HandleError(w, logger, err)
		}
		return
	}

	resp, err := BuildResponse(r.Context(), h.archiver, h.config.Root, h.config.Prefix)
	if err != nil {
		HandleError(w, logger, err)
		return
	}

	if err := resp.Write(w); err != nil {
		logger.Warn("failed to write archive response", "error", err)
	}
}
