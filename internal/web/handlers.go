package web

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/justestif/go-song-board/internal/health"
	"github.com/justestif/go-song-board/internal/songs"
)

// StatusReporter exposes the latest store liveness result.
type StatusReporter interface {
	Status() health.Status
}

// Handlers contains HTTP handlers for the song listing.
type Handlers struct {
	internal *songs.Facade
	public   *songs.Facade
	health   StatusReporter
	logger   *log.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(internal, public *songs.Facade, health StatusReporter, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{
		internal: internal,
		public:   public,
		health:   health,
		logger:   logger,
	}
}

// InternalSongs lists songs for the internal surface (GET /api/songs).
func (h *Handlers) InternalSongs(w http.ResponseWriter, r *http.Request) {
	h.listSongs(w, r, h.internal)
}

// PublicSongs lists songs for the public surface (GET /public/songs).
func (h *Handlers) PublicSongs(w http.ResponseWriter, r *http.Request) {
	h.listSongs(w, r, h.public)
}

func (h *Handlers) listSongs(w http.ResponseWriter, r *http.Request, f *songs.Facade) {
	resp, err := f.List(r.Context(), r.URL.Query())
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health reports the latest liveness check (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		writeJSON(w, http.StatusOK, health.Status{Status: health.StatusUnknown})
		return
	}
	status := h.health.Status()
	code := http.StatusOK
	if status.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// Fault answers a request whose handler panicked.
func (h *Handlers) Fault(w http.ResponseWriter, r *http.Request, _ error) {
	writeJSON(w, http.StatusInternalServerError, songs.Failure{
		StatusCode: http.StatusInternalServerError,
		Message:    http.StatusText(http.StatusInternalServerError),
	})
}

func (h *Handlers) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	failure := songs.NewFailure(err)
	if failure.StatusCode >= http.StatusInternalServerError {
		h.logger.Error("listing failed", "path", r.URL.Path, "request", middleware.GetReqID(r.Context()), "err", err)
	}
	writeJSON(w, failure.StatusCode, failure)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
