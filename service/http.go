package service

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/navigation"
)

// maxBodyBytes bounds request bodies on the JSON endpoints
const maxBodyBytes = 1 << 20

type pathRequest struct {
	Start         core.Cell `json:"start"`
	Target        core.Cell `json:"target"`
	MaxExpansions int       `json:"max_expansions,omitempty"`
}

type pathResponse struct {
	Outcome    string      `json:"outcome"`
	Found      bool        `json:"found"`
	Expansions int         `json:"expansions"`
	Waypoints  []core.Vec2 `json:"waypoints"`
	Cells      []core.Cell `json:"cells"`
}

type cellsRequest struct {
	Cells   []core.Cell `json:"cells"`
	Blocked bool        `json:"blocked"`
}

type mapResponse struct {
	Width   int         `json:"width,omitempty"`
	Height  int         `json:"height,omitempty"`
	Bounded bool        `json:"bounded"`
	Blocked []core.Cell `json:"blocked"`
}

// SetupRoutes configures all routes and returns the router
// gatherer backs /metrics; nil uses the default gatherer
func SetupRoutes(paths *PathService, gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/map", func(w http.ResponseWriter, r *http.Request) {
			getMap(w, paths)
		})
		r.Put("/map/cells", func(w http.ResponseWriter, r *http.Request) {
			putCells(w, r, paths)
		})
		r.Post("/path", func(w http.ResponseWriter, r *http.Request) {
			postPath(w, r, paths)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

func getMap(w http.ResponseWriter, paths *PathService) {
	grid := paths.Grid()
	width, height, bounded := grid.Bounds()
	blocked := grid.Blocked()
	if blocked == nil {
		blocked = []core.Cell{}
	}
	respondJSON(w, http.StatusOK, mapResponse{
		Width:   width,
		Height:  height,
		Bounded: bounded,
		Blocked: blocked,
	})
}

func putCells(w http.ResponseWriter, r *http.Request, paths *PathService) {
	var req cellsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := paths.SetCells(req.Cells, req.Blocked)
	respondJSON(w, http.StatusOK, map[string]int{"updated": n})
}

func postPath(w http.ResponseWriter, r *http.Request, paths *PathService) {
	var req pathRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxExpansions < 0 {
		respondError(w, http.StatusBadRequest, "max_expansions must be positive")
		return
	}

	res, err := paths.Find(req.Start, req.Target, req.MaxExpansions)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrBudgetTooLarge) {
			status = http.StatusUnprocessableEntity
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, newPathResponse(res))
}

func newPathResponse(res navigation.Result) pathResponse {
	resp := pathResponse{
		Outcome:    res.Outcome.String(),
		Found:      res.Found(),
		Expansions: res.Expansions,
		Waypoints:  res.Path,
		Cells:      res.Cells,
	}
	if resp.Waypoints == nil {
		resp.Waypoints = []core.Vec2{}
	}
	if resp.Cells == nil {
		resp.Cells = []core.Cell{}
	}
	return resp
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, "invalid request body")
	}
	return nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[http] encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HTTPServer serves a handler as a Service
type HTTPServer struct {
	srv      *http.Server
	shutdown time.Duration

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
}

// NewHTTPServer creates a server for handler on addr; Stop waits up to shutdown for in-flight requests
func NewHTTPServer(addr string, handler http.Handler, shutdown time.Duration) *HTTPServer {
	return &HTTPServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdown: shutdown,
	}
}

func (s *HTTPServer) Name() string {
	return "http"
}

// Addr returns the bound address once started, the configured address before
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}

// Start binds the listener and serves in the background
func (s *HTTPServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.srv.Addr)
	}
	s.listener = ln
	s.done = make(chan struct{})
	log.Printf("[http] listening on %s", ln.Addr())

	done := s.done
	go func() {
		defer close(done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[http] serve: %v", err)
		}
	}()
	return nil
}

// Stop shuts the server down gracefully
func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	<-s.done
	s.listener = nil
	log.Printf("[http] stopped")
	return err
}
