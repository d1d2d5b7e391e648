package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// BridgePrefix is the route prefix of the devtools bridge.
const BridgePrefix = "/__nuxt_eslint"

// Server exposes a Registry over HTTP so a devtools client can list tabs
// and press launch buttons.
type Server struct {
	registry *Registry
	router   *chi.Mux
	logger   *slog.Logger

	// actionCtx scopes actions, which outlive the request that started them.
	actionCtx context.Context
	wg        sync.WaitGroup
}

// NewServer creates the bridge. Actions run under ctx.
func NewServer(ctx context.Context, registry *Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		registry:  registry,
		router:    chi.NewRouter(),
		logger:    logger,
		actionCtx: ctx,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Route(BridgePrefix, func(r chi.Router) {
		r.Get("/tabs", s.handleListTabs)
		r.Post("/tabs/{name}/actions/{index}", s.handleRunAction)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Wait blocks until every started action has returned.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Serve listens on addr until ctx is done, then shuts down and waits for
// running actions.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("devtools bridge listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Wait()
	return err
}

// tabsResponse is the body of GET /tabs.
type tabsResponse struct {
	Generation uint64 `json:"generation"`
	Tabs       []Tab  `json:"tabs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleListTabs(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Refresh(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	tabs := s.registry.Tabs()
	if tabs == nil {
		tabs = []Tab{}
	}
	writeJSON(w, http.StatusOK, tabsResponse{Generation: s.registry.Generation(), Tabs: tabs})
}

func (s *Server) handleRunAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid action index"})
		return
	}

	action, err := s.registry.Action(name, index)
	if errors.Is(err, ErrTabNotFound) || errors.Is(err, ErrActionNotFound) {
		// The cache is only filled by refreshes; a client may act before listing.
		if rerr := s.registry.Refresh(r.Context()); rerr != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: rerr.Error()})
			return
		}
		action, err = s.registry.Action(name, index)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTabNotFound) || errors.Is(err, ErrActionNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if action.Handle != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := action.Handle(s.actionCtx); err != nil {
				s.logger.Warn("devtools action failed", "tab", name, "index", index, "error", err)
			}
		}()
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
