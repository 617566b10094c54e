package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/darkangel/imperialbot/internal/logging"
)

// Controls are optional process-level hooks run alongside the flag flips.
// The endpoints work without them: /restart and /shutdown primarily toggle
// the disabled flag the dispatcher consults, they never terminate the
// process.
type Controls struct {
	Restart  func() error
	Shutdown func() error
}

// Server exposes the status record over HTTP
type Server struct {
	store    *Store
	controls Controls
	logger   *logging.Logger
	http     *http.Server
}

// NewServer builds the status HTTP server on the given port
func NewServer(port int, store *Store, controls Controls, logger *logging.Logger) *Server {
	s := &Server{
		store:    store,
		controls: controls,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ping", s.handlePing)
	r.Get("/status", s.handleStatus)
	r.Post("/restart", s.handleRestart)
	r.Post("/shutdown", s.handleShutdown)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start runs the server until Stop is called. Blocks.
func (s *Server) Start() error {
	s.logger.Info("status server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("status server error: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the router. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"pong": true})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := s.store.Get()

	response := map[string]interface{}{
		"status":      status.Status,
		"commands":    status.Commands,
		"servers":     status.Servers,
		"is_disabled": status.IsDisabled,
	}
	if status.LastActive != nil {
		response["last_active"] = status.LastActive.Format(time.RFC3339)
	}
	if status.LastRestart != nil {
		response["last_restart"] = status.LastRestart.Format(time.RFC3339)
		response["uptime"] = time.Since(*status.LastRestart).Round(time.Second).String()
	}

	writeJSON(w, http.StatusOK, response)
}

// handleRestart re-enables command dispatch and marks the bot online,
// running the restart hook first when one is wired
func (s *Server) handleRestart(w http.ResponseWriter, _ *http.Request) {
	if s.controls.Restart != nil {
		if err := s.controls.Restart(); err != nil {
			s.logger.Error("restart failed: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false, "message": "restart failed",
			})
			return
		}
	}

	servers := s.store.Get().Servers
	if err := s.store.Enable(); err != nil {
		s.logger.Error("failed to enable bot: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "failed to update status",
		})
		return
	}
	if err := s.store.MarkOnline(servers); err != nil {
		s.logger.Error("failed to mark online: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "failed to update status",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "bot restarted"})
}

// handleShutdown disables command dispatch and marks the bot offline. The
// process keeps running so /restart can bring the bot back.
func (s *Server) handleShutdown(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Disable(); err != nil {
		s.logger.Error("failed to disable bot: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "failed to update status",
		})
		return
	}
	if err := s.store.MarkOffline(); err != nil {
		s.logger.Error("failed to mark offline: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "failed to update status",
		})
		return
	}

	if s.controls.Shutdown != nil {
		if err := s.controls.Shutdown(); err != nil {
			s.logger.Error("shutdown hook failed: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false, "message": "shutdown hook failed",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "bot shut down"})
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
