package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/dispatch"
)

// commandEnvelope is the wire shape of a POSTed command. Older clients send
// "parameters" instead of "params"; both are accepted, "params" wins.
type commandEnvelope struct {
	Type       string                     `json:"type"`
	Params     map[string]json.RawMessage `json:"params"`
	Parameters map[string]json.RawMessage `json:"parameters"`
	RequestID  string                     `json:"requestId"`
}

// handleStatus answers GET / with the listener's liveness document.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "online",
		"service":  "uebridge",
		"version":  s.opts.Version,
		"ready":    s.ready.Load(),
		"commands": len(s.registry.CommandNames()),
		"queued":   len(s.queue),
	})
}

// handleCommand answers POST /: parse, enqueue, wait for the tick loop.
func (s *Server) handleCommand(serverCtx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.FromContext(serverCtx)

		var env commandEnvelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			writeJSON(w, http.StatusBadRequest, dispatch.Failure("invalid JSON body: "+err.Error()))
			return
		}
		if env.Type == "" {
			writeJSON(w, http.StatusBadRequest, dispatch.Failure("missing command type"))
			return
		}

		params := env.Params
		if params == nil {
			params = env.Parameters
		}
		req := &pendingRequest{
			id:      env.RequestID,
			command: env.Type,
			params:  params,
			respCh:  make(chan dispatch.Result, 1),
		}
		if req.id == "" {
			req.id = uuid.NewString()
		}
		logger.Debug("Command received.", "request_id", req.id, "command", env.Type)

		select {
		case s.queue <- req:
		default:
			writeJSON(w, http.StatusServiceUnavailable, dispatch.Failure("command queue is full"))
			return
		}

		timeout := time.NewTimer(s.opts.RequestTimeout)
		defer timeout.Stop()
		select {
		case result := <-req.respCh:
			result["requestId"] = req.id
			writeJSON(w, http.StatusOK, result)
		case <-timeout.C:
			logger.Warn("Command timed out in queue.", "request_id", req.id, "command", env.Type)
			writeJSON(w, http.StatusGatewayTimeout, dispatch.Failure("command timed out"))
		case <-r.Context().Done():
			// Client went away; the tick loop still executes the command,
			// the buffered channel absorbs the result.
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
