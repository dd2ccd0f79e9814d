// Package bridge runs the editor-side command listener: a loopback HTTP
// server that queues incoming JSON commands and a tick loop that executes
// them one at a time, the way the editor main thread would.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/dispatch"
	"github.com/vk/uebridge/internal/registry"
)

// ErrRestartRequested is returned by Run when system_restart_listener asked
// for a relaunch. The Server stays usable; the caller calls Run again to
// bring the listener back up.
var ErrRestartRequested = errors.New("listener restart requested")

// Options configures a Server. Zero values fall back to the listed
// defaults.
type Options struct {
	Host           string        // default 127.0.0.1
	Port           int           // 0 binds an ephemeral port
	QueueSize      int           // default 100
	TickInterval   time.Duration // default 100ms
	BatchSize      int           // commands drained per tick, default 10
	RequestTimeout time.Duration // per-request wait, default 30s
	Version        string
}

func (o *Options) applyDefaults() {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 100
	}
	if o.TickInterval <= 0 {
		o.TickInterval = 100 * time.Millisecond
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 10
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
}

// pendingRequest is one queued command waiting for its turn on the tick
// loop.
type pendingRequest struct {
	id      string
	command string
	params  map[string]json.RawMessage
	respCh  chan dispatch.Result
}

// Server owns the HTTP listener, the bounded command queue, and the tick
// loop that drains it.
type Server struct {
	opts       Options
	invoker    dispatch.Invoker
	registry   *registry.Registry
	queue      chan *pendingRequest
	restartReq atomic.Bool
	ready      atomic.Bool
	addr       atomic.Value
	httpServer *http.Server
}

// NewServer wires a Server over a dispatcher. Call Run to start serving.
func NewServer(opts Options, invoker dispatch.Invoker, reg *registry.Registry) *Server {
	opts.applyDefaults()
	return &Server{
		opts:     opts,
		invoker:  invoker,
		registry: reg,
		queue:    make(chan *pendingRequest, opts.QueueSize),
	}
}

// Addr returns the bound listen address, or "" before Run has bound the
// port.
func (s *Server) Addr() string {
	if addr, ok := s.addr.Load().(string); ok {
		return addr
	}
	return ""
}

// ScheduleRestart asks the tick loop to shut the listener down after the
// in-flight batch completes. Run then returns ErrRestartRequested.
func (s *Server) ScheduleRestart() {
	s.restartReq.Store(true)
}

// Run binds the port, serves HTTP, and drives the tick loop until ctx is
// cancelled or a restart is requested. A port already in use surfaces as
// the bind error.
func (s *Server) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	s.restartReq.Store(false)

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	s.addr.Store(listener.Addr().String())
	if s.opts.Port == 0 {
		// Remember the resolved ephemeral port so a restart comes back up
		// on the same address.
		s.opts.Port = listener.Addr().(*net.TCPAddr).Port
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleStatus)
	mux.HandleFunc("POST /", s.handleCommand(ctx))

	s.httpServer = &http.Server{Handler: mux}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Bridge listener started.", "address", "http://"+listener.Addr().String())
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	s.ready.Store(true)

	runErr := s.tickLoop(ctx)
	s.ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Listener shutdown was not clean.", "error", err)
	}
	if err := <-serveErr; err != nil {
		return err
	}
	return runErr
}

// tickLoop drains up to BatchSize queued commands per tick and executes
// them sequentially. Command handlers never run concurrently.
func (s *Server) tickLoop(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.drainAll(ctx)
			return ctx.Err()
		case <-ticker.C:
		drain:
			for i := 0; i < s.opts.BatchSize; i++ {
				select {
				case req := <-s.queue:
					s.execute(ctx, req)
				default:
					break drain
				}
			}
			if s.restartReq.Load() {
				logger.Info("Restarting listener.")
				s.drainAll(ctx)
				return ErrRestartRequested
			}
		}
	}
}

// drainAll answers every still-queued request before the listener goes
// down.
func (s *Server) drainAll(ctx context.Context) {
	for {
		select {
		case req := <-s.queue:
			s.execute(ctx, req)
		default:
			return
		}
	}
}

func (s *Server) execute(ctx context.Context, req *pendingRequest) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	result := s.invoker.Dispatch(ctx, req.command, req.params)

	logger.Debug("Command executed.",
		"request_id", req.id,
		"command", req.command,
		"duration", time.Since(start))
	req.respCh <- result
}
