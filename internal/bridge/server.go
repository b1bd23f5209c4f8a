// Package bridge exposes the permission command surface to the webview UI
// over a loopback WebSocket, speaking a small JSON envelope protocol.
package bridge

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yunseo/TapNote/internal/capture"
	"github.com/yunseo/TapNote/internal/logger"
	"github.com/yunseo/TapNote/internal/permissions"
)

// Server serves the UI bridge.
type Server struct {
	listenAddr string
	mgr        *permissions.Manager
	newEngine  capture.EngineFactory

	upgrader websocket.Upgrader
	httpSrv  *http.Server
	ln       net.Listener
}

// NewServer creates a bridge over the given permission manager. newEngine
// is used by the triggerSystemAudioPermission command to provoke the Audio
// Capture consent dialog.
func NewServer(listenAddr string, mgr *permissions.Manager, newEngine capture.EngineFactory) *Server {
	return &Server{
		listenAddr: listenAddr,
		mgr:        mgr,
		newEngine:  newEngine,
		upgrader: websocket.Upgrader{
			// The bridge binds to loopback; the webview sets no Origin we
			// could usefully verify.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start begins serving and returns once the listener is bound.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/bridge", s.handleWS)

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("bridge listen: %w", err)
	}
	s.ln = ln
	s.httpSrv = &http.Server{Handler: mux}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("bridge serve", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.listenAddr
	}
	return s.ln.Addr().String()
}

// Close shuts the server down.
func (s *Server) Close() error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Close()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("bridge upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		srv:  s,
	}
	logger.Info("ui connected", "conn", c.id)
	c.readLoop()
	logger.Info("ui disconnected", "conn", c.id)
}

// client is one connected UI.
type client struct {
	id   string
	conn *websocket.Conn
	srv  *Server
	mu   sync.Mutex
}

func (c *client) readLoop() {
	defer c.conn.Close()
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("bridge read error", "conn", c.id, "error", err)
			}
			return
		}
		c.dispatch(cmd)
	}
}

func (c *client) dispatch(cmd Command) {
	mgr := c.srv.mgr
	switch cmd.Type {
	case TypePing:
		c.send(Result{Type: TypePong, ID: cmd.ID, OK: true})
	case TypeCheckAudioCapture:
		c.sendGranted(cmd, mgr.Check(permissions.SystemAudioCapture))
	case TypeRequestAudioCapture:
		c.sendOutcome(cmd, mgr.Request(permissions.SystemAudioCapture))
	case TypeTriggerSystemAudio:
		c.sendOutcome(cmd, permissions.TriggerSystemAudio(c.srv.newEngine))
	case TypeCheckMicrophone:
		c.sendGranted(cmd, mgr.Check(permissions.Microphone))
	case TypeRequestMicrophone:
		c.sendOutcome(cmd, mgr.Request(permissions.Microphone))
	case TypeEnsureMicrophone:
		c.sendGranted(cmd, mgr.Ensure(permissions.Microphone))
	default:
		c.send(Result{
			Type:  TypeError,
			ID:    cmd.ID,
			Error: fmt.Sprintf("unknown command %q", cmd.Type),
		})
	}
}

func (c *client) sendGranted(cmd Command, granted bool) {
	c.send(Result{Type: TypeResult, ID: cmd.ID, Op: cmd.Type, OK: true, Granted: &granted})
}

// sendOutcome stringifies errors at the command boundary; nothing that
// happens in a permission flow is fatal to the process.
func (c *client) sendOutcome(cmd Command, err error) {
	if err != nil {
		logger.Warn("command failed", "conn", c.id, "op", cmd.Type, "error", err)
		c.send(Result{Type: TypeResult, ID: cmd.ID, Op: cmd.Type, OK: false, Error: err.Error()})
		return
	}
	c.send(Result{Type: TypeResult, ID: cmd.ID, Op: cmd.Type, OK: true})
}

func (c *client) send(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(res); err != nil {
		logger.Warn("bridge write error", "conn", c.id, "error", err)
	}
}
