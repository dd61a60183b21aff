package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ypthao011/aquarium/config"
	"github.com/ypthao011/aquarium/game"
	"github.com/ypthao011/aquarium/protocol"
)

//go:embed static
var staticFS embed.FS

// Submitter accepts inputs for the simulation goroutine.
type Submitter interface {
	Submit(in game.Input) bool
}

// Server upgrades HTTP connections to websocket sessions on the hub.
type Server struct {
	cfg       *config.Config
	hub       *Hub
	inputs    Submitter
	validator *protocol.Validator
	upgrader  websocket.Upgrader
	welcome   protocol.WelcomeMsg
}

// New creates a server. Frames reach clients through hub, normally fed by
// a FramePresenter installed on the game.
func New(cfg *config.Config, hub *Hub, inputs Submitter) (*Server, error) {
	v, err := protocol.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		hub:       hub,
		inputs:    inputs,
		validator: v,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		welcome: welcomeFor(cfg),
	}, nil
}

func welcomeFor(cfg *config.Config) protocol.WelcomeMsg {
	species := make([]protocol.SpeciesInfo, 0, len(cfg.Species))
	for _, sp := range cfg.Species {
		species = append(species, protocol.SpeciesInfo{
			Name:  sp.Name,
			Glyph: sp.Glyph,
			Price: sp.Price,
			Size:  sp.Size,
			Color: sp.Color,
		})
	}
	return protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		Width:           cfg.Playfield.Width,
		Height:          cfg.Playfield.Height,
		PixelsPerSize:   cfg.Playfield.PixelsPerSize,
		FoodSize:        cfg.Food.Size,
		SellZone: protocol.Rect{
			X: cfg.SellZone.X,
			Y: cfg.SellZone.Y,
			W: cfg.SellZone.Width,
			H: cfg.SellZone.Height,
		},
		Species: species,
	}
}

// Handler returns the HTTP routes: the websocket endpoint and the static
// browser client.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.WSHandler())
	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		mux.Handle("/", http.FileServer(http.FS(static)))
	}
	return mux
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// WSHandler runs one client session.
func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sid := uuid.NewString()
		welcome := s.welcome
		welcome.SessionID = sid
		b, err := json.Marshal(welcome)
		if err != nil {
			slog.Error("failed to encode welcome", "error", err)
			return
		}
		if err := s.write(conn, b); err != nil {
			return
		}

		c := s.hub.register(sid)
		defer s.hub.unregister(sid)
		slog.Info("client connected", "session", sid, "remote", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		writeErr := make(chan error, 1)
		go func() {
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case b := <-c.send:
					if err := s.write(conn, b); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			s.handleMessage(c, msg)
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

		// Best-effort wait for the writer to stop so it doesn't outlive conn.
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
		slog.Info("client disconnected", "session", sid, "dropped_frames", c.dropped.Load())
	}
}

func (s *Server) write(conn *websocket.Conn, b []byte) error {
	timeout := s.cfg.Server.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}

// handleMessage validates one client message and queues it for the game.
func (s *Server) handleMessage(c *client, raw []byte) {
	msg, err := s.validator.DecodeInput(raw)
	if err != nil {
		s.sendError(c, err.Error())
		return
	}
	in := toInput(msg, func(sheet game.StatSheet, err error) {
		if err != nil {
			s.sendError(c, err.Error())
			return
		}
		s.sendJSON(c, protocol.StatsMsg{
			Type:       protocol.TypeStats,
			ID:         sheet.ID,
			Species:    sheet.Species,
			TimeInTank: sheet.TimeInTank,
			FeedCount:  sheet.FeedCount,
			Level:      sheet.Level,
			Worth:      sheet.Worth,
		})
	})
	if in == nil {
		return
	}
	if !s.inputs.Submit(in) {
		s.sendError(c, "server busy")
	}
}

func (s *Server) sendError(c *client, message string) {
	s.sendJSON(c, protocol.ErrorMsg{Type: protocol.TypeError, Message: message})
}

func (s *Server) sendJSON(c *client, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode message", "error", err)
		return
	}
	c.trySend(b)
}

// toInput maps a validated wire message to a game input. reply answers
// stat sheet requests.
func toInput(msg protocol.InputMsg, reply func(game.StatSheet, error)) game.Input {
	switch msg.Type {
	case protocol.TypePointerDown:
		return game.PointerDownInput{ID: msg.ID, X: msg.X, Y: msg.Y}
	case protocol.TypePointerMove:
		return game.PointerMoveInput{X: msg.X, Y: msg.Y}
	case protocol.TypePointerUp:
		return game.PointerUpInput{X: msg.X, Y: msg.Y}
	case protocol.TypeClick:
		return game.ClickInput{X: msg.X, Y: msg.Y}
	case protocol.TypePurchase:
		return game.PurchaseInput{Species: msg.Species}
	case protocol.TypeCancelPlacement:
		return game.CancelPlacementInput{}
	case protocol.TypeStatSheet:
		return game.StatSheetInput{ID: msg.ID, Reply: reply}
	}
	return nil
}
