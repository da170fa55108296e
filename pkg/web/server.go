// Package web provides the Aura preview server: a small HTTP API plus
// websocket endpoints that feed pointer input into the frame loop and stream
// rendered frames back out.
package web

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/Hean-Yi/Aura/internal/log"
	"github.com/Hean-Yi/Aura/pkg/hub"
	"github.com/Hean-Yi/Aura/pkg/loop"
	"github.com/Hean-Yi/Aura/pkg/protocol"
	"github.com/Hean-Yi/Aura/pkg/session"
)

// Config holds preview server parameters.
type Config struct {
	// Port to listen on.
	Port string

	// BroadcastRate caps frame broadcasts per second.
	BroadcastRate int

	// StaticDir is served at / when set.
	StaticDir string

	// RequestTimeout bounds API calls that wait on the frame loop.
	RequestTimeout time.Duration
}

// DefaultConfig returns the default preview server configuration.
func DefaultConfig() Config {
	return Config{
		Port:           "8090",
		BroadcastRate:  30,
		RequestTimeout: 2 * time.Second,
	}
}

// Server is the preview server
type Server struct {
	app    *fiber.App
	config Config
	loop   *loop.Loop

	// Hubs for websocket fan-out
	frameHub *hub.Hub
	inputHub *hub.Hub

	// Latest frame from the loop, versioned so unchanged frames are skipped
	latest  atomic.Pointer[session.Frame]
	version atomic.Uint64

	sent     atomic.Uint64
	rejected atomic.Uint64
}

// NewServer creates a preview server driving l.
func NewServer(cfg Config, l *loop.Loop) *Server {
	def := DefaultConfig()
	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if cfg.BroadcastRate <= 0 {
		cfg.BroadcastRate = def.BroadcastRate
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}

	s := &Server{
		config:   cfg,
		loop:     l,
		frameHub: hub.New("frames"),
		inputHub: hub.New("input"),
	}
	l.OnFrame(func(f session.Frame) {
		s.latest.Store(&f)
		s.version.Add(1)
	})

	app := fiber.New(fiber.Config{
		AppName:               "Aura Preview",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/entry", s.handleEntry)
	api.Post("/reset", s.handleReset)
	api.Post("/breathe", s.handleBreathe)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/input", websocket.New(s.handleInputWS))
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on the configured port until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.config.Port)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Info("preview server listening", "addr", ln.Addr().String())

	go s.frameHub.Run(ctx)
	go s.inputHub.Run(ctx)
	go s.broadcastFrames(ctx)

	errc := make(chan error, 1)
	go func() {
		errc <- s.app.Listener(ln)
	}()

	select {
	case <-ctx.Done():
		if err := s.app.Shutdown(); err != nil {
			return err
		}
		log.Info("preview server stopped", "frames_sent", s.sent.Load())
		return nil
	case err := <-errc:
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	}
}

// broadcastFrames sends the newest frame to frame clients at BroadcastRate.
func (s *Server) broadcastFrames(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.config.BroadcastRate))
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v := s.version.Load()
			if v == last || s.frameHub.ClientCount() == 0 {
				continue
			}
			f := s.latest.Load()
			if f == nil {
				continue
			}
			last = v

			msg, err := protocol.NewFrameMessage(*f)
			if err != nil {
				log.Error("encode frame", "error", err)
				continue
			}
			data, err := msg.Bytes()
			if err != nil {
				log.Error("encode frame", "error", err)
				continue
			}
			s.frameHub.Broadcast(hub.NewJSONMessage(data))
			s.sent.Add(1)
		}
	}
}

// FrameHub returns the frame broadcast hub.
func (s *Server) FrameHub() *hub.Hub {
	return s.frameHub
}

// InputHub returns the input connection hub.
func (s *Server) InputHub() *hub.Hub {
	return s.inputHub
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
