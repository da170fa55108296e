package web

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/Hean-Yi/Aura/internal/log"
	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/hub"
	"github.com/Hean-Yi/Aura/pkg/loop"
	"github.com/Hean-Yi/Aura/pkg/protocol"
	"github.com/Hean-Yi/Aura/pkg/session"
	"github.com/Hean-Yi/Aura/pkg/stroke"
)

// BreathingInfo describes the guided-breathing session.
type BreathingInfo struct {
	Phase    string  `json:"phase"`
	Progress float64 `json:"progress"`
	Prompt   string  `json:"prompt,omitempty"`
}

// Status is the response of GET /api/status.
type Status struct {
	Mood           string             `json:"mood"`
	Scores         map[string]float64 `json:"scores"`
	Valence        float64            `json:"valence"`
	Arousal        float64            `json:"arousal"`
	HasDrawn       bool               `json:"has_drawn"`
	OfferBreathing bool               `json:"offer_breathing"`
	Breathing      BreathingInfo      `json:"breathing"`
	Summary        stroke.Summary     `json:"summary"`
	Particles      int                `json:"particles"`
	Loop           loop.Stats         `json:"loop"`
	Clients        int                `json:"clients"`
	FramesSent     uint64             `json:"frames_sent"`
	Rejected       uint64             `json:"rejected"`
}

// withSession runs fn on the loop goroutine, bounded by the request timeout.
func (s *Server) withSession(c *fiber.Ctx, fn func(*session.Session)) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), s.config.RequestTimeout)
	defer cancel()
	return s.loop.Do(ctx, fn)
}

func unavailable(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// handleStatus returns the session's current state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	var status Status
	err := s.withSession(c, func(sess *session.Session) {
		va := sess.Affect()
		b := sess.Breathing()
		status = Status{
			Mood:           sess.Mood().String(),
			Scores:         sess.Scores().Map(),
			Valence:        va.Valence,
			Arousal:        va.Arousal,
			HasDrawn:       sess.HasDrawn(),
			OfferBreathing: sess.OfferBreathing(),
			Breathing: BreathingInfo{
				Phase:    b.Phase.String(),
				Progress: b.Progress,
				Prompt:   b.Prompt,
			},
			Summary:   sess.Summary(),
			Particles: len(sess.Particles()),
		}
	})
	if err != nil {
		return unavailable(c, err)
	}
	status.Loop = s.loop.Stats()
	status.Clients = s.frameHub.ClientCount() + s.inputHub.ClientCount()
	status.FramesSent = s.sent.Load()
	status.Rejected = s.rejected.Load()
	return c.JSON(status)
}

// handleEntry returns the archival entry for the current drawing
func (s *Server) handleEntry(c *fiber.Ctx) error {
	var entry session.Entry
	err := s.withSession(c, func(sess *session.Session) {
		entry = sess.Entry(time.Now())
	})
	if err != nil {
		return unavailable(c, err)
	}
	return c.JSON(entry)
}

// handleReset clears the canvas
func (s *Server) handleReset(c *fiber.Ctx) error {
	err := s.withSession(c, func(sess *session.Session) {
		sess.Reset()
	})
	if err != nil {
		return unavailable(c, err)
	}
	log.Info("session reset", "source", "api")
	return c.JSON(fiber.Map{"reset": true})
}

// handleBreathe starts guided breathing
func (s *Server) handleBreathe(c *fiber.Ctx) error {
	var started bool
	err := s.withSession(c, func(sess *session.Session) {
		started = sess.StartBreathing(time.Now())
	})
	if err != nil {
		return unavailable(c, err)
	}
	if !started {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "breathing session already running",
		})
	}
	log.Info("breathing started", "source", "api")
	return c.JSON(fiber.Map{"started": true})
}

// handleFramesWS streams frames to a render client
func (s *Server) handleFramesWS(c *websocket.Conn) {
	client := hub.NewClient(s.frameHub, c, nil)
	client.Run()
}

// handleInputWS feeds pointer input from a client into the loop
func (s *Server) handleInputWS(c *websocket.Conn) {
	in := &inputConn{server: s}
	client := hub.NewClient(s.inputHub, c, in.handle)
	client.Run()
}

// inputConn is the per-connection input state. Client sample times are
// rebased onto the server clock at the first timestamped sample, so their
// spacing is kept without trusting the client's wall clock.
type inputConn struct {
	server *Server
	offset time.Duration
	synced bool
}

// handle applies one input message. It runs on the client's read goroutine.
func (in *inputConn) handle(data []byte) {
	s := in.server
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		s.reject("parse input", err)
		return
	}
	ev, ok, err := eventFor(msg, in.stamp)
	if err != nil {
		s.reject("decode input", err)
		return
	}
	if !ok {
		log.Debug("ignored input message", "type", string(msg.Type))
		return
	}
	if err := s.loop.Submit(ev); err != nil {
		if errors.Is(err, loop.ErrQueueFull) {
			log.Warn("input queue full", "type", string(msg.Type))
			return
		}
		log.Debug("input after stop", "error", err)
	}
}

// stamp maps a client sample time in Unix milliseconds to server time.
// Zero means unstamped and is left for the loop to fill in.
func (in *inputConn) stamp(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	client := time.UnixMilli(ms)
	if !in.synced {
		in.offset = time.Since(client)
		in.synced = true
	}
	return client.Add(in.offset)
}

func (s *Server) reject(what string, err error) {
	s.rejected.Add(1)
	log.Debug(what, "error", err)
}

// eventFor maps a client message to a loop event. ok is false for messages
// that carry no input.
func eventFor(msg *protocol.Message, stamp func(int64) time.Time) (loop.Event, bool, error) {
	switch msg.Type {
	case protocol.TypePoint:
		d, err := msg.GetPointData()
		if err != nil {
			return loop.Event{}, false, err
		}
		return loop.PointEvent(geom.Pt(d.X, d.Y), d.PressureOrDefault(), stamp(d.T)), true, nil
	case protocol.TypeEndStroke:
		return loop.Event{Kind: loop.EndStroke}, true, nil
	case protocol.TypeResize:
		d, err := msg.GetResizeData()
		if err != nil {
			return loop.Event{}, false, err
		}
		return loop.ResizeEvent(geom.Size{Width: d.Width, Height: d.Height}), true, nil
	case protocol.TypeReset:
		return loop.Event{Kind: loop.Reset}, true, nil
	case protocol.TypeBreathe:
		return loop.Event{Kind: loop.StartBreathing}, true, nil
	default:
		return loop.Event{}, false, nil
	}
}
