// Package loop owns a session on a single goroutine. Input from any goroutine
// is queued and applied between frame ticks, so the session keeps exactly one
// writer.
package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Hean-Yi/Aura/internal/log"
	"github.com/Hean-Yi/Aura/pkg/session"
)

// Config holds loop parameters.
type Config struct {
	// FrameRate is the tick rate in Hz.
	FrameRate int

	// QueueSize bounds the number of pending input events.
	QueueSize int

	// HeartbeatEvery logs loop statistics every N ticks; 0 disables it.
	HeartbeatEvery uint64
}

// DefaultConfig returns a 60 Hz loop.
func DefaultConfig() Config {
	return Config{
		FrameRate:      60,
		QueueSize:      1024,
		HeartbeatEvery: 600,
	}
}

// Stats are loop counters.
type Stats struct {
	Ticks   uint64 `json:"ticks"`
	Events  uint64 `json:"events"`
	Dropped uint64 `json:"dropped"`
	Running bool   `json:"running"`
}

// FrameFunc receives every rendered frame on the loop goroutine.
type FrameFunc func(session.Frame)

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the wall clock used to stamp ticks and events.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		l.now = now
	}
}

type call struct {
	fn   func(*session.Session)
	done chan struct{}
}

// Loop drives a session at a fixed frame rate.
type Loop struct {
	config  Config
	session *session.Session
	now     func() time.Time

	events chan Event
	calls  chan call
	done   chan struct{}

	mu      sync.RWMutex
	onFrame []FrameFunc

	started atomic.Bool
	running atomic.Bool
	ticks   atomic.Uint64
	handled atomic.Uint64
	dropped atomic.Uint64
}

// New creates a loop around s. Call Run to start it.
func New(s *session.Session, cfg Config, opts ...Option) *Loop {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultConfig().FrameRate
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	l := &Loop{
		config:  cfg,
		session: s,
		now:     time.Now,
		events:  make(chan Event, cfg.QueueSize),
		calls:   make(chan call),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnFrame registers a callback for every frame. Callbacks run on the loop
// goroutine and must not block.
func (l *Loop) OnFrame(fn FrameFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFrame = append(l.onFrame, fn)
}

// Submit queues an event without blocking.
func (l *Loop) Submit(ev Event) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	if ev.At.IsZero() {
		ev.At = l.now()
	}
	select {
	case l.events <- ev:
		return nil
	default:
		l.dropped.Add(1)
		return ErrQueueFull
	}
}

// Do runs fn on the loop goroutine and waits for it to return. Events
// submitted before the call are applied first.
func (l *Loop) Do(ctx context.Context, fn func(*session.Session)) error {
	c := call{fn: fn, done: make(chan struct{})}
	select {
	case l.calls <- c:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-c.done:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run ticks the session until ctx is cancelled. It may be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrStopped
	}

	interval := time.Second / time.Duration(l.config.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.running.Store(true)
	defer func() {
		l.running.Store(false)
		close(l.done)
	}()

	log.Info("frame loop started", "fps", l.config.FrameRate)

	for {
		select {
		case <-ctx.Done():
			log.Info("frame loop stopped",
				"ticks", l.ticks.Load(),
				"events", l.handled.Load(),
				"dropped", l.dropped.Load())
			return nil
		case ev := <-l.events:
			l.apply(ev)
		case c := <-l.calls:
			l.drain()
			c.fn(l.session)
			close(c.done)
		case <-ticker.C:
			l.drain()
			l.tick()
		}
	}
}

// drain applies every event queued before the tick.
func (l *Loop) drain() {
	for {
		select {
		case ev := <-l.events:
			l.apply(ev)
		default:
			return
		}
	}
}

func (l *Loop) apply(ev Event) {
	s := l.session
	switch ev.Kind {
	case Point:
		s.AddPoint(ev.Location, ev.At, ev.Pressure)
	case EndStroke:
		s.EndStroke()
	case Resize:
		s.SetCanvasSize(ev.Size)
	case Reset:
		s.Reset()
		log.Debug("session reset")
	case StartBreathing:
		if s.StartBreathing(ev.At) {
			log.Debug("breathing started")
		}
	default:
		log.Warn("unknown event", "kind", int(ev.Kind))
		return
	}
	l.handled.Add(1)
}

func (l *Loop) tick() {
	frame := l.session.Tick(l.now())
	n := l.ticks.Add(1)

	l.mu.RLock()
	for _, fn := range l.onFrame {
		fn(frame)
	}
	l.mu.RUnlock()

	if every := l.config.HeartbeatEvery; every > 0 && n%every == 0 {
		log.Debug("frame loop heartbeat",
			"ticks", n,
			"events", l.handled.Load(),
			"dropped", l.dropped.Load(),
			"particles", len(frame.Particles),
			"mood", frame.Mood.String())
	}
}

// Stats returns the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Ticks:   l.ticks.Load(),
		Events:  l.handled.Load(),
		Dropped: l.dropped.Load(),
		Running: l.running.Load(),
	}
}
