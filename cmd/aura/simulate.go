package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hean-Yi/Aura/internal/config"
	"github.com/Hean-Yi/Aura/internal/log"
	"github.com/Hean-Yi/Aura/pkg/breathing"
	"github.com/Hean-Yi/Aura/pkg/mood"
	"github.com/Hean-Yi/Aura/pkg/session"
)

type simulateOptions struct {
	scenario  string
	fps       int
	seed      uint64
	breathe   bool
	showEntry bool
}

// moodChange is one point on the mood timeline, in seconds since the first
// step.
type moodChange struct {
	At   float64
	Mood mood.Mood
}

// simulation is the outcome of a replay.
type simulation struct {
	Final     mood.Mood
	Changes   []moodChange
	Ticks     int
	Particles int
	Offered   bool
	Entry     session.Entry
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a synthetic drawing and print the mood timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.scenario, "scenario", "calm", "Scenario: calm, anger, scribble")
	f.IntVar(&opts.fps, "fps", config.FrameRate(), "Simulated tick rate")
	f.Uint64Var(&opts.seed, "seed", max(config.Seed(), 1), "Random seed for particles and the scribble scenario")
	f.BoolVar(&opts.breathe, "breathe", false, "Run a guided-breathing session when it is offered")
	f.BoolVar(&opts.showEntry, "entry", false, "Print the session entry as JSON")
	return cmd
}

func runSimulate(ctx context.Context, out io.Writer, opts simulateOptions) error {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	sc, err := lookupScenario(opts.scenario, rng)
	if err != nil {
		return err
	}

	cfg := session.DefaultConfig()
	sess := session.New(cfg, sessionOptions(opts.seed)...)
	var guide *breathing.Config
	if opts.breathe {
		guide = &cfg.Breathing
	}
	result, err := replay(ctx, sess, sc, opts.fps, guide)
	if err != nil {
		return err
	}

	log.Info("simulation finished",
		"scenario", opts.scenario,
		"final", result.Final.String(),
		"changes", len(result.Changes),
		"ticks", result.Ticks)

	fmt.Fprintf(out, "scenario %s\n", opts.scenario)
	for _, c := range result.Changes {
		fmt.Fprintf(out, "  %6.2fs  %s\n", c.At, c.Mood.Label())
	}
	fmt.Fprintf(out, "final mood: %s (%d particles)\n", result.Final.Label(), result.Particles)
	if result.Offered {
		fmt.Fprintln(out, "breathing offered")
	}
	if opts.showEntry {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Entry)
	}
	return nil
}

// settleTime is how long the canvas is left idle after the last step so
// particles can settle.
const settleTime = 1.0

// replay feeds sc into s on a synthetic clock, ticking at fps between steps.
// With a non-nil guide config, an offered breathing session is started and
// followed to completion.
func replay(ctx context.Context, s *session.Session, sc scenario, fps int, guide *breathing.Config) (simulation, error) {
	if fps <= 0 {
		fps = config.DefaultFrameRate
	}
	base := time.Unix(0, 0)
	at := func(t float64) time.Time {
		return base.Add(time.Duration(t * float64(time.Second)))
	}

	var res simulation
	interval := 1 / float64(fps)
	var now, next float64
	current := s.Mood()

	tickUntil := func(t float64) error {
		for next <= t {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Tick(at(next))
			res.Ticks++
			next += interval
		}
		return nil
	}
	record := func() {
		if m := s.Mood(); m != current {
			current = m
			res.Changes = append(res.Changes, moodChange{At: now, Mood: m})
			log.Debug("mood changed", "at", now, "mood", m.String())
		}
	}

	for _, st := range sc {
		now += st.gap
		if err := tickUntil(now); err != nil {
			return res, err
		}
		if st.end {
			s.EndStroke()
			continue
		}
		s.AddPoint(st.point, at(now), st.pressure)
		record()
	}

	res.Offered = s.OfferBreathing()
	trail := settleTime
	if guide != nil && res.Offered && s.StartBreathing(at(now)) {
		record()
		// Trace the guide light until the pulse takes over.
		limit := now + 2*guide.FollowDuration
		for s.Breathing().Phase == breathing.Follow && now < limit {
			now += 0.05
			if err := tickUntil(now); err != nil {
				return res, err
			}
			f := s.Frame()
			if f.Guide == nil {
				break
			}
			s.AddPoint(*f.Guide, at(now), 0.5)
		}
		trail += guide.PulseDuration()
	}

	now += trail
	if err := tickUntil(now); err != nil {
		return res, err
	}
	record()

	res.Final = s.Mood()
	res.Particles = len(s.Particles())
	res.Entry = s.Entry(at(now))
	return res, nil
}
