package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Hean-Yi/Aura/internal/config"
	"github.com/Hean-Yi/Aura/internal/log"
	"github.com/Hean-Yi/Aura/pkg/loop"
	"github.com/Hean-Yi/Aura/pkg/session"
	"github.com/Hean-Yi/Aura/pkg/web"
)

type serveOptions struct {
	port          string
	fps           int
	broadcastRate int
	staticDir     string
	maxParticles  int
	seed          uint64
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the frame loop behind the preview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.port, "port", config.Port(config.DefaultPort), "HTTP port (env AURA_PORT)")
	f.IntVar(&opts.fps, "fps", config.FrameRate(), "Simulation tick rate (env AURA_FPS)")
	f.IntVar(&opts.broadcastRate, "broadcast-rate", web.DefaultConfig().BroadcastRate, "Frame broadcasts per second")
	f.StringVar(&opts.staticDir, "static", "", "Directory served at /")
	f.IntVar(&opts.maxParticles, "max-particles", config.MaxParticles(), "Particle cap (env AURA_MAX_PARTICLES)")
	f.Uint64Var(&opts.seed, "seed", config.Seed(), "Random seed, 0 seeds from the clock (env AURA_SEED)")
	return cmd
}

// sessionOptions seeds the particle source when a seed is given.
func sessionOptions(seed uint64) []session.Option {
	if seed == 0 {
		return nil
	}
	return []session.Option{session.WithRand(rand.New(rand.NewPCG(seed, seed)))}
}

func runServe(ctx context.Context, opts serveOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := session.DefaultConfig()
	cfg.Particles.MaxParticles = opts.maxParticles
	sess := session.New(cfg, sessionOptions(opts.seed)...)

	loopCfg := loop.DefaultConfig()
	loopCfg.FrameRate = opts.fps
	frames := loop.New(sess, loopCfg)

	srv := web.NewServer(web.Config{
		Port:          opts.port,
		BroadcastRate: opts.broadcastRate,
		StaticDir:     opts.staticDir,
	}, frames)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- frames.Run(ctx)
	}()

	log.Info("aura preview", "url", fmt.Sprintf("http://localhost:%s", opts.port), "fps", opts.fps)
	if err := srv.Run(ctx); err != nil {
		cancel()
		<-loopErr
		return fmt.Errorf("preview server: %w", err)
	}
	return <-loopErr
}
