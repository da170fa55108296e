// Aura - stroke-driven mood visualisation engine
// Serves the live preview or replays synthetic drawings headlessly
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Hean-Yi/Aura/internal/config"
	"github.com/Hean-Yi/Aura/internal/log"
)

var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "aura",
		Short: "Stroke-driven mood visualisation engine",
		Long: `aura turns pointer strokes into a mood estimate and a particle field
that settles into a mood-specific pattern.

serve runs the frame loop behind a websocket preview server.
simulate replays a synthetic drawing and prints the mood timeline.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.InitWriter(logLevel, cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "Log level: debug, info, warn, error")

	cmd.AddCommand(newServeCmd(), newSimulateCmd())
	return cmd
}
