package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reliefgrid/coordinator/pkg/application/services/dashboard"
	"github.com/reliefgrid/coordinator/pkg/application/services/matching"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/events"
	"github.com/reliefgrid/coordinator/pkg/interfaces/cli/demo"
	"github.com/reliefgrid/coordinator/pkg/interfaces/cli/output"
)

var serveDemoCmd = &cobra.Command{
	Use:   "serve-demo",
	Short: "Seed a sample scenario, run one matching pass, and print the resulting dashboard",
	Long: `serve-demo seeds a handful of needs, supplies, and shipments in memory,
runs a single matching pass, and prints the dashboard snapshot that
results. It exists for manually smoke-testing the wiring end to end; it is
not part of the core's test surface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		sink := events.NewMemorySink()
		scenario := demo.Build(now, sink)

		pm := priority.NewManager(cfg.Aging.Thresholds())

		engine := matching.NewEngine(cfg.Matching.ToMatchingConfig(), pm, sink)
		result, err := engine.Run(scenario.Needs, scenario.Supplies, now)
		if err != nil {
			log.Error().Err(err).Msg("matching pass failed")
			return fmt.Errorf("run matching pass: %w", err)
		}
		if err := output.Matching(os.Stdout, result, output.Format(outputFmt)); err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout)

		d := dashboard.New(pm, cfg.Panic.ToPanicConfig(), sink)
		snap := d.Snapshot(scenario.Needs, scenario.Supplies, scenario.Shipments, now, topN)
		return output.Dashboard(os.Stdout, snap, output.Format(outputFmt))
	},
}
