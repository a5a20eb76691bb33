package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reliefgrid/coordinator/pkg/application/services/matching"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/events"
	"github.com/reliefgrid/coordinator/pkg/interfaces/cli/demo"
	"github.com/reliefgrid/coordinator/pkg/interfaces/cli/output"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a single matching pass over the seeded demo scenario",
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

		return output.Matching(os.Stdout, result, output.Format(outputFmt))
	},
}
