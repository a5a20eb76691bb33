package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/reliefgrid/coordinator/pkg/application/services/dashboard"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/events"
	"github.com/reliefgrid/coordinator/pkg/interfaces/cli/demo"
	"github.com/reliefgrid/coordinator/pkg/interfaces/cli/output"
)

var topN int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print an operational snapshot over the seeded demo scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		sink := events.NewMemorySink()
		scenario := demo.Build(now, sink)

		pm := priority.NewManager(cfg.Aging.Thresholds())
		d := dashboard.New(pm, cfg.Panic.ToPanicConfig(), sink)

		snap := d.Snapshot(scenario.Needs, scenario.Supplies, scenario.Shipments, now, topN)

		return output.Dashboard(os.Stdout, snap, output.Format(outputFmt))
	},
}

func init() {
	dashboardCmd.Flags().IntVar(&topN, "top", 5, "number of critical-missing needs to show")
}
