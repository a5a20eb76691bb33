// Package commands wires the reliefctl cobra command tree.
package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reliefgrid/coordinator/pkg/infrastructure/config"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/logging"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"

	verbose    bool
	configPath string
	outputFmt  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reliefctl",
	Short: "reliefctl coordinates disaster-relief needs, supplies, and shipments",
	Long: `reliefctl runs the priority manager, matching engine, and dashboard
panic detector described by the relief-coordination specification against
an in-memory scenario.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := logging.Init(logging.Options{Verbose: verbose}); err != nil {
			panic(err)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load configuration")
		}

		log.Info().Str("version", Version).Msg("reliefctl starting")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to relief.yaml (optional)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format: text or json")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(serveDemoCmd)
}
