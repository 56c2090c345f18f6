package cli

import (
	"context"
	"os"

	"foodfacts/explorer/internal/config"
	"foodfacts/explorer/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "foodcart",
	Short: "Browse the OpenFoodFacts catalog and manage a local shopping cart",
	Long: `foodcart queries the public OpenFoodFacts product database and keeps a
shopping cart on this machine. The cart survives across runs; the catalog
is always queried live.

Listings can be paged, filtered by category, searched by name and sorted
client-side by product name or nutrition grade.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose diagnostics")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp loads the configuration and wires the full component graph.
func newApp(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(ctx, cfg)
}
