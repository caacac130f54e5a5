// Command carbexctl runs report exports and maintenance tasks against a
// carbex deployment, using the same CARBEX_ environment as the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carbex/internal/config"
	"carbex/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "carbexctl",
		Short: "Carbex operations tool",
		Long: `carbexctl drives a carbex deployment from the command line.

Available commands:
  export  - Generate an ADEME, GHG Protocol, Word or PDF report
  seed    - Load reference data such as the emission category catalog
  token   - Mint a signed access token for local testing
  migrate - Apply or roll back database migrations`,
		SilenceUsage: true,
	}
	root.AddCommand(newExportCmd(), newSeedCmd(), newTokenCmd(), newMigrateCmd())
	return root
}

// loadEnv reads the CARBEX_ configuration and builds the process logger.
func loadEnv() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, lg, nil
}
