package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ningg/checkstyle/internal/config"
	"github.com/ningg/checkstyle/internal/mcp"
	"github.com/ningg/checkstyle/internal/observability"
	"github.com/ningg/checkstyle/pkg/version"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes checkstyle capabilities as tools that AI agents
can discover and invoke:
  - checkstyle_check: Check Java code against the coding standard
  - checkstyle_rules: List available checks and their properties
  - java_parse: Parse Java code into its syntax tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			providers, err := initMCPObservability(cfg, debug)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			if metricsErr := startMetricsServer(cfg.Observability.PrometheusAddr, providers.Logger); metricsErr != nil {
				return metricsErr
			}

			red, redErr := observability.NewREDMetrics(providers.Meter)
			if redErr != nil {
				return redErr
			}

			deps := mcp.ServerDeps{
				Logger:  providers.Logger,
				Metrics: red,
				Tracer:  providers.Tracer,
				Version: version.Version,
			}

			srv := mcp.NewServer(deps)

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: .checkstyle.yaml in CWD or $HOME)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}

func initMCPObservability(cfg *config.Config, debug bool) (observability.Providers, error) {
	obsCfg := serverObservabilityConfig(observability.ModeMCP, cfg)

	if debug {
		obsCfg.LogLevel = slog.LevelDebug
	}

	return observability.Init(obsCfg)
}
