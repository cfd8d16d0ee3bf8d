package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ningg/checkstyle/internal/config"
	"github.com/ningg/checkstyle/internal/lsp"
	"github.com/ningg/checkstyle/internal/observability"
	"github.com/ningg/checkstyle/pkg/engine"
	"github.com/ningg/checkstyle/pkg/version"
)

// NewLSPCommand creates the language server command.
func NewLSPCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start language server for live Java checking (LSP)",
		Long: `Start a language server (LSP) on stdio that publishes checkstyle
diagnostics for Java documents as they are opened and edited.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			providers, err := observability.Init(serverObservabilityConfig(observability.ModeLSP, cfg))
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

			eng, err := lspEngine(cfg, providers.Logger)
			if err != nil {
				return err
			}

			srv := lsp.NewServer(eng,
				lsp.WithLogger(providers.Logger),
				lsp.WithMaxDocuments(cfg.LSP.MaxDocuments),
				lsp.WithVersion(version.Version),
			)

			return srv.Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: .checkstyle.yaml in CWD or $HOME)")

	return cmd
}

// lspEngine builds the engine for live checking. The disk result cache is
// not wired: edited buffers change on every keystroke, so entries would
// almost never be hit again.
func lspEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	return engine.New(engine.DefaultRegistry(), engine.Config{
		Enabled:    cfg.Checks.Enabled,
		Properties: cfg.Checks.Properties,
		Kinds:      cfg.Checks.Kinds,
		Logger:     logger,
	})
}
