// Package commands implements CLI command handlers for checkstyle.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ningg/checkstyle/internal/config"
	"github.com/ningg/checkstyle/internal/gitdiff"
	"github.com/ningg/checkstyle/internal/observability"
	"github.com/ningg/checkstyle/internal/render"
	"github.com/ningg/checkstyle/internal/resultcache"
	"github.com/ningg/checkstyle/pkg/engine"
	"github.com/ningg/checkstyle/pkg/version"
)

// checkExecutor runs the configured engine over the given roots.
type checkExecutor func(ctx context.Context, eng *engine.Engine, paths []string) (*engine.Result, error)

// changeLister answers which files and lines changed since a revision.
type changeLister interface {
	Workdir() string
	ChangedJavaFiles(ctx context.Context, since string) ([]string, error)
	ChangedLines(ctx context.Context, since, path string) (gitdiff.Lines, error)
	Free()
}

// repoOpener opens the git repository used for change scoping.
type repoOpener func(path string) (changeLister, error)

// observabilityInit boots the telemetry providers for a command run.
type observabilityInit func(cfg observability.Config) (observability.Providers, error)

// ErrViolationsFound is returned when fail-on-violation is active and the
// run found style violations.
var ErrViolationsFound = errors.New("violations found")

// CheckCommand holds configuration and dependencies for the check command.
type CheckCommand struct {
	configPath       string
	format           string
	outputPath       string
	checks           []string
	parallel         int
	noCache          bool
	changedSince     string
	onlyChangedLines bool
	silent           bool
	noColor          bool
	path             string

	exec     checkExecutor
	openRepo repoOpener
	obsInit  observabilityInit
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return newCheckCommandWithDeps(runEngine, openGitRepo, observability.Init)
}

func newCheckCommandWithDeps(exec checkExecutor, openRepo repoOpener, obsInit observabilityInit) *cobra.Command {
	cc := &CheckCommand{
		format:   render.FormatText,
		exec:     exec,
		openRepo: openRepo,
		obsInit:  obsInit,
	}

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check Java files against the coding standard",
		Long:  "Check Java files under the given paths and report style violations.",
		Args:  cobra.ArbitraryArgs,
		RunE:  cc.run,
	}

	cmd.Flags().StringVarP(&cc.configPath, "config", "c", "", "Config file path (default: .checkstyle.yaml in CWD or $HOME)")
	cmd.Flags().StringVar(&cc.format, "format", render.FormatText, "Output format: text, json, html")
	cmd.Flags().StringVarP(&cc.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringSliceVar(&cc.checks, "checks", nil, "Checks to run (example: ClassMemberImpliedModifier,ModifierOrder)")
	cmd.Flags().IntVar(&cc.parallel, "parallel", 0, "Max concurrent file checks (0 = CPU count)")
	cmd.Flags().BoolVar(&cc.noCache, "no-cache", false, "Disable the result cache")
	cmd.Flags().StringVar(&cc.changedSince, "changed-since", "", "Check only files changed since this revision (branch, tag, hash)")
	cmd.Flags().BoolVar(&cc.onlyChangedLines, "only-changed-lines", false, "Report only violations on lines changed since --changed-since")
	cmd.Flags().Bool("fail-on-violation", true, "Exit non-zero when violations are found")
	cmd.Flags().BoolVar(&cc.silent, "silent", false, "Disable progress output")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "Disable colored text output")
	cmd.Flags().StringVarP(&cc.path, "path", "p", ".", "Root path to check")

	return cmd
}

func (cc *CheckCommand) run(cmd *cobra.Command, args []string) error {
	paths := cc.resolvePaths(args)
	silent := cc.isSilent(cmd)
	progressWriter := cmd.ErrOrStderr()

	if cc.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(cc.configPath)
	if err != nil {
		return err
	}

	cfg.ApplyOverrides(cc.overrides(cmd))

	providers, err := cc.obsInit(cliObservabilityConfig(cfg))
	if err != nil {
		return err
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	restoreLogger := suppressStandardLogger(silent)
	defer restoreLogger()

	ctx, span := providers.Tracer.Start(cmd.Context(), "check.run")
	defer span.End()

	cc.progressf(silent, progressWriter, "starting check paths=%v", paths)

	eng, err := buildEngine(cfg, providers.Logger)
	if err != nil {
		return err
	}

	paths, lineFilter, err := cc.scopeToChanges(ctx, paths, silent, progressWriter)
	if err != nil {
		return err
	}

	result, err := cc.exec(ctx, eng, paths)
	if err != nil {
		return err
	}

	if lineFilter != nil {
		filterToChangedLines(result, lineFilter)
	}

	writer, closeOutput, err := cc.resolveOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOutput()

	renderer, err := render.New(cc.format)
	if err != nil {
		return err
	}

	if renderErr := renderer.Render(writer, result); renderErr != nil {
		return renderErr
	}

	cc.progressf(silent, progressWriter, "checked %d files in %s: %d violations",
		result.Stats.Files, result.Stats.Duration.Round(time.Millisecond), result.Stats.Violations)

	if cfg.Engine.FailOnViolation && result.HasViolations() {
		return fmt.Errorf("%w: %d", ErrViolationsFound, result.Stats.Violations)
	}

	return nil
}

func (cc *CheckCommand) resolvePaths(args []string) []string {
	if len(args) > 0 {
		return args
	}

	return []string{cc.path}
}

func (cc *CheckCommand) overrides(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{
		Checks:   cc.checks,
		Parallel: cc.parallel,
		NoCache:  cc.noCache,
	}

	if verboseFlag(cmd) {
		o.LogLevel = "debug"
	}

	if cmd.Flags().Changed("fail-on-violation") {
		v, err := cmd.Flags().GetBool("fail-on-violation")
		if err == nil {
			o.FailOnViolation = &v
		}
	}

	return o
}

// scopeToChanges narrows the run to files changed since the base revision.
// With --only-changed-lines it also returns the per-file changed line sets
// used to filter the violations afterwards.
func (cc *CheckCommand) scopeToChanges(
	ctx context.Context,
	paths []string,
	silent bool,
	progressWriter io.Writer,
) ([]string, map[string]gitdiff.Lines, error) {
	if cc.changedSince == "" {
		return paths, nil, nil
	}

	repo, err := cc.openRepo(paths[0])
	if err != nil {
		return nil, nil, err
	}
	defer repo.Free()

	changed, err := repo.ChangedJavaFiles(ctx, cc.changedSince)
	if err != nil {
		return nil, nil, err
	}

	cc.progressf(silent, progressWriter, "changed since %s: %d Java files", cc.changedSince, len(changed))

	scoped := make([]string, 0, len(changed))

	var lineFilter map[string]gitdiff.Lines

	if cc.onlyChangedLines {
		lineFilter = make(map[string]gitdiff.Lines, len(changed))
	}

	for _, rel := range changed {
		abs := filepath.Join(repo.Workdir(), rel)
		scoped = append(scoped, abs)

		if lineFilter == nil {
			continue
		}

		lines, linesErr := repo.ChangedLines(ctx, cc.changedSince, rel)
		if linesErr != nil {
			return nil, nil, linesErr
		}

		lineFilter[abs] = lines
	}

	return scoped, lineFilter, nil
}

// filterToChangedLines drops violations outside the changed line sets and
// recomputes the violation total. Files without line data keep their
// violations.
func filterToChangedLines(result *engine.Result, filter map[string]gitdiff.Lines) {
	total := 0

	for i := range result.Files {
		lines, ok := filter[result.Files[i].Path]
		if ok {
			kept := result.Files[i].Violations[:0]

			for _, violation := range result.Files[i].Violations {
				if lines.Contains(violation.Pos.Line) {
					kept = append(kept, violation)
				}
			}

			result.Files[i].Violations = kept
		}

		total += len(result.Files[i].Violations)
	}

	result.Stats.Violations = total
}

func (cc *CheckCommand) resolveOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	if cc.outputPath == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	file, err := os.Create(cc.outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", cc.outputPath, err)
	}

	return file, func() { _ = file.Close() }, nil
}

// buildEngine assembles the engine from the loaded configuration, wiring
// the result cache keyed by the config fingerprint when enabled.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	engineCfg := engine.Config{
		Enabled:     cfg.Checks.Enabled,
		Properties:  cfg.Checks.Properties,
		Kinds:       cfg.Checks.Kinds,
		MaxParallel: cfg.Engine.Parallel,
		Logger:      logger,
	}

	if cfg.Cache.Enabled {
		fingerprint, err := cfg.Checks.Fingerprint(version.Version)
		if err != nil {
			return nil, err
		}

		cache, err := resultcache.New(cfg.Cache.Directory, fingerprint, resultcache.WithLogger(logger))
		if err != nil {
			return nil, err
		}

		engineCfg.Cache = cache
	}

	return engine.New(engine.DefaultRegistry(), engineCfg)
}

func runEngine(ctx context.Context, eng *engine.Engine, paths []string) (*engine.Result, error) {
	return eng.Run(ctx, paths)
}

func openGitRepo(path string) (changeLister, error) {
	return gitdiff.Open(path)
}

func (cc *CheckCommand) isSilent(cmd *cobra.Command) bool {
	if cc.silent {
		return true
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}

// verboseFlag reads the root --verbose persistent flag; commands executed
// standalone (tests) have no such flag.
func verboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}

	return verbose
}

func (cc *CheckCommand) progressf(silent bool, writer io.Writer, format string, args ...any) {
	if silent {
		return
	}

	_, _ = fmt.Fprintf(writer, "progress: "+format+"\n", args...)
}

// suppressStandardLogger silences the global log package for silent runs,
// returning a restore func.
func suppressStandardLogger(silent bool) func() {
	if !silent {
		return func() {}
	}

	previousWriter := log.Writer()
	previousPrefix := log.Prefix()
	previousFlags := log.Flags()

	log.SetOutput(io.Discard)

	return func() {
		log.SetOutput(previousWriter)
		log.SetPrefix(previousPrefix)
		log.SetFlags(previousFlags)
	}
}
