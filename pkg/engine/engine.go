// Package engine orchestrates check runs: it collects Java files, parses
// them, drives the configured checks over each tree, and aggregates the
// violations. File runs are independent and execute in parallel under a
// bounded semaphore.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/src-d/enry/v2"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/javast"
)

// ErrUnknownKind is returned when configuration narrows a check to a kind
// name outside the javast kind set.
var ErrUnknownKind = errors.New("unknown node kind")

// ResultCache bypasses parsing and checking for files whose content and
// configuration were seen before. A nil cache disables the bypass.
type ResultCache interface {
	// Key derives the cache key for the given file content.
	Key(content []byte) string
	// Lookup returns the cached violations for the key.
	Lookup(key string) ([]checks.Violation, bool)
	// Store records the violations for the key.
	Store(key string, violations []checks.Violation) error
}

// Config shapes an engine run. Checks are configured once here; they stay
// read-only for the lifetime of the engine.
type Config struct {
	// Enabled lists the checks to run. Empty means every registered check.
	Enabled []string
	// Properties carries per-check configuration maps keyed by check name.
	Properties map[string]map[string]any
	// Kinds optionally narrows the node kinds a check subscribes to.
	Kinds map[string][]string
	// MaxParallel bounds concurrent file runs. Zero means GOMAXPROCS.
	MaxParallel int
	// Cache is the optional result cache.
	Cache ResultCache
	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// Engine runs configured checks over files. It is safe for concurrent use:
// the walker and check configuration are frozen at construction.
type Engine struct {
	parser      *javast.Parser
	walker      *checks.Walker
	cache       ResultCache
	log         *slog.Logger
	maxParallel int
}

// New builds an engine from the registry and configuration. Every enabled
// check is instantiated, configured and subscribed before the first run.
func New(registry *checks.Registry, cfg Config) (*Engine, error) {
	names := cfg.Enabled
	if len(names) == 0 {
		names = registry.Names()
	}

	walker := checks.NewWalker()

	for _, name := range names {
		check, err := registry.New(name)
		if err != nil {
			return nil, err
		}

		if props := cfg.Properties[name]; props != nil {
			if err := check.Configure(props); err != nil {
				return nil, fmt.Errorf("configure %s: %w", name, err)
			}
		}

		kinds, err := kindSetFromNames(cfg.Kinds[name])
		if err != nil {
			return nil, fmt.Errorf("configure %s: %w", name, err)
		}

		if err := walker.Register(check, kinds); err != nil {
			return nil, err
		}
	}

	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = runtime.GOMAXPROCS(0)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		parser:      javast.NewParser(),
		walker:      walker,
		cache:       cfg.Cache,
		log:         logger,
		maxParallel: maxParallel,
	}, nil
}

func kindSetFromNames(names []string) (javast.KindSet, error) {
	var set javast.KindSet

	for _, name := range names {
		kind, ok := javast.KindFromString(name)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownKind, name)
		}

		set = set.Add(kind)
	}

	return set, nil
}

// Run checks every Java file reachable from the given paths. Per-file parse
// failures are reported in the result; only context cancellation aborts the
// run.
func (e *Engine) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()

	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, e.maxParallel)
	)

	for _, file := range files {
		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if ctx.Err() != nil {
				return
			}

			fileResult, runErr := e.CheckFile(ctx, file)

			mu.Lock()
			defer mu.Unlock()

			if runErr != nil {
				result.Failures = append(result.Failures, FileFailure{Path: file, Reason: runErr.Error()})

				return
			}

			if fileResult.Skipped {
				result.Stats.FilesSkipped++

				return
			}

			result.Files = append(result.Files, fileResult)
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("run: %w", ctx.Err())
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	sort.Slice(result.Failures, func(i, j int) bool { return result.Failures[i].Path < result.Failures[j].Path })

	result.Stats.Files = len(result.Files)
	result.Stats.FilesFailed = len(result.Failures)
	result.Stats.Duration = time.Since(start)

	for i := range result.Files {
		result.Stats.Violations += len(result.Files[i].Violations)
		result.Stats.CacheHits += result.Files[i].cacheHits
		result.Stats.BytesScanned += result.Files[i].bytes
	}

	return result, nil
}

// CheckFile runs the configured checks over one file on disk.
func (e *Engine) CheckFile(ctx context.Context, path string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	return e.CheckSource(ctx, path, content)
}

// CheckSource runs the configured checks over in-memory content. The path
// only labels the result; nothing is read from disk.
func (e *Engine) CheckSource(ctx context.Context, path string, src []byte) (FileResult, error) {
	result := FileResult{Path: path, bytes: int64(len(src))}

	if enry.IsGenerated(filepath.Base(path), src) {
		e.log.Debug("skipping generated file", "path", path)

		result.Skipped = true

		return result, nil
	}

	var key string

	if e.cache != nil {
		key = e.cache.Key(src)

		if cached, ok := e.cache.Lookup(key); ok {
			e.log.Debug("cache hit", "path", path)

			result.Violations = cached
			result.cacheHits = 1

			return result, nil
		}
	}

	root, err := e.parser.Parse(ctx, src)
	if err != nil {
		return FileResult{}, err
	}

	collector := &checks.Collector{}
	e.walker.Walk(root, collector)
	result.Violations = collector.Violations()

	if e.cache != nil {
		if err := e.cache.Store(key, result.Violations); err != nil {
			e.log.Warn("cache store failed", "path", path, "error", err)
		}
	}

	return result, nil
}
