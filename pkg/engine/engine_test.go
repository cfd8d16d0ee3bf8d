package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/checks/modifier"
)

const violatingSource = `class Person {
    interface Address {
    }
}
`

const cleanSource = `class Person {
    static interface Address {
    }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()

	eng, err := New(DefaultRegistry(), cfg)
	require.NoError(t, err)

	return eng
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	names := DefaultRegistry().Names()

	assert.Equal(t, []string{
		modifier.ClassMemberImpliedModifierName,
		modifier.InterfaceMemberImpliedModifierName,
		modifier.ModifierOrderName,
	}, names)
}

func TestEngineRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Person.java", violatingSource)
	writeFile(t, dir, "Clean.java", cleanSource)

	eng := newEngine(t, Config{Enabled: []string{modifier.ClassMemberImpliedModifierName}})

	result, err := eng.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "Clean.java"), result.Files[0].Path)
	assert.Empty(t, result.Files[0].Violations)
	assert.Equal(t, filepath.Join(dir, "Person.java"), result.Files[1].Path)
	require.Len(t, result.Files[1].Violations, 1)

	assert.Equal(t, 2, result.Stats.Files)
	assert.Equal(t, 1, result.Stats.Violations)
	assert.Positive(t, result.Stats.BytesScanned)
	assert.True(t, result.HasViolations())
}

func TestEngineRunAllChecksByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Holder.java", `class Holder {
    static public enum Kind { ALPHA }
}
`)

	eng := newEngine(t, Config{})

	result, err := eng.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	// ClassMemberImpliedModifier stays quiet (static written), ModifierOrder
	// flags the swapped keywords.
	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].Violations, 1)
	assert.Equal(t, modifier.ModifierOrderName, result.Files[0].Violations[0].Check)
}

func TestEngineRunAppliesProperties(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Person.java", violatingSource)

	eng := newEngine(t, Config{
		Enabled: []string{modifier.ClassMemberImpliedModifierName},
		Properties: map[string]map[string]any{
			modifier.ClassMemberImpliedModifierName: {
				modifier.PropEnforceStaticOnNestedInterface: false,
			},
		},
	})

	result, err := eng.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Empty(t, result.Files[0].Violations)
}

func TestEngineRunRecordsParseFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Broken.java", "]]] not java ]]]")
	writeFile(t, dir, "Person.java", violatingSource)

	eng := newEngine(t, Config{Enabled: []string{modifier.ClassMemberImpliedModifierName}})

	result, err := eng.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, filepath.Join(dir, "Broken.java"), result.Failures[0].Path)
	assert.Equal(t, 1, result.Stats.FilesFailed)

	// The healthy file is still checked.
	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].Violations, 1)
}

func TestEngineRunCanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Person.java", violatingSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := newEngine(t, Config{})

	_, err := eng.Run(ctx, []string{dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineNewUnknownCheck(t *testing.T) {
	t.Parallel()

	_, err := New(DefaultRegistry(), Config{Enabled: []string{"NoSuchCheck"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, checks.ErrUnknownCheck)
}

func TestEngineNewUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := New(DefaultRegistry(), Config{
		Enabled: []string{modifier.ClassMemberImpliedModifierName},
		Kinds: map[string][]string{
			modifier.ClassMemberImpliedModifierName: {"NoSuchKind"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestEngineNewRejectsBadProperty(t *testing.T) {
	t.Parallel()

	_, err := New(DefaultRegistry(), Config{
		Enabled: []string{modifier.ClassMemberImpliedModifierName},
		Properties: map[string]map[string]any{
			modifier.ClassMemberImpliedModifierName: {"bogus": true},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, checks.ErrUnknownProperty)
}

func TestEngineCheckSource(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, Config{Enabled: []string{modifier.ClassMemberImpliedModifierName}})

	result, err := eng.CheckSource(context.Background(), "Person.java", []byte(violatingSource))
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "class.implied.modifier", result.Violations[0].Key)
}

// fakeCache counts lookups and stores, serving one canned entry.
type fakeCache struct {
	entries map[string][]checks.Violation
	stores  int
}

func (f *fakeCache) Key(content []byte) string {
	return string(content[:8])
}

func (f *fakeCache) Lookup(key string) ([]checks.Violation, bool) {
	violations, ok := f.entries[key]

	return violations, ok
}

func (f *fakeCache) Store(key string, violations []checks.Violation) error {
	f.stores++
	f.entries[key] = violations

	return nil
}

func TestEngineUsesCache(t *testing.T) {
	t.Parallel()

	cache := &fakeCache{entries: make(map[string][]checks.Violation)}
	eng := newEngine(t, Config{
		Enabled: []string{modifier.ClassMemberImpliedModifierName},
		Cache:   cache,
	})

	first, err := eng.CheckSource(context.Background(), "Person.java", []byte(violatingSource))
	require.NoError(t, err)
	require.Len(t, first.Violations, 1)
	assert.Equal(t, 1, cache.stores)

	second, err := eng.CheckSource(context.Background(), "Person.java", []byte(violatingSource))
	require.NoError(t, err)
	assert.Equal(t, first.Violations, second.Violations)
	// Second pass is served from the cache, nothing is stored again.
	assert.Equal(t, 1, cache.stores)
}
