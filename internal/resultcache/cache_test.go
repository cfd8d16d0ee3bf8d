package resultcache

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/javast"
)

func sampleViolations() []checks.Violation {
	return []checks.Violation{
		{
			Pos:   javast.Position{Line: 2, Col: 5},
			Key:   "class.implied.modifier",
			Args:  []any{"static"},
			Check: "ClassMemberImpliedModifier",
		},
		{
			Pos:   javast.Position{Line: 4, Col: 12},
			Key:   "mod.order",
			Args:  []any{"public"},
			Check: "ModifierOrder",
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache, err := New(t.TempDir(), "fp-1")
	require.NoError(t, err)

	key := cache.Key([]byte("class Person {}\n"))
	require.Len(t, key, 64)

	_, ok := cache.Lookup(key)
	assert.False(t, ok)

	violations := sampleViolations()
	require.NoError(t, cache.Store(key, violations))

	got, ok := cache.Lookup(key)
	require.True(t, ok)
	assert.Equal(t, violations, got)
	assert.Equal(t, "Implied modifier 'static' should be explicit.", got[0].Message())
}

func TestCacheStoresEmptyResult(t *testing.T) {
	t.Parallel()

	cache, err := New(t.TempDir(), "fp-1")
	require.NoError(t, err)

	key := cache.Key([]byte("class Clean {}\n"))
	require.NoError(t, cache.Store(key, nil))

	got, ok := cache.Lookup(key)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCacheKeyBinding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cache, err := New(dir, "fp-1")
	require.NoError(t, err)

	other, err := New(dir, "fp-2")
	require.NoError(t, err)

	content := []byte("class Person {}\n")

	// Same content, same fingerprint: stable key.
	assert.Equal(t, cache.Key(content), cache.Key(content))

	// Content changes the key.
	assert.NotEqual(t, cache.Key(content), cache.Key([]byte("class Other {}\n")))

	// Fingerprint changes the key, so config or version bumps miss.
	assert.NotEqual(t, cache.Key(content), other.Key(content))
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cache, err := New(dir, "fp-1")
	require.NoError(t, err)

	key := cache.Key([]byte("class Person {}\n"))
	require.NoError(t, cache.Store(key, sampleViolations()))

	// Overwrite the stored entry with garbage.
	var entryPath string

	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() && strings.HasSuffix(path, lz4Extension) {
			entryPath = path
		}

		return nil
	})
	require.NoError(t, walkErr)
	require.NotEmpty(t, entryPath)
	require.NoError(t, os.WriteFile(entryPath, []byte("garbage"), filePerm))

	_, ok := cache.Lookup(key)
	assert.False(t, ok)

	// A fresh store repairs the entry.
	require.NoError(t, cache.Store(key, sampleViolations()))

	got, ok := cache.Lookup(key)
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestCacheShortKeyRejected(t *testing.T) {
	t.Parallel()

	cache, err := New(t.TempDir(), "fp-1")
	require.NoError(t, err)

	_, ok := cache.Lookup("ab")
	assert.False(t, ok)

	require.Error(t, cache.Store("ab", nil))
}

func TestCacheGobCodec(t *testing.T) {
	t.Parallel()

	cache, err := New(t.TempDir(), "fp-1", WithCodec(NewGobCodec()))
	require.NoError(t, err)

	key := cache.Key([]byte("class Person {}\n"))
	violations := sampleViolations()
	require.NoError(t, cache.Store(key, violations))

	got, ok := cache.Lookup(key)
	require.True(t, ok)
	assert.Equal(t, violations, got)
}

func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()

	// Repetitive input compresses.
	data := bytes.Repeat([]byte("violation "), 200)

	frame, err := compressFrame(data)
	require.NoError(t, err)
	assert.Less(t, len(frame), len(data))

	restored, err := decompressFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, data, restored)
}

func TestFrameIncompressibleInput(t *testing.T) {
	t.Parallel()

	// Too small for LZ4 to find a match; stored raw.
	data := []byte{0x1, 0x2, 0x3}

	frame, err := compressFrame(data)
	require.NoError(t, err)

	restored, err := decompressFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, data, restored)
}

func TestFrameCorruption(t *testing.T) {
	t.Parallel()

	_, err := decompressFrame([]byte{0x1})
	assert.ErrorIs(t, err, ErrFrameTruncated)

	// Header announcing an absurd uncompressed size.
	huge := []byte{0xff, 0xff, 0xff, 0xff, 0x0}
	_, err = decompressFrame(huge)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}
