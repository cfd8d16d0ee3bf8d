// Package gitdiff resolves which Java files and lines changed since a
// given revision, so a run can be scoped to new code only.
package gitdiff

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// javaExtension matches the files the engine checks.
const javaExtension = ".java"

// Repo wraps a libgit2 repository opened for change queries.
type Repo struct {
	repo *git2go.Repository
}

// Open opens the git repository at the given path.
func Open(path string) (*Repo, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repo{repo: repo}, nil
}

// Workdir returns the repository working directory.
func (r *Repo) Workdir() string {
	return r.repo.Workdir()
}

// Free releases the repository resources.
func (r *Repo) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// ChangedJavaFiles returns the repo-relative paths of Java files that
// differ between the given revision and the working tree, index and
// untracked files included. Deleted files are not reported.
func (r *Repo) ChangedJavaFiles(_ context.Context, since string) ([]string, error) {
	tree, err := r.resolveTree(since)
	if err != nil {
		return nil, err
	}
	defer tree.Free()

	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	opts.Flags |= git2go.DiffIncludeUntracked | git2go.DiffRecurseUntrackedDirs

	diff, err := r.repo.DiffTreeToWorkdirWithIndex(tree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff tree to workdir: %w", err)
	}
	defer diff.Free()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return nil, fmt.Errorf("get num deltas: %w", err)
	}

	seen := make(map[string]struct{})

	var files []string

	for i := range numDeltas {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			return nil, fmt.Errorf("get delta: %w", deltaErr)
		}

		if !deltaSurvives(delta.Status) {
			continue
		}

		path := delta.NewFile.Path
		if !strings.EqualFold(filepath.Ext(path), javaExtension) {
			continue
		}

		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}

			files = append(files, path)
		}
	}

	sort.Strings(files)

	return files, nil
}

// ChangedLines returns the 1-based line numbers in the working copy of
// path that were inserted or modified since the given revision. The
// path is repo-relative.
func (r *Repo) ChangedLines(_ context.Context, since, path string) (Lines, error) {
	tree, err := r.resolveTree(since)
	if err != nil {
		return nil, err
	}
	defer tree.Free()

	oldContent, err := r.contentAt(tree, path)
	if err != nil {
		return nil, err
	}

	newContent, err := os.ReadFile(filepath.Join(r.Workdir(), path))
	if err != nil {
		return nil, fmt.Errorf("read working copy: %w", err)
	}

	return insertedLines(string(oldContent), string(newContent)), nil
}

// resolveTree resolves a revision spec (branch, tag, hash, HEAD~n) to
// its tree.
func (r *Repo) resolveTree(rev string) (*git2go.Tree, error) {
	obj, err := r.repo.RevparseSingle(rev)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", rev, err)
	}
	defer obj.Free()

	peeled, err := obj.Peel(git2go.ObjectTree)
	if err != nil {
		return nil, fmt.Errorf("peel %q to tree: %w", rev, err)
	}

	tree, err := peeled.AsTree()
	if err != nil {
		return nil, fmt.Errorf("peel %q to tree: %w", rev, err)
	}

	return tree, nil
}

// contentAt returns the blob content of path in the tree, or empty when
// the file did not exist at that revision.
func (r *Repo) contentAt(tree *git2go.Tree, path string) ([]byte, error) {
	entry, err := tree.EntryByPath(path)
	if err != nil {
		return nil, nil
	}

	blob, err := r.repo.LookupBlob(entry.Id)
	if err != nil {
		return nil, fmt.Errorf("lookup blob for %s: %w", path, err)
	}
	defer blob.Free()

	return blob.Contents(), nil
}

// deltaSurvives reports whether the delta leaves a file in the working
// tree worth checking.
func deltaSurvives(status git2go.Delta) bool {
	switch status {
	case git2go.DeltaAdded, git2go.DeltaModified, git2go.DeltaRenamed,
		git2go.DeltaCopied, git2go.DeltaUntracked:
		return true
	default:
		return false
	}
}
