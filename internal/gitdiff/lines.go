package gitdiff

import (
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffTimeout caps a single diff computation. Diffs that exceed it
// degrade to coarser (but still correct) edit scripts.
const diffTimeout = time.Second

// Lines is a set of 1-based line numbers.
type Lines map[int]struct{}

// Contains reports whether line is in the set.
func (l Lines) Contains(line int) bool {
	_, ok := l[line]

	return ok
}

// insertedLines diffs two file versions line-wise and returns the lines
// of the new version that do not appear in the old one. A modified line
// counts as inserted; pure deletions leave no new line to report.
func insertedLines(oldContent, newContent string) Lines {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = diffTimeout

	// Each distinct line collapses to one rune, so the diff runs on
	// lines rather than characters.
	src, dst, _ := dmp.DiffLinesToRunes(oldContent, newContent)

	diffs := dmp.DiffMainRunes(src, dst, false)
	diffs = dmp.DiffCleanupMerge(dmp.DiffCleanupSemanticLossless(diffs))

	lines := make(Lines)
	newLine := 0

	for _, diff := range diffs {
		count := len([]rune(diff.Text))

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			newLine += count
		case diffmatchpatch.DiffInsert:
			for i := 1; i <= count; i++ {
				lines[newLine+i] = struct{}{}
			}

			newLine += count
		case diffmatchpatch.DiffDelete:
			// Lines only present in the old version.
		}
	}

	return lines
}
