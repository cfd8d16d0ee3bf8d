package engine

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"
)

const javaExtension = ".java"

// CollectFiles walks the given roots and returns every Java file, sorted by
// path. A root may also be a single file. Hidden and vendored directories
// are skipped.
func CollectFiles(roots []string) ([]string, error) {
	seen := make(map[string]struct{})

	var files []string

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				if path != root && skipDir(entry.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if !strings.EqualFold(filepath.Ext(path), javaExtension) {
				return nil
			}

			if enry.IsVendor(path) || enry.IsDotFile(path) {
				return nil
			}

			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}

				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", root, err)
		}
	}

	sort.Strings(files)

	return files, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	switch name {
	case "target", "build", "out", "node_modules":
		return true
	default:
		return false
	}
}
