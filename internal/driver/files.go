package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"restyle/internal/diag"
)

// CollectFiles expands paths into a sorted, de-duplicated file list.
// Directories are walked recursively and only files whose extension is in
// extensions are kept; files named explicitly are always kept. Hidden
// directories and __pycache__ are not entered.
func CollectFiles(ctx context.Context, paths, extensions []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", diag.ErrRead, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := walkSources(ctx, p, extensions)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", diag.ErrRead, err)
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func walkSources(ctx context.Context, root string, extensions []string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(extensions, filepath.Ext(path)) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

func skipDir(name string) bool {
	return name == "__pycache__" || (strings.HasPrefix(name, ".") && name != ".")
}
