// Package scan builds the unpopulated description tree from the filesystem
// and provides the bottom-up ordering the pipeline walks it in.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"describedir/internal/schema"
)

// ShouldIgnore reports whether an entry name matches any ignore pattern.
// Patterns use filepath.Match syntax and are compared against base names.
func ShouldIgnore(name string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := filepath.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// BuildTree walks the filesystem under rootPath and returns a structure-only
// tree: names, kinds, paths and sizes are populated, descriptions stay empty.
// Children are visited in sorted name order, which fixes their display order
// for the rest of the pipeline. Entries that are neither regular files nor
// directories (sockets, symlinks, devices) are skipped.
func BuildTree(rootPath string, patterns []string) (*schema.Node, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rootPath, err)
	}

	root := &schema.Node{
		Name: filepath.Base(abs),
		Type: schema.TypeDirectory,
		Path: schema.RootPath,
	}
	if err := fillChildren(root, abs, "", patterns); err != nil {
		return nil, err
	}
	return root, nil
}

func fillChildren(dir *schema.Node, fullPath, relPrefix string, patterns []string) error {
	// os.ReadDir returns entries sorted by name, which is the display order
	// the tree keeps.
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", fullPath, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if ShouldIgnore(name, patterns) {
			continue
		}

		relPath := name
		if relPrefix != "" {
			relPath = relPrefix + "/" + name
		}

		switch {
		case entry.IsDir():
			child := &schema.Node{
				Name: name,
				Type: schema.TypeDirectory,
				Path: relPath,
			}
			if err := fillChildren(child, filepath.Join(fullPath, name), relPath, patterns); err != nil {
				return err
			}
			dir.Children = append(dir.Children, child)

		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", relPath, err)
			}
			dir.Children = append(dir.Children, &schema.Node{
				Name:      name,
				Type:      schema.TypeFile,
				Path:      relPath,
				SizeBytes: info.Size(),
			})
		}
	}
	return nil
}
