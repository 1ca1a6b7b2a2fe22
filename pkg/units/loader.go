package units

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type tablesDocument struct {
	Units Tables `json:"units" yaml:"units"`
}

// LoadTables walks the provided filesystem and merges every JSON/YAML
// table document it finds into the defaults, so deployments can extend
// the curated symbol lists without rebuilding. Documents look like:
//
//	units:
//	  before: ["₿"]
//	  after: ["pt", "坪"]
//
// When fsys is nil or holds no table files the defaults are returned
// unchanged.
func LoadTables(fsys fs.FS) (Tables, error) {
	tables := DefaultTables()
	if fsys == nil {
		return tables, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTableFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("units: read %s: %w", path, err)
		}

		var doc tablesDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("units: parse %s: %w", path, err)
		}

		tables.Before = mergeSymbols(tables.Before, doc.Units.Before)
		tables.After = mergeSymbols(tables.After, doc.Units.After)
		return nil
	})
	if err != nil {
		return Tables{}, err
	}

	return tables, nil
}

func isTableFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

func mergeSymbols(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, symbol := range existing {
		seen[symbol] = struct{}{}
	}
	for _, symbol := range extra {
		trimmed := strings.TrimSpace(symbol)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		existing = append(existing, trimmed)
	}
	return existing
}
