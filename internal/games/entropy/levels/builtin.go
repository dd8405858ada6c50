package levels

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the embedded level catalog sorted by ID. The embedded
// files are validated at build time by the package tests, so an error
// here means a corrupted binary.
func Builtin() ([]Level, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("reading embedded levels: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded level %s: %w", e.Name(), err)
		}
		level, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded level %s: %w", e.Name(), err)
		}
		level.FilePath = "builtin/" + e.Name()
		levels = append(levels, level)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// Catalog returns the campaign catalog: levels from root when it is
// set and holds at least one valid level, the embedded set otherwise.
func Catalog(root string) ([]Level, error) {
	if root != "" {
		levels, err := NewLoader(root).LoadAll()
		if err == nil && len(levels) > 0 {
			return levels, nil
		}
	}
	return Builtin()
}
