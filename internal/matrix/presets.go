package matrix

import (
	"fmt"
	"sort"
)

// Built-in matrices used for demonstrations and regression tests.
var presets = map[string]struct {
	description string
	rows        [][]uint8
}{
	"a": {
		description: "10x6 raw matrix A (reduces to basic-a)",
		rows: [][]uint8{
			{0, 0, 0, 0, 0, 0},
			{0, 0, 1, 1, 0, 1},
			{0, 1, 0, 1, 1, 1},
			{0, 0, 0, 1, 1, 0},
			{0, 1, 1, 0, 0, 0},
			{1, 0, 0, 1, 0, 0},
			{1, 1, 1, 1, 0, 0},
			{0, 1, 0, 0, 0, 1},
			{1, 0, 0, 1, 0, 1},
			{0, 0, 1, 1, 0, 1},
		},
	},
	"b": {
		description: "6x6 matrix B (already basic)",
		rows: [][]uint8{
			{1, 1, 1, 0, 0, 0},
			{1, 0, 1, 0, 1, 0},
			{0, 0, 0, 1, 0, 0},
			{1, 0, 0, 0, 0, 1},
			{0, 1, 0, 0, 0, 1},
			{0, 0, 1, 0, 0, 1},
		},
	},
	"basic-a": {
		description: "4x6 basic matrix of A",
		rows: [][]uint8{
			{0, 0, 1, 1, 0, 1},
			{0, 1, 0, 1, 1, 1},
			{1, 1, 1, 1, 0, 0},
			{1, 0, 0, 1, 0, 1},
		},
	},
}

// Preset returns a built-in matrix by name.
func Preset(name string) (*Bool, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q not found", name)
	}
	return New(p.rows)
}

// HasPreset reports whether a built-in matrix with the given name exists.
func HasPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// PresetDescription returns the one-line description of a preset.
func PresetDescription(name string) string {
	return presets[name].description
}

// PresetNames returns the names of all built-in matrices, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
