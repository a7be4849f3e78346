package matrix

import (
	"fmt"
	"strings"
)

// Parse builds a matrix from text rows. Each row is either a run of
// digits ("0110") or digits separated by spaces or commas ("0 1 1 0").
// Blank lines are skipped.
func Parse(lines []string) (*Bool, error) {
	rows := make([][]uint8, 0, len(lines))
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		rows = append(rows, row)
	}
	return New(rows)
}

func parseRow(line string) ([]uint8, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	// "0110" is a single field of several cells.
	if len(fields) == 1 {
		fields = strings.Split(fields[0], "")
	}

	row := make([]uint8, len(fields))
	for j, f := range fields {
		switch f {
		case "0":
			row[j] = 0
		case "1":
			row[j] = 1
		default:
			return nil, fmt.Errorf("column %d: %q: %w", j, f, ErrInvalidValue)
		}
	}
	return row, nil
}
