package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, n := range widths {
		seps[i] = strings.Repeat("-", n)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// output writes v as JSON, or as a table when the table format is selected
// and the command provided one.
func (a *app) output(w io.Writer, v any, headers []string, rows [][]string) error {
	switch a.format {
	case formatJSON:
		return writeJSON(w, v)
	case formatTable:
		if headers == nil {
			return writeJSON(w, v)
		}
		writeTable(w, headers, rows)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", a.format, formatJSON, formatTable)
	}
}
