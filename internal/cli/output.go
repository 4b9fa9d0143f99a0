package cli

import (
	"encoding/json"
	"fmt"
	"io"

	prettytable "github.com/jedib0t/go-pretty/v6/table"

	"github.com/afriesen/classdir/internal/course"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the catalog in the specified format
func WriteOutput(w io.Writer, cat *course.Catalog, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, cat)
	case FormatText:
		return writeText(w, cat, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the catalog as JSON
func writeJSON(w io.Writer, cat *course.Catalog) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cat)
}

// writeText outputs the catalog as a human-readable summary table
func writeText(w io.Writer, cat *course.Catalog, verbose bool) error {
	if len(cat.Courses) == 0 {
		fmt.Fprintf(w, "No courses found for term %s.\n", cat.Term)
		return nil
	}

	tw := prettytable.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(prettytable.Row{"#", "Call Number", "Title", "Times", "URL"})

	failed := 0
	for i, c := range cat.Courses {
		title := c.Title
		if c.Error != "" {
			failed++
			title = "FAILED: " + c.Error
		}
		call, _ := c.Field("Call Number")
		times, _ := c.Field("Times")
		tw.AppendRow(prettytable.Row{i + 1, call, title, times, c.URL})
	}
	tw.Render()

	fmt.Fprintf(w, "\nTotal: %d courses for term %s", len(cat.Courses), cat.Term)
	if failed > 0 {
		fmt.Fprintf(w, " (%d failed)", failed)
	}
	fmt.Fprintln(w)

	if verbose {
		for _, c := range cat.Courses {
			if len(c.Rows) == 0 {
				continue
			}
			fmt.Fprintf(w, "\n%s\n", c.URL)
			for _, rec := range c.Rows {
				for k, v := range rec {
					fmt.Fprintf(w, "  %s: %s\n", k, v)
				}
			}
		}
	}

	return nil
}
