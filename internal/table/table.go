// Package table converts HTML data tables into uniform field/value records.
//
// Course detail pages use one of two layouts: a two-column label/value panel
// where the descriptive label sits in the right cell, or a conventional
// header table (three or more columns) where row 0 names the fields. The
// layout is selected once per table by column count, and each branch is a
// pure transformation of the rectangularized cell matrix.
package table

import (
	"fmt"
	"strings"
)

// Record maps field names to values for one logical course attribute
// (label/value layout) or one tabular row (header layout).
type Record map[string]string

// Rectangularize pads short rows with empty cells up to the widest row.
// The input matrix is not modified; rows that already have the full width
// are shared with the result.
func Rectangularize(matrix [][]string) [][]string {
	width := 0
	for _, row := range matrix {
		if len(row) > width {
			width = len(row)
		}
	}

	out := make([][]string, len(matrix))
	for i, row := range matrix {
		if len(row) == width {
			out[i] = row
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// Normalize converts a cell matrix into an ordered sequence of records.
// The matrix is rectangularized first, then the layout is chosen by column
// count: exactly two columns is the label/value panel, three or more with
// at least two rows is a header table. Anything else has no defined
// extraction and yields an empty sequence, as does an empty matrix.
func Normalize(matrix [][]string) []Record {
	m := Rectangularize(matrix)
	if len(m) == 0 || len(m[0]) == 0 {
		return nil
	}

	switch cols := len(m[0]); {
	case cols == 2:
		return labelValueRecords(m)
	case cols >= 3 && len(m) >= 2:
		return headerRecords(m)
	}
	return nil
}

// labelValueRecords handles the two-column panel. Cell order per row is
// [value, label]: the site puts the descriptive label in the right cell.
//
// Row 0 carries the call number without a usable text label, so it is
// recovered by position: when its right cell mentions "call number" and its
// left cell is non-empty, an explicit "Call Number" record is emitted ahead
// of everything else. All later rows map label to value directly; rows with
// an empty label or an empty value are skipped rather than emitted with an
// empty key.
func labelValueRecords(m [][]string) []Record {
	records := make([]Record, 0, len(m))

	if strings.Contains(strings.ToLower(m[0][1]), "call number") && m[0][0] != "" {
		records = append(records, Record{"Call Number": m[0][0]})
	}

	for _, row := range m[1:] {
		value, label := row[0], row[1]
		if label == "" || value == "" {
			continue
		}
		records = append(records, Record{label: value})
	}
	return records
}

// headerRecords handles the conventional layout: row 0 supplies the field
// names for every later row. Empty header cells are replaced with a
// positional placeholder ("col_N", 1-indexed) so keys stay non-empty.
func headerRecords(m [][]string) []Record {
	headers := make([]string, len(m[0]))
	for i, h := range m[0] {
		if h == "" {
			h = fmt.Sprintf("col_%d", i+1)
		}
		headers[i] = h
	}

	records := make([]Record, 0, len(m)-1)
	for _, row := range m[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			rec[h] = row[i]
		}
		records = append(records, rec)
	}
	return records
}
