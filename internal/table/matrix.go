package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML extracts the cell matrix of the first <table> element in the
// document. Cell text is trimmed and inner whitespace collapsed to single
// spaces, and the matrix is rectangularized before it is returned. A nil
// matrix with a nil error means the document has no table.
func FromHTML(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, nil
	}

	var matrix [][]string
	tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cleanText(cell.Text()))
		})
		if cells != nil {
			matrix = append(matrix, cells)
		}
	})

	return Rectangularize(matrix), nil
}

// cleanText trims the string and collapses runs of whitespace, including
// newlines left behind by nested markup, into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
