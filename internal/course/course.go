// Package course defines the catalog aggregate persisted at the end of a
// run: one item per discovered detail page, each carrying the normalized
// field records extracted from the page's data table.
package course

import (
	"time"

	"github.com/afriesen/classdir/internal/table"
)

// Course is the record kept for one discovered course-detail URL. It is
// built once per visit and never modified afterwards. Rows is absent when
// the page had no data table; Error marks a visit that failed under the
// continue-on-error policy.
type Course struct {
	URL   string         `json:"url"`
	Title string         `json:"title,omitempty"`
	Rows  []table.Record `json:"rows,omitempty"`
	Error string         `json:"error,omitempty"`
}

// Field returns the first value recorded under name across the course's
// rows, and whether it was present.
func (c *Course) Field(name string) (string, bool) {
	for _, rec := range c.Rows {
		if v, ok := rec[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Catalog is the output document for one term's extraction.
type Catalog struct {
	Term      string    `json:"term"`
	Subject   string    `json:"subject,omitempty"`
	Source    string    `json:"source"`
	ScrapedAt time.Time `json:"scraped_at"`
	Courses   []*Course `json:"courses"`
}

// NewCatalog creates an empty catalog stamped with the current time.
func NewCatalog(term, subject, source string) *Catalog {
	return &Catalog{
		Term:      term,
		Subject:   subject,
		Source:    source,
		ScrapedAt: time.Now().UTC(),
		Courses:   []*Course{},
	}
}

// Add appends an item to the catalog.
func (c *Catalog) Add(item *Course) {
	c.Courses = append(c.Courses, item)
}
