package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/afriesen/classdir/internal/course"
	"github.com/afriesen/classdir/internal/table"
)

func TestGenerate(t *testing.T) {
	cat := course.NewCatalog("20261", "COMS", "https://catalog.example.edu/sel/")
	cat.Add(&course.Course{
		URL:   "https://catalog.example.edu/subj/COMS/W1004-20261-001/",
		Title: "Introduction to Computer Science",
		Rows: []table.Record{
			{"Call Number": "10285"},
			{"Times": "TR 10:10-11:25"},
			{"Location": "417 Mathematics"},
		},
	})
	// No meeting spec: skipped.
	cat.Add(&course.Course{
		URL:   "https://catalog.example.edu/subj/COMS/W3902-20261-001/",
		Title: "Undergraduate Thesis",
		Rows:  []table.Record{{"Call Number": "10301"}},
	})
	// Failed visit: skipped.
	cat.Add(&course.Course{
		URL:   "https://catalog.example.edu/subj/COMS/W4156-20261-001/",
		Error: "navigation timeout",
	})

	now := time.Date(2026, time.January, 19, 9, 0, 0, 0, time.UTC)
	out := Generate(cat, now)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatalf("expected a VCALENDAR document, got:\n%s", out)
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("expected exactly 1 event, got %d:\n%s", got, out)
	}
	for _, want := range []string{
		"SUMMARY:Introduction to Computer Science",
		"RRULE:FREQ=WEEKLY;BYDAY=TU,TH",
		"LOCATION:417 Mathematics",
		// Monday morning reference rolls to Tuesday 10:10.
		"20260120T101000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestGenerateHeaderLayoutDays(t *testing.T) {
	cat := course.NewCatalog("20261", "COMS", "https://catalog.example.edu/sel/")
	cat.Add(&course.Course{
		URL: "https://catalog.example.edu/subj/COMS/W3134-20261-001/",
		Rows: []table.Record{
			{"Day": "MW", "Time": "13:10-14:25", "Room": "301"},
		},
	})

	out := Generate(cat, time.Date(2026, time.January, 19, 9, 0, 0, 0, time.UTC))
	if !strings.Contains(out, "RRULE:FREQ=WEEKLY;BYDAY=MO,WE") {
		t.Errorf("expected MO,WE recurrence:\n%s", out)
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	out := Generate(course.NewCatalog("20261", "", "https://catalog.example.edu/sel/"), time.Now().UTC())
	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Fatalf("expected a calendar shell, got:\n%s", out)
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("expected no events:\n%s", out)
	}
}
