package table

import (
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestFromHTMLFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/course_detail.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	matrix, err := FromHTML(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}

	// Only the first table on the page counts.
	want := [][]string{
		{"10285", "Call Number for above section"},
		{"TR 10:10-11:25", "Times"},
		{"417 Mathematics", "Location"},
		{"", "Open To"},
		{"Gail Kaiser", "Instructor"},
	}
	if !reflect.DeepEqual(matrix, want) {
		t.Errorf("FromHTML() = %v, want %v", matrix, want)
	}

	records := Normalize(matrix)
	wantRecords := []Record{
		{"Call Number": "10285"},
		{"Times": "TR 10:10-11:25"},
		{"Location": "417 Mathematics"},
		{"Instructor": "Gail Kaiser"},
	}
	if !reflect.DeepEqual(records, wantRecords) {
		t.Errorf("Normalize() = %v, want %v", records, wantRecords)
	}
}

func TestFromHTMLNoTable(t *testing.T) {
	matrix, err := FromHTML(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}
	if matrix != nil {
		t.Errorf("FromHTML() = %v, want nil for a document without a table", matrix)
	}
}

func TestFromHTMLRaggedRows(t *testing.T) {
	html := `<table>
		<tr><th>Day</th><th>Time</th><th>Room</th></tr>
		<tr><td>TR</td><td>10:10-11:25</td></tr>
	</table>`

	matrix, err := FromHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}
	want := [][]string{
		{"Day", "Time", "Room"},
		{"TR", "10:10-11:25", ""},
	}
	if !reflect.DeepEqual(matrix, want) {
		t.Errorf("FromHTML() = %v, want %v", matrix, want)
	}
}
