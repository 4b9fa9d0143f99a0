package table

import (
	"reflect"
	"testing"
)

func TestNormalizeLabelValue(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]string
		want   []Record
	}{
		{
			name: "call number header row with empty value emits nothing",
			matrix: [][]string{
				{"", "Call Number"},
				{"12345", "Call Number"},
				{"TR 10:10-11:25", "Times"},
			},
			want: []Record{
				{"Call Number": "12345"},
				{"Times": "TR 10:10-11:25"},
			},
		},
		{
			name: "call number recovered from row 0 by position",
			matrix: [][]string{
				{"98765", "Call Number"},
				{"TR 10:10-11:25", "Times"},
			},
			want: []Record{
				{"Call Number": "98765"},
				{"Times": "TR 10:10-11:25"},
			},
		},
		{
			name: "rows with empty label are skipped",
			matrix: [][]string{
				{"55555", "Call Number"},
				{"orphan value", ""},
				{"3", "Points"},
			},
			want: []Record{
				{"Call Number": "55555"},
				{"Points": "3"},
			},
		},
		{
			name: "rows with empty value are skipped",
			matrix: [][]string{
				{"55555", "Call Number"},
				{"", "Instructor"},
			},
			want: []Record{
				{"Call Number": "55555"},
			},
		},
		{
			name: "row 0 without call number label contributes nothing",
			matrix: [][]string{
				{"COMS W1004", "Course"},
				{"MW 13:10-14:25", "Times"},
			},
			want: []Record{
				{"Times": "MW 13:10-14:25"},
			},
		},
		{
			name: "two columns with empty header cell stays label/value",
			matrix: [][]string{
				{"", "Time"},
				{"TR", "10:10"},
			},
			want: []Record{
				{"10:10": "TR"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.matrix)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeHeaderTable(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]string
		want   []Record
	}{
		{
			name: "row 0 supplies field names",
			matrix: [][]string{
				{"Day", "Time", "Room"},
				{"TR", "10:10-11:25", "301"},
			},
			want: []Record{
				{"Day": "TR", "Time": "10:10-11:25", "Room": "301"},
			},
		},
		{
			name: "empty header cell replaced with positional placeholder",
			matrix: [][]string{
				{"", "Time", "Room"},
				{"TR", "10:10", "301"},
			},
			want: []Record{
				{"col_1": "TR", "Time": "10:10", "Room": "301"},
			},
		},
		{
			name: "one record per data row, in row order",
			matrix: [][]string{
				{"Day", "Time", "Room"},
				{"TR", "10:10-11:25", "301"},
				{"F", "09:00-10:50", "833"},
			},
			want: []Record{
				{"Day": "TR", "Time": "10:10-11:25", "Room": "301"},
				{"Day": "F", "Time": "09:00-10:50", "Room": "833"},
			},
		},
		{
			name: "short data row padded with empty values",
			matrix: [][]string{
				{"Day", "Time", "Room"},
				{"TR", "10:10-11:25"},
			},
			want: []Record{
				{"Day": "TR", "Time": "10:10-11:25", "Room": ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.matrix)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeNoExtraction(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]string
	}{
		{"no rows", [][]string{}},
		{"nil matrix", nil},
		{"zero columns", [][]string{{}, {}}},
		{"single column", [][]string{{"just text"}, {"more text"}}},
		{"wide table with only a header row", [][]string{{"Day", "Time", "Room"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.matrix); len(got) != 0 {
				t.Errorf("Normalize() = %v, want empty", got)
			}
		})
	}
}

// Normalize is a pure function of its input: repeated calls on the same
// matrix must agree, and the input must come back untouched.
func TestNormalizeDeterministic(t *testing.T) {
	matrix := [][]string{
		{"98765", "Call Number"},
		{"TR 10:10-11:25", "Times"},
		{"3", "Points"},
	}
	snapshot := [][]string{
		{"98765", "Call Number"},
		{"TR 10:10-11:25", "Times"},
		{"3", "Points"},
	}

	first := Normalize(matrix)
	second := Normalize(matrix)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Normalize() disagreed: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(matrix, snapshot) {
		t.Errorf("Normalize() mutated its input: %v", matrix)
	}
}

func TestRectangularize(t *testing.T) {
	got := Rectangularize([][]string{
		{"a", "b", "c"},
		{"d"},
		{},
	})
	want := [][]string{
		{"a", "b", "c"},
		{"d", "", ""},
		{"", "", ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rectangularize() = %v, want %v", got, want)
	}
}
