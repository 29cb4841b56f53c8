package timetable

import (
	"testing"
	"time"
)

func TestRowsFromValues(t *testing.T) {
	values := [][]any{
		{"Day", "Subject", "Room", "Start", "End"},
		{"Monday", "Algebra", "101", "9:00", "10:00"},
		{"Tuesday", "Lab"},
	}

	rows := RowsFromValues(values)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if rows[0].Num != 1 {
		t.Errorf("Expected first row to be numbered 1, got %d", rows[0].Num)
	}

	row := rows[1]
	if row.Num != 2 {
		t.Errorf("Expected second row to be numbered 2, got %d", row.Num)
	}
	if row.Day != "Monday" || row.Subject != "Algebra" || row.Room != "101" {
		t.Errorf("Unexpected row fields: %+v", row)
	}
	if row.StartRaw != "9:00" || row.EndRaw != "10:00" {
		t.Errorf("Unexpected time cells: start=%v end=%v", row.StartRaw, row.EndRaw)
	}

	// Short rows are padded: missing cells stay zero-valued.
	short := rows[2]
	if short.Room != "" || short.StartRaw != nil || short.EndRaw != nil {
		t.Errorf("Expected short row padding, got %+v", short)
	}
}

func TestRowEmpty(t *testing.T) {
	if !(Row{}).Empty() {
		t.Error("Zero row should be empty")
	}

	if !(Row{Day: "  ", Subject: "", StartRaw: " "}).Empty() {
		t.Error("Whitespace-only row should be empty")
	}

	if (Row{Subject: "Algebra"}).Empty() {
		t.Error("Row with a subject should not be empty")
	}
}

func TestRowHasTimes(t *testing.T) {
	cases := []struct {
		row  Row
		want bool
	}{
		{Row{StartRaw: "9:00", EndRaw: "10:00"}, true},
		{Row{StartRaw: time.Now(), EndRaw: "10:00"}, true},
		{Row{StartRaw: 930, EndRaw: 1030.0}, true},
		{Row{StartRaw: "", EndRaw: "10:00"}, false},
		{Row{StartRaw: "9:00"}, false},
		{Row{StartRaw: []string{"9:00"}, EndRaw: "10:00"}, false},
	}

	for i, tt := range cases {
		if got := tt.row.HasTimes(); got != tt.want {
			t.Errorf("Case %d: HasTimes() = %v, want %v", i, got, tt.want)
		}
	}
}
