package store

import (
	"strings"
	"testing"
)

func TestOrderedValues(t *testing.T) {
	cols, args := orderedValues(map[string]any{
		"c": 3,
		"a": 1,
		"b": 2,
	})

	want := []string{"a", "b", "c"}
	for i, col := range want {
		if cols[i] != col {
			t.Fatalf("cols = %v, want %v", cols, want)
		}
		if args[i] != i+1 {
			t.Fatalf("args = %v", args)
		}
	}
}

func TestCreateStatements_CoverAllTables(t *testing.T) {
	tables := []string{
		"agency", "line", "route", "stop", "calendar", "calendar_attribute",
		"calendar_date", "shape", "direction", "route_pattern", "trip",
		"checkpoint", "stop_time", "linked_dataset", "multi_route_trip",
	}
	if len(createStatements) != len(tables) {
		t.Fatalf("createStatements = %d statements, want %d", len(createStatements), len(tables))
	}
	for i, table := range tables {
		if !strings.Contains(createStatements[i], "IF NOT EXISTS "+table+" ") {
			t.Errorf("statement %d does not create %s", i, table)
		}
	}
}
