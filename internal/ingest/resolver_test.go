package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_RegisteredTypes(t *testing.T) {
	ordered, err := Order(Definitions())
	require.NoError(t, err)
	require.Len(t, ordered, len(Definitions()))

	want := []string{
		"agency", "calendar", "checkpoint", "line", "linked_dataset", "shape", "stop",
		"calendar_attribute", "calendar_date", "route",
		"direction", "route_pattern",
		"trip",
		"multi_route_trip", "stop_time",
	}
	got := make([]string, len(ordered))
	for i, d := range ordered {
		got[i] = d.Name
	}
	assert.Equal(t, want, got)
}

func TestOrder_DependenciesPrecedeDependents(t *testing.T) {
	ordered, err := Order(Definitions())
	require.NoError(t, err)

	position := make(map[string]int, len(ordered))
	for i, d := range ordered {
		position[d.Name] = i
	}
	for _, d := range ordered {
		for _, dep := range d.Deps {
			assert.Less(t, position[dep], position[d.Name],
				"%s must come after %s", d.Name, dep)
		}
	}
}

func TestOrder_Cycle(t *testing.T) {
	defs := []*Definition{
		{Name: "a", Deps: []string{"b"}},
		{Name: "b", Deps: []string{"a"}},
	}
	_, err := Order(defs)
	require.ErrorIs(t, err, ErrCycle)
}

func TestOrder_UnknownDependency(t *testing.T) {
	defs := []*Definition{
		{Name: "a", Deps: []string{"ghost"}},
	}
	_, err := Order(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestValidateFiles(t *testing.T) {
	require.NoError(t, ValidateFiles(map[string]string{"agency": "agency.txt"}))

	err := ValidateFiles(map[string]string{"bus_stop": "stops.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus_stop")
}
