package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
	"github.com/mbtahub/gtfs-ingest/internal/schema"
)

// memStore is an in-memory Store with transaction semantics: writes
// stage until Commit and vanish on Rollback.
type memStore struct {
	tables    map[string]map[string]map[string]any
	staged    []func()
	created   bool
	closed    bool
	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string]map[string]map[string]any)}
}

func (m *memStore) CreateAll(ctx context.Context) error {
	m.created = true
	return nil
}

func (m *memStore) QueryKeys(ctx context.Context, def *Definition) ([]string, error) {
	var keys []string
	for k := range m.tables[def.Table] {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *memStore) Insert(ctx context.Context, def *Definition, e gtfs.Entity) error {
	table, key, vals := def.Table, e.Key(), def.Values(e)
	m.staged = append(m.staged, func() {
		if m.tables[table] == nil {
			m.tables[table] = make(map[string]map[string]any)
		}
		m.tables[table][key] = vals
	})
	return nil
}

func (m *memStore) UpdateByKey(ctx context.Context, def *Definition, e gtfs.Entity) error {
	return m.Insert(ctx, def, e)
}

func (m *memStore) Commit(ctx context.Context) error {
	for _, apply := range m.staged {
		apply()
	}
	m.staged = nil
	m.commits++
	return nil
}

func (m *memStore) Rollback(ctx context.Context) error {
	m.staged = nil
	m.rollbacks++
	return nil
}

func (m *memStore) Close(ctx context.Context) error {
	m.closed = true
	return nil
}

var errCommit = errors.New("deadlock detected")

// failingCommitStore fails the nth Commit, discarding the staged batch
// the way an aborted transaction does.
type failingCommitStore struct {
	*memStore
	failOn int
}

func (f *failingCommitStore) Commit(ctx context.Context) error {
	if f.commits+1 == f.failOn {
		f.staged = nil
		return errCommit
	}
	return f.memStore.Commit(ctx)
}

// feedFiles is a complete minimal feed. Tables without rows still carry
// their header line, the way a real export does.
var feedFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
		"1,MBTA,https://www.mbta.com,America/New_York\n",
	"lines.txt": "line_id,line_long_name\n",
	"routes.txt": "route_id,agency_id,route_long_name,route_type,route_fare_class\n" +
		"Red,1,Red Line,1,Rapid Transit\n",
	"stops.txt": "stop_id,stop_name,stop_lon,stop_lat,parent_station\n" +
		"place-sstat,South Station,-71.055242,42.352271,\n" +
		"70080,South Station,-71.055242,42.352271,place-sstat\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"Fall,1,1,1,1,1,0,0,20260901,20261220\n",
	"calendar_attributes.txt": "service_id,service_description,service_schedule_name,service_schedule_type\n",
	"calendar_dates.txt": "service_id,date,exception_type,holiday_name\n" +
		"Fall,20261126,2,Thanksgiving Day\n",
	"shapes.txt": "shape_id,shape_pt_lon,shape_pt_lat,shape_pt_sequence\n",
	"directions.txt": "route_id,direction_id,direction,direction_destination\n" +
		"Red,0,South,Ashmont/Braintree\n" +
		"Ghost,0,North,Nowhere\n",
	"route_patterns.txt": "route_pattern_id,route_id\n",
	"trips.txt": "route_id,service_id,trip_id,trip_headsign\n" +
		"Red,Fall,t1,Braintree\n",
	"checkpoints.txt": "checkpoint_id,checkpoint_name\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"t1,10:10:10,10:11:00,70080,1\n",
	"linked_datasets.txt":   "url,trip_updates,vehicle_positions,service_alerts,authentication_type\n",
	"multi_route_trips.txt": "added_route_id,trip_id\n",
}

func writeFeed(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range feedFiles {
		if o, ok := overrides[name]; ok {
			content = o
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func tableStats(t *testing.T, result *RunResult, name string) TableStats {
	t.Helper()
	for _, s := range result.Tables {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no stats for table %s", name)
	return TableStats{}
}

func TestRun_FullFeed(t *testing.T) {
	dir := writeFeed(t, nil)
	st := newMemStore()
	loader := NewLoader(st, Config{}, nil)

	result, err := loader.Run(context.Background(), uuid.New(), dir)
	require.NoError(t, err)
	require.Len(t, result.Tables, len(Definitions()))

	assert.True(t, st.created)
	assert.True(t, st.closed)
	assert.Zero(t, st.rollbacks)

	assert.Equal(t, TableStats{Name: "agency", Inserted: 1}, tableStats(t, result, "agency"))
	assert.Equal(t, TableStats{Name: "route", Inserted: 1}, tableStats(t, result, "route"))
	assert.Equal(t, TableStats{Name: "stop", Inserted: 2}, tableStats(t, result, "stop"))
	assert.Equal(t, TableStats{Name: "stop_time", Inserted: 1}, tableStats(t, result, "stop_time"))

	// The direction for the retired route is skipped, not stored.
	assert.Equal(t, TableStats{Name: "direction", Inserted: 1, Skipped: 1},
		tableStats(t, result, "direction"))
	assert.Len(t, st.tables["direction"], 1)

	route := st.tables["route"]["Red"]
	require.NotNil(t, route)
	assert.Equal(t, "underground_rail", route["route_type"])
	require.NotNil(t, route["route_fare_class"])
	assert.Equal(t, "rapid_transit", *route["route_fare_class"].(*string))
}

func TestRun_Idempotent(t *testing.T) {
	dir := writeFeed(t, nil)
	st := newMemStore()

	_, err := NewLoader(st, Config{}, nil).Run(context.Background(), uuid.New(), dir)
	require.NoError(t, err)
	first := snapshot(st)

	result, err := NewLoader(st, Config{}, nil).Run(context.Background(), uuid.New(), dir)
	require.NoError(t, err)

	// Second run re-reads the same feed: everything is an update and
	// the stored state is unchanged.
	for _, stats := range result.Tables {
		assert.Zero(t, stats.Inserted, "table %s", stats.Name)
	}
	assert.Equal(t, 1, tableStats(t, result, "agency").Updated)
	assert.Equal(t, 2, tableStats(t, result, "stop").Updated)
	assert.Equal(t, first, snapshot(st))
}

func TestRun_InvalidRowAborts(t *testing.T) {
	dir := writeFeed(t, map[string]string{
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"t1,10:10:10,10:11:00,no-such-stop,1\n",
	})
	st := newMemStore()

	_, err := NewLoader(st, Config{}, nil).Run(context.Background(), uuid.New(), dir)
	var fe *schema.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "stop_time", fe.Entity)
	assert.Equal(t, "stop_id", fe.Field)

	assert.True(t, st.closed)
	assert.NotZero(t, st.rollbacks)
	assert.Empty(t, st.tables["stop_time"])
}

func TestRun_CommitFailureAbortsRun(t *testing.T) {
	dir := writeFeed(t, nil)
	st := newMemStore()
	// The seventh per-table commit is the stop table, which has rows.
	loader := NewLoader(&failingCommitStore{memStore: st, failOn: 7}, Config{}, nil)

	_, err := loader.Run(context.Background(), uuid.New(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errCommit)
	assert.Contains(t, err.Error(), "commit stop")

	assert.True(t, st.closed)
	assert.NotZero(t, st.rollbacks)
	assert.Empty(t, st.staged)
	assert.NotContains(t, st.tables, "stop")
	assert.Contains(t, st.tables, "agency")
}

func TestRun_DuplicateKeyInFeedUpserts(t *testing.T) {
	dir := writeFeed(t, map[string]string{
		"checkpoints.txt": "checkpoint_id,checkpoint_name\n" +
			"cp1,Old Name\n" +
			"cp1,New Name\n",
	})
	st := newMemStore()

	result, err := NewLoader(st, Config{}, nil).Run(context.Background(), uuid.New(), dir)
	require.NoError(t, err)

	stats := tableStats(t, result, "checkpoint")
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, "New Name", st.tables["checkpoint"]["cp1"]["checkpoint_name"])
}

func TestRun_MissingFeedFile(t *testing.T) {
	dir := writeFeed(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, "trips.txt")))
	st := newMemStore()

	_, err := NewLoader(st, Config{}, nil).Run(context.Background(), uuid.New(), dir)
	require.Error(t, err)
	assert.True(t, st.closed)
}

func TestRun_ManifestFileOverride(t *testing.T) {
	dir := writeFeed(t, nil)
	require.NoError(t, os.Rename(
		filepath.Join(dir, "agency.txt"),
		filepath.Join(dir, "transit_agencies.txt"),
	))
	st := newMemStore()
	loader := NewLoader(st, Config{Files: map[string]string{"agency": "transit_agencies.txt"}}, nil)

	result, err := loader.Run(context.Background(), uuid.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, tableStats(t, result, "agency").Inserted)
}

func TestRun_BatchCommits(t *testing.T) {
	dir := writeFeed(t, nil)
	st := newMemStore()

	// Batch size 1 commits after every accepted row.
	_, err := NewLoader(st, Config{BatchSize: 1}, nil).Run(context.Background(), uuid.New(), dir)
	require.NoError(t, err)
	assert.Greater(t, st.commits, len(Definitions()))
}

// snapshot deep-copies the committed tables for comparison.
func snapshot(st *memStore) map[string]map[string]map[string]any {
	out := make(map[string]map[string]map[string]any, len(st.tables))
	for table, rows := range st.tables {
		out[table] = make(map[string]map[string]any, len(rows))
		for key, vals := range rows {
			row := make(map[string]any, len(vals))
			for c, v := range vals {
				row[c] = v
			}
			out[table][key] = row
		}
	}
	return out
}
