// Package gtfs defines the entity types of a static GTFS feed snapshot:
// the fifteen record kinds the ingestion pipeline reads from the feed's
// CSV tables, plus their enumerated field domains.
//
// Required CSV fields are plain struct fields; optional fields are
// pointers so that an absent value survives as nil all the way to the
// database. Geometry is a decomposed (lon, lat) pair, never an opaque
// geometry-engine value.
package gtfs

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone lookup must not depend on host tzdata
)

// Entity is one validated feed record, ready for the store.
type Entity interface {
	// EntityName returns the registry name of the entity's type
	// ("agency", "stop_time", ...).
	EntityName() string
	// Key returns the record's primary key rendered as a string.
	// Composite keys join their parts with "|".
	Key() string
}

// CompositeKey renders a multi-part primary key in its canonical form.
func CompositeKey(parts ...string) string {
	return strings.Join(parts, "|")
}

// TimeZone is an IANA timezone identifier with "/" replaced by "_",
// the form enumeration variants permit ("America_New_York").
type TimeZone string

// Display restores the canonical IANA spelling. The stored form is
// ambiguous: "America_New_York" keeps a literal underscore while
// "America_Indiana_Indianapolis" hides two separators. Each way of
// restoring separators is checked against the timezone database and the
// first known zone wins; unrecognized values restore only the leading
// separator.
func (tz TimeZone) Display() string {
	s := string(tz)
	n := strings.Count(s, "_")
	for mask := 1; mask < 1<<n; mask++ {
		name := restoreSeparators(s, mask)
		if _, err := time.LoadLocation(name); err == nil {
			return name
		}
	}
	return strings.Replace(s, "_", "/", 1)
}

// restoreSeparators turns the underscores selected by mask (bit i for
// the ith underscore) back into slashes.
func restoreSeparators(s string, mask int) string {
	var b strings.Builder
	i := 0
	for _, r := range s {
		if r == '_' {
			if mask&(1<<i) != 0 {
				b.WriteByte('/')
			} else {
				b.WriteByte('_')
			}
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LangCode is a lowercase two-letter language code ("en").
type LangCode string

// TimeOfDay is elapsed seconds since local midnight. Values beyond 86399
// represent post-midnight service on the previous service day.
type TimeOfDay int

func (t TimeOfDay) String() string {
	s := int(t)
	return twoDigits(s/3600) + ":" + twoDigits(s/60%60) + ":" + twoDigits(s%60)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Agency is a transit agency. Relies on no other entity.
type Agency struct {
	AgencyID int
	Name     string
	URL      string
	Timezone TimeZone
	Lang     *LangCode
	Phone    *string
}

func (a *Agency) EntityName() string { return "agency" }
func (a *Agency) Key() string        { return strconv.Itoa(a.AgencyID) }

// Line is a named grouping of routes.
type Line struct {
	LineID    string
	LongName  string
	ShortName *string
	Desc      *string
	URL       *string
	Color     *string
	TextColor *string
	SortOrder *int
}

func (l *Line) EntityName() string { return "line" }
func (l *Line) Key() string        { return l.LineID }

// Route is a transit route. Relies on Agency and optionally Line.
type Route struct {
	RouteID   string
	AgencyID  int
	LongName  string
	Type      RouteType
	ShortName *string
	Desc      *string
	URL       *string
	Color     *string
	TextColor *string
	SortOrder *int
	FareClass *FareClass
	LineID    *string
}

func (r *Route) EntityName() string { return "route" }
func (r *Route) Key() string        { return r.RouteID }

// Stop is a transit stop, station, or station sub-location. The
// parent_station reference points at another Stop.
type Stop struct {
	StopID             string
	Code               *string
	Name               *string
	TTSName            *string
	Desc               *string
	PlatformCode       *string
	PlatformName       *string
	Position           *Coordinate
	ZoneID             *string
	Address            *string
	URL                *string
	LevelID            *string
	LocationType       *LocationType
	ParentStation      *string
	WheelchairBoarding *AccessibilityType
	Municipality       *string
	OnStreet           *string
	AtStreet           *string
	VehicleType        *RouteType
	Timezone           *TimeZone
}

func (s *Stop) EntityName() string { return "stop" }
func (s *Stop) Key() string        { return s.StopID }

// Calendar identifies the days of service within a date range.
type Calendar struct {
	ServiceID string
	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool
	StartDate time.Time
	EndDate   time.Time
}

func (c *Calendar) EntityName() string { return "calendar" }
func (c *Calendar) Key() string        { return c.ServiceID }

// CalendarAttribute adds a human-readable description to a calendar
// service. Relies on Calendar.
type CalendarAttribute struct {
	ServiceID          string
	Description        string
	ScheduleName       string
	ScheduleType       ServiceScheduleType
	ScheduleTypicality *ServiceScheduleTypicality
	RatingStartDate    *time.Time
	RatingEndDate      *time.Time
	RatingDescription  *string
}

func (c *CalendarAttribute) EntityName() string { return "calendar_attribute" }
func (c *CalendarAttribute) Key() string        { return c.ServiceID }

// CalendarDate is a dated exception to a calendar service. Relies on
// Calendar.
type CalendarDate struct {
	ServiceID     string
	Date          time.Time
	ExceptionType DateExceptionType
	HolidayName   *string
}

func (c *CalendarDate) EntityName() string { return "calendar_date" }
func (c *CalendarDate) Key() string {
	return CompositeKey(c.ServiceID, c.Date.Format("20060102"))
}

// Shape is one point of a vehicle travel path. Points with the same
// ShapeID and increasing PtSequence form the path.
type Shape struct {
	ShapeID      string
	Position     Coordinate
	PtSequence   int
	DistTraveled *float64
}

func (s *Shape) EntityName() string { return "shape" }
func (s *Shape) Key() string {
	return CompositeKey(s.ShapeID, strconv.Itoa(s.PtSequence))
}

// Direction names the two headings of a route. Relies on Route, but a
// direction referencing a retired route is skipped rather than rejected.
type Direction struct {
	RouteID     string
	DirectionID int
	Direction   DirectionOption
	Destination string
}

func (d *Direction) EntityName() string { return "direction" }
func (d *Direction) Key() string {
	return CompositeKey(d.RouteID, strconv.Itoa(d.DirectionID))
}

// RoutePattern is one ordered stop sequence served by a route. Relies on
// Route. RepresentativeTripID is informational, not a foreign key.
type RoutePattern struct {
	RoutePatternID       string
	RouteID              string
	DirectionID          *int
	Name                 *string
	TimeDesc             *string
	Typicality           *RoutePatternTypicality
	SortOrder            *int
	RepresentativeTripID *string
}

func (r *RoutePattern) EntityName() string { return "route_pattern" }
func (r *RoutePattern) Key() string        { return r.RoutePatternID }

// Trip is a single journey along a route under a calendar service.
// Relies on Route, Calendar, and optionally RoutePattern.
type Trip struct {
	TripID               string
	RouteID              string
	ServiceID            string
	Headsign             *string
	ShortName            *string
	DirectionID          *int
	BlockID              *string
	ShapeID              *string
	WheelchairAccessible *TripAccessibility
	RouteType            *RouteType
	RoutePatternID       *string
	BikesAllowed         *TripAccessibility
}

func (t *Trip) EntityName() string { return "trip" }
func (t *Trip) Key() string        { return t.TripID }

// Checkpoint is a named timing checkpoint referenced by stop times.
type Checkpoint struct {
	CheckpointID string
	Name         string
}

func (c *Checkpoint) EntityName() string { return "checkpoint" }
func (c *Checkpoint) Key() string        { return c.CheckpointID }

// StopTime is a scheduled arrival/departure at a stop for a trip.
// Relies on Trip, Stop, and optionally Checkpoint.
type StopTime struct {
	TripID        string
	ArrivalTime   TimeOfDay
	DepartureTime TimeOfDay
	StopID        string
	StopSequence  int
	Headsign      *string
	PickupType    *PickupDropOffType
	DropOffType   *PickupDropOffType
	DistTraveled  *float64
	Timepoint     *int
	CheckpointID  *string
}

func (s *StopTime) EntityName() string { return "stop_time" }
func (s *StopTime) Key() string {
	return CompositeKey(s.TripID, strconv.Itoa(s.StopSequence))
}

// LinkedDataset describes a realtime feed published alongside the
// static one.
type LinkedDataset struct {
	URL                string
	TripUpdates        int
	VehiclePositions   int
	ServiceAlerts      int
	AuthenticationType AuthenticationType
}

func (l *LinkedDataset) EntityName() string { return "linked_dataset" }
func (l *LinkedDataset) Key() string        { return l.URL }

// MultiRouteTrip records a trip that also serves a route other than its
// own. Relies on Route and Trip.
type MultiRouteTrip struct {
	AddedRouteID string
	TripID       string
}

func (m *MultiRouteTrip) EntityName() string { return "multi_route_trip" }
func (m *MultiRouteTrip) Key() string {
	return CompositeKey(m.AddedRouteID, m.TripID)
}
