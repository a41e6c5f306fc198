package gtfs

import "testing"

func TestTimeOfDayString(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00:00"},
		{610, "00:10:10"},
		{36610, "10:10:10"},
		{86700, "24:05:00"},
	}
	for _, tt := range tests {
		if got := TimeOfDay(tt.secs).String(); got != tt.want {
			t.Errorf("TimeOfDay(%d).String() = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestTimeZoneDisplay(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{"America_New_York", "America/New_York"},
		{"America_Indiana_Indianapolis", "America/Indiana/Indianapolis"},
		{"America_North_Dakota_Beulah", "America/North_Dakota/Beulah"},
		{"Europe_London", "Europe/London"},
		{"UTC", "UTC"},
	}
	for _, tt := range tests {
		if got := TimeZone(tt.stored).Display(); got != tt.want {
			t.Errorf("TimeZone(%q).Display() = %q, want %q", tt.stored, got, tt.want)
		}
	}
}

func TestCompositeKeys(t *testing.T) {
	tests := []struct {
		entity Entity
		want   string
	}{
		{&Agency{AgencyID: 1}, "1"},
		{&StopTime{TripID: "t1", StopSequence: 5}, "t1|5"},
		{&Direction{RouteID: "Red", DirectionID: 1}, "Red|1"},
		{&Shape{ShapeID: "s", PtSequence: 12}, "s|12"},
		{&MultiRouteTrip{AddedRouteID: "Red", TripID: "t1"}, "Red|t1"},
	}
	for _, tt := range tests {
		if got := tt.entity.Key(); got != tt.want {
			t.Errorf("%s.Key() = %q, want %q", tt.entity.EntityName(), got, tt.want)
		}
	}
}

func TestCoordinateString(t *testing.T) {
	c := Coordinate{Lon: -71.0589, Lat: 42.3601}
	if got := c.String(); got != "POINT(-71.0589 42.3601)" {
		t.Errorf("String() = %q", got)
	}
}
