package schema

import (
	"testing"
	"time"

	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
)

func TestBinary(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"false", 0, false},
		{"true", 1, false},
		{"False", 0, false},
		{"TRUE", 1, false},
		{" 1 ", 1, false},
		{"2", 0, true},
		{"-1", 0, true},
		{"1.0", 0, true},
		{"yes", 0, true},
		{"", 0, true},
	}

	conv := Binary()
	for _, tt := range tests {
		got, err := conv(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Binary(%q) expected error, got %v", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Binary(%q) error = %v", tt.raw, err)
			continue
		}
		if got.(int) != tt.want {
			t.Errorf("Binary(%q) = %v, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestBool(t *testing.T) {
	conv := Bool()
	got, err := conv("1")
	if err != nil || got.(bool) != true {
		t.Errorf("Bool(1) = %v, %v", got, err)
	}
	got, err = conv("false")
	if err != nil || got.(bool) != false {
		t.Errorf("Bool(false) = %v, %v", got, err)
	}
	if _, err = conv("maybe"); err == nil {
		t.Error("Bool(maybe) expected error")
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"00:00:00", 0, false},
		{"00:10:10", 610, false},
		{"10:10:10", 36610, false},
		{"24:30:00", 88200, false},
		{"7:05:00", 25500, false},
		{"10:10", 0, true},
		{"10:10:10:10", 0, true},
		{"10:-1:00", 0, true},
		{"ten:10:10", 0, true},
		{"", 0, true},
	}

	conv := TimeOfDay()
	for _, tt := range tests {
		got, err := conv(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("TimeOfDay(%q) expected error, got %v", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("TimeOfDay(%q) error = %v", tt.raw, err)
			continue
		}
		if int(got.(gtfs.TimeOfDay)) != tt.want {
			t.Errorf("TimeOfDay(%q) = %v, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestNumberedEnum(t *testing.T) {
	conv := NumberedEnum(gtfs.RouteTypes)

	got, err := conv("3")
	if err != nil || got.(gtfs.RouteType) != gtfs.RouteTypeBus {
		t.Errorf("NumberedEnum(3) = %v, %v", got, err)
	}
	got, err = conv("12")
	if err != nil || got.(gtfs.RouteType) != gtfs.RouteTypeMonorail {
		t.Errorf("NumberedEnum(12) = %v, %v", got, err)
	}

	for _, raw := range []string{"8", "13", "-1", "3.0", "bus", ""} {
		if _, err := conv(raw); err == nil {
			t.Errorf("NumberedEnum(%q) expected error", raw)
		}
	}
}

func TestNamedEnum(t *testing.T) {
	conv := NamedEnum(gtfs.FareClasses)

	tests := []struct {
		raw  string
		want gtfs.FareClass
	}{
		{"rapid_transit", gtfs.FareClassRapidTransit},
		{"Rapid Transit", gtfs.FareClassRapidTransit},
		{"  LOCAL   BUS  ", gtfs.FareClassLocalBus},
		{"free", gtfs.FareClassFree},
	}
	for _, tt := range tests {
		got, err := conv(tt.raw)
		if err != nil {
			t.Errorf("NamedEnum(%q) error = %v", tt.raw, err)
			continue
		}
		if got.(gtfs.FareClass) != tt.want {
			t.Errorf("NamedEnum(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := conv("gold class"); err == nil {
		t.Error("NamedEnum(gold class) expected error")
	}
}

func TestTimezone(t *testing.T) {
	conv := Timezone()

	got, err := conv("America/New_York")
	if err != nil {
		t.Fatalf("Timezone(America/New_York) error = %v", err)
	}
	if got.(gtfs.TimeZone) != "America_New_York" {
		t.Errorf("Timezone(America/New_York) = %v", got)
	}

	got, err = conv("UTC")
	if err != nil || got.(gtfs.TimeZone) != "UTC" {
		t.Errorf("Timezone(UTC) = %v, %v", got, err)
	}

	for _, raw := range []string{"America/Springfield", "not a zone", ""} {
		if _, err := conv(raw); err == nil {
			t.Errorf("Timezone(%q) expected error", raw)
		}
	}
}

func TestLang(t *testing.T) {
	conv := Lang()

	got, err := conv("EN")
	if err != nil || got.(gtfs.LangCode) != "en" {
		t.Errorf("Lang(EN) = %v, %v", got, err)
	}

	for _, raw := range []string{"eng", "e", "q!", ""} {
		if _, err := conv(raw); err == nil {
			t.Errorf("Lang(%q) expected error", raw)
		}
	}
}

func TestDate(t *testing.T) {
	conv := Date()

	got, err := conv("20260901")
	if err != nil {
		t.Fatalf("Date(20260901) error = %v", err)
	}
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.(time.Time).Equal(want) {
		t.Errorf("Date(20260901) = %v, want %v", got, want)
	}

	for _, raw := range []string{"2026-09-01", "20261301", "tomorrow", ""} {
		if _, err := conv(raw); err == nil {
			t.Errorf("Date(%q) expected error", raw)
		}
	}
}

func TestFloat(t *testing.T) {
	conv := Float()

	got, err := conv("-71.0589")
	if err != nil || got.(float64) != -71.0589 {
		t.Errorf("Float(-71.0589) = %v, %v", got, err)
	}

	for _, raw := range []string{"NaN", "Inf", "-Inf", "abc", ""} {
		if _, err := conv(raw); err == nil {
			t.Errorf("Float(%q) expected error", raw)
		}
	}
}

func TestURL(t *testing.T) {
	conv := URL()

	got, err := conv("https://www.mbta.com")
	if err != nil || got.(string) != "https://www.mbta.com" {
		t.Errorf("URL(https://www.mbta.com) = %v, %v", got, err)
	}

	for _, raw := range []string{"ftp://example.com", "www.mbta.com", "not a url", ""} {
		if _, err := conv(raw); err == nil {
			t.Errorf("URL(%q) expected error", raw)
		}
	}
}
