package schema

import "github.com/mbtahub/gtfs-ingest/internal/gtfs"

// StopSchema validates rows of stops.txt. The stop_lon/stop_lat pair is
// composed into a single Coordinate; if either half is absent the
// position is left unset.
//
// parent_station references a Stop loaded earlier in the same file or a
// previous run; unresolved parents are validation failures.
func StopSchema() *Schema {
	return &Schema{
		Entity: "stop",
		Fields: []Field{
			{Name: "stop_id", Required: true, Convert: Str()},
			{Name: "stop_code", Convert: Str()},
			{Name: "stop_name", Convert: Str()},
			{Name: "tts_stop_name", Convert: Str()},
			{Name: "stop_desc", Convert: Str()},
			{Name: "platform_code", Convert: Str()},
			{Name: "platform_name", Convert: Str()},
			{Name: "stop_lon", Convert: Float()},
			{Name: "stop_lat", Convert: Float()},
			{Name: "zone_id", Convert: Str()},
			{Name: "stop_address", Convert: Str()},
			{Name: "stop_url", Convert: URL()},
			{Name: "level_id", Convert: Str()},
			{Name: "location_type", Convert: NumberedEnum(gtfs.LocationTypes), Default: gtfs.LocationTypeStopOrPlatform},
			{Name: "parent_station", Convert: Str(), Ref: &Ref{Entity: "stop"}},
			{Name: "wheelchair_boarding", Convert: NumberedEnum(gtfs.AccessibilityTypes), Default: gtfs.AccessibilityUnknownOrInherited},
			{Name: "municipality", Convert: Str()},
			{Name: "on_street", Convert: Str()},
			{Name: "at_street", Convert: Str()},
			{Name: "vehicle_type", Convert: NumberedEnum(gtfs.RouteTypes)},
			{Name: "stop_timezone", Convert: Timezone()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Stop{
				StopID:             v["stop_id"].(string),
				Code:               v.StrPtr("stop_code"),
				Name:               v.StrPtr("stop_name"),
				TTSName:            v.StrPtr("tts_stop_name"),
				Desc:               v.StrPtr("stop_desc"),
				PlatformCode:       v.StrPtr("platform_code"),
				PlatformName:       v.StrPtr("platform_name"),
				Position:           coordinate(v, "stop_lon", "stop_lat"),
				ZoneID:             v.StrPtr("zone_id"),
				Address:            v.StrPtr("stop_address"),
				URL:                v.StrPtr("stop_url"),
				LevelID:            v.StrPtr("level_id"),
				LocationType:       ptr[gtfs.LocationType](v, "location_type"),
				ParentStation:      v.StrPtr("parent_station"),
				WheelchairBoarding: ptr[gtfs.AccessibilityType](v, "wheelchair_boarding"),
				Municipality:       v.StrPtr("municipality"),
				OnStreet:           v.StrPtr("on_street"),
				AtStreet:           v.StrPtr("at_street"),
				VehicleType:        ptr[gtfs.RouteType](v, "vehicle_type"),
				Timezone:           ptr[gtfs.TimeZone](v, "stop_timezone"),
			}
		},
	}
}

// coordinate combines a pair of independently supplied lon/lat columns,
// or returns nil when either half is missing.
func coordinate(v Values, lonField, latField string) *gtfs.Coordinate {
	lon, okLon := v[lonField].(float64)
	lat, okLat := v[latField].(float64)
	if !okLon || !okLat {
		return nil
	}
	return &gtfs.Coordinate{Lon: lon, Lat: lat}
}

// ShapeSchema validates rows of shapes.txt. Unlike stops, the point
// position is mandatory.
func ShapeSchema() *Schema {
	return &Schema{
		Entity: "shape",
		Fields: []Field{
			{Name: "shape_id", Required: true, Convert: Str()},
			{Name: "shape_pt_lon", Required: true, Convert: Float()},
			{Name: "shape_pt_lat", Required: true, Convert: Float()},
			{Name: "shape_pt_sequence", Required: true, Convert: Int()},
			{Name: "shape_dist_traveled", Convert: Float()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Shape{
				ShapeID: v["shape_id"].(string),
				Position: gtfs.Coordinate{
					Lon: v["shape_pt_lon"].(float64),
					Lat: v["shape_pt_lat"].(float64),
				},
				PtSequence:   v["shape_pt_sequence"].(int),
				DistTraveled: v.FloatPtr("shape_dist_traveled"),
			}
		},
	}
}

// CheckpointSchema validates rows of checkpoints.txt.
func CheckpointSchema() *Schema {
	return &Schema{
		Entity: "checkpoint",
		Fields: []Field{
			{Name: "checkpoint_id", Required: true, Convert: Str()},
			{Name: "checkpoint_name", Required: true, Convert: Str()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Checkpoint{
				CheckpointID: v["checkpoint_id"].(string),
				Name:         v["checkpoint_name"].(string),
			}
		},
	}
}
