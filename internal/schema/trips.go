package schema

import "github.com/mbtahub/gtfs-ingest/internal/gtfs"

// DirectionSchema validates rows of directions.txt.
//
// The route reference is tolerant: feeds routinely carry directions for
// retired routes, and those rows are skipped rather than failing the
// run. This is the only relationship with that policy.
func DirectionSchema() *Schema {
	return &Schema{
		Entity: "direction",
		Fields: []Field{
			{Name: "route_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "route", Tolerant: true}},
			{Name: "direction_id", Required: true, Convert: Binary()},
			{Name: "direction", Required: true, Convert: NamedEnum(gtfs.DirectionOptions)},
			{Name: "direction_destination", Required: true, Convert: Str()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Direction{
				RouteID:     v["route_id"].(string),
				DirectionID: v["direction_id"].(int),
				Direction:   v["direction"].(gtfs.DirectionOption),
				Destination: v["direction_destination"].(string),
			}
		},
	}
}

// RoutePatternSchema validates rows of route_patterns.txt.
// representative_trip_id is informational and deliberately not checked
// against trips, which are loaded after patterns.
func RoutePatternSchema() *Schema {
	return &Schema{
		Entity: "route_pattern",
		Fields: []Field{
			{Name: "route_pattern_id", Required: true, Convert: Str()},
			{Name: "route_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "route"}},
			{Name: "direction_id", Convert: Binary()},
			{Name: "route_pattern_name", Convert: Str()},
			{Name: "route_pattern_time_desc", Convert: Str()},
			{Name: "route_pattern_typicality", Convert: NumberedEnum(gtfs.RoutePatternTypicalities)},
			{Name: "route_pattern_sort_order", Convert: Int()},
			{Name: "representative_trip_id", Convert: Str()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.RoutePattern{
				RoutePatternID:       v["route_pattern_id"].(string),
				RouteID:              v["route_id"].(string),
				DirectionID:          v.IntPtr("direction_id"),
				Name:                 v.StrPtr("route_pattern_name"),
				TimeDesc:             v.StrPtr("route_pattern_time_desc"),
				Typicality:           ptr[gtfs.RoutePatternTypicality](v, "route_pattern_typicality"),
				SortOrder:            v.IntPtr("route_pattern_sort_order"),
				RepresentativeTripID: v.StrPtr("representative_trip_id"),
			}
		},
	}
}

// TripSchema validates rows of trips.txt. shape_id is informational:
// shape points carry their own keys and trips reference the grouping id
// only loosely.
func TripSchema() *Schema {
	return &Schema{
		Entity: "trip",
		Fields: []Field{
			{Name: "route_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "route"}},
			{Name: "service_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "calendar"}},
			{Name: "trip_id", Required: true, Convert: Str()},
			{Name: "trip_headsign", Convert: Str()},
			{Name: "trip_short_name", Convert: Str()},
			{Name: "direction_id", Convert: Binary()},
			{Name: "block_id", Convert: Str()},
			{Name: "shape_id", Convert: Str()},
			{Name: "wheelchair_accessible", Convert: NumberedEnum(gtfs.TripAccessibilities), Default: gtfs.TripAccessibilityUnknown},
			{Name: "trip_route_type", Convert: NumberedEnum(gtfs.RouteTypes)},
			{Name: "route_pattern_id", Convert: Str(), Ref: &Ref{Entity: "route_pattern"}},
			{Name: "bikes_allowed", Convert: NumberedEnum(gtfs.TripAccessibilities), Default: gtfs.TripAccessibilityUnknown},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Trip{
				TripID:               v["trip_id"].(string),
				RouteID:              v["route_id"].(string),
				ServiceID:            v["service_id"].(string),
				Headsign:             v.StrPtr("trip_headsign"),
				ShortName:            v.StrPtr("trip_short_name"),
				DirectionID:          v.IntPtr("direction_id"),
				BlockID:              v.StrPtr("block_id"),
				ShapeID:              v.StrPtr("shape_id"),
				WheelchairAccessible: ptr[gtfs.TripAccessibility](v, "wheelchair_accessible"),
				RouteType:            ptr[gtfs.RouteType](v, "trip_route_type"),
				RoutePatternID:       v.StrPtr("route_pattern_id"),
				BikesAllowed:         ptr[gtfs.TripAccessibility](v, "bikes_allowed"),
			}
		},
	}
}

// MultiRouteTripSchema validates rows of multi_route_trips.txt.
func MultiRouteTripSchema() *Schema {
	return &Schema{
		Entity: "multi_route_trip",
		Fields: []Field{
			{Name: "added_route_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "route"}},
			{Name: "trip_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "trip"}},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.MultiRouteTrip{
				AddedRouteID: v["added_route_id"].(string),
				TripID:       v["trip_id"].(string),
			}
		},
	}
}
