package schema

import "github.com/mbtahub/gtfs-ingest/internal/gtfs"

// ptr pulls an optional coerced value out as a typed pointer, nil when
// the field was omitted.
func ptr[T any](v Values, name string) *T {
	if x, ok := v[name].(T); ok {
		return &x
	}
	return nil
}

// AgencySchema validates rows of agency.txt.
func AgencySchema() *Schema {
	return &Schema{
		Entity: "agency",
		Fields: []Field{
			{Name: "agency_id", Required: true, Convert: Int()},
			{Name: "agency_name", Required: true, Convert: Str()},
			{Name: "agency_url", Required: true, Convert: URL()},
			{Name: "agency_timezone", Required: true, Convert: Timezone()},
			{Name: "agency_lang", Convert: Lang()},
			{Name: "agency_phone", Convert: Str()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Agency{
				AgencyID: v["agency_id"].(int),
				Name:     v["agency_name"].(string),
				URL:      v["agency_url"].(string),
				Timezone: v["agency_timezone"].(gtfs.TimeZone),
				Lang:     ptr[gtfs.LangCode](v, "agency_lang"),
				Phone:    v.StrPtr("agency_phone"),
			}
		},
	}
}

// LineSchema validates rows of lines.txt.
func LineSchema() *Schema {
	return &Schema{
		Entity: "line",
		Fields: []Field{
			{Name: "line_id", Required: true, Convert: Str()},
			{Name: "line_short_name", Convert: Str()},
			{Name: "line_long_name", Required: true, Convert: Str()},
			{Name: "line_desc", Convert: Str()},
			{Name: "line_url", Convert: Str()},
			{Name: "line_color", Convert: Str()},
			{Name: "line_text_color", Convert: Str()},
			{Name: "line_sort_order", Convert: Int()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Line{
				LineID:    v["line_id"].(string),
				LongName:  v["line_long_name"].(string),
				ShortName: v.StrPtr("line_short_name"),
				Desc:      v.StrPtr("line_desc"),
				URL:       v.StrPtr("line_url"),
				Color:     v.StrPtr("line_color"),
				TextColor: v.StrPtr("line_text_color"),
				SortOrder: v.IntPtr("line_sort_order"),
			}
		},
	}
}

// RouteSchema validates rows of routes.txt. The listed_route column is
// present in the source export but carries no information we keep.
func RouteSchema() *Schema {
	return &Schema{
		Entity: "route",
		Drop:   []string{"listed_route"},
		Fields: []Field{
			{Name: "route_id", Required: true, Convert: Str()},
			{Name: "agency_id", Required: true, Convert: Int(), Ref: &Ref{Entity: "agency"}},
			{Name: "route_short_name", Convert: Str()},
			{Name: "route_long_name", Required: true, Convert: Str()},
			{Name: "route_desc", Convert: Str()},
			{Name: "route_type", Required: true, Convert: NumberedEnum(gtfs.RouteTypes)},
			{Name: "route_url", Convert: Str()},
			{Name: "route_color", Convert: Str()},
			{Name: "route_text_color", Convert: Str()},
			{Name: "route_sort_order", Convert: Int()},
			{Name: "route_fare_class", Convert: NamedEnum(gtfs.FareClasses)},
			{Name: "line_id", Convert: Str(), Ref: &Ref{Entity: "line"}},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Route{
				RouteID:   v["route_id"].(string),
				AgencyID:  v["agency_id"].(int),
				LongName:  v["route_long_name"].(string),
				Type:      v["route_type"].(gtfs.RouteType),
				ShortName: v.StrPtr("route_short_name"),
				Desc:      v.StrPtr("route_desc"),
				URL:       v.StrPtr("route_url"),
				Color:     v.StrPtr("route_color"),
				TextColor: v.StrPtr("route_text_color"),
				SortOrder: v.IntPtr("route_sort_order"),
				FareClass: ptr[gtfs.FareClass](v, "route_fare_class"),
				LineID:    v.StrPtr("line_id"),
			}
		},
	}
}
