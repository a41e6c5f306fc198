package ingest

import (
	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
	"github.com/mbtahub/gtfs-ingest/internal/schema"
)

func init() {
	register(agencyDef())
	register(lineDef())
	register(routeDef())
	register(stopDef())
	register(calendarDef())
	register(calendarAttributeDef())
	register(calendarDateDef())
	register(shapeDef())
	register(directionDef())
	register(routePatternDef())
	register(tripDef())
	register(checkpointDef())
	register(stopTimeDef())
	register(linkedDatasetDef())
	register(multiRouteTripDef())
}

// enumPtr renders an optional enum value as a nullable text column.
func enumPtr[T ~string](p *T) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func lonPtr(c *gtfs.Coordinate) *float64 {
	if c == nil {
		return nil
	}
	return &c.Lon
}

func latPtr(c *gtfs.Coordinate) *float64 {
	if c == nil {
		return nil
	}
	return &c.Lat
}

func agencyDef() *Definition {
	return &Definition{
		Name:       "agency",
		File:       "agency.txt",
		Table:      "agency",
		KeyColumns: []string{"agency_id"},
		KeySelect:  "agency_id::text",
		Schema:     schema.AgencySchema(),
		Values: func(e gtfs.Entity) map[string]any {
			a := e.(*gtfs.Agency)
			return map[string]any{
				"agency_id":       a.AgencyID,
				"agency_name":     a.Name,
				"agency_url":      a.URL,
				"agency_timezone": string(a.Timezone),
				"agency_lang":     enumPtr(a.Lang),
				"agency_phone":    a.Phone,
			}
		},
	}
}

func lineDef() *Definition {
	return &Definition{
		Name:       "line",
		File:       "lines.txt",
		Table:      "line",
		KeyColumns: []string{"line_id"},
		KeySelect:  "line_id",
		Schema:     schema.LineSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			l := e.(*gtfs.Line)
			return map[string]any{
				"line_id":         l.LineID,
				"line_short_name": l.ShortName,
				"line_long_name":  l.LongName,
				"line_desc":       l.Desc,
				"line_url":        l.URL,
				"line_color":      l.Color,
				"line_text_color": l.TextColor,
				"line_sort_order": l.SortOrder,
			}
		},
	}
}

func routeDef() *Definition {
	return &Definition{
		Name:       "route",
		File:       "routes.txt",
		Table:      "route",
		KeyColumns: []string{"route_id"},
		KeySelect:  "route_id",
		Deps:       []string{"agency", "line"},
		Schema:     schema.RouteSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			r := e.(*gtfs.Route)
			return map[string]any{
				"route_id":         r.RouteID,
				"agency_id":        r.AgencyID,
				"route_short_name": r.ShortName,
				"route_long_name":  r.LongName,
				"route_desc":       r.Desc,
				"route_type":       string(r.Type),
				"route_url":        r.URL,
				"route_color":      r.Color,
				"route_text_color": r.TextColor,
				"route_sort_order": r.SortOrder,
				"route_fare_class": enumPtr(r.FareClass),
				"line_id":          r.LineID,
			}
		},
	}
}

func stopDef() *Definition {
	return &Definition{
		Name:       "stop",
		File:       "stops.txt",
		Table:      "stop",
		KeyColumns: []string{"stop_id"},
		KeySelect:  "stop_id",
		Schema:     schema.StopSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			s := e.(*gtfs.Stop)
			return map[string]any{
				"stop_id":             s.StopID,
				"stop_code":           s.Code,
				"stop_name":           s.Name,
				"tts_stop_name":       s.TTSName,
				"stop_desc":           s.Desc,
				"platform_code":       s.PlatformCode,
				"platform_name":       s.PlatformName,
				"stop_lon":            lonPtr(s.Position),
				"stop_lat":            latPtr(s.Position),
				"zone_id":             s.ZoneID,
				"stop_address":        s.Address,
				"stop_url":            s.URL,
				"level_id":            s.LevelID,
				"location_type":       enumPtr(s.LocationType),
				"parent_station":      s.ParentStation,
				"wheelchair_boarding": enumPtr(s.WheelchairBoarding),
				"municipality":        s.Municipality,
				"on_street":           s.OnStreet,
				"at_street":           s.AtStreet,
				"vehicle_type":        enumPtr(s.VehicleType),
				"stop_timezone":       enumPtr(s.Timezone),
			}
		},
	}
}

func calendarDef() *Definition {
	return &Definition{
		Name:       "calendar",
		File:       "calendar.txt",
		Table:      "calendar",
		KeyColumns: []string{"service_id"},
		KeySelect:  "service_id",
		Schema:     schema.CalendarSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			c := e.(*gtfs.Calendar)
			return map[string]any{
				"service_id": c.ServiceID,
				"monday":     c.Monday,
				"tuesday":    c.Tuesday,
				"wednesday":  c.Wednesday,
				"thursday":   c.Thursday,
				"friday":     c.Friday,
				"saturday":   c.Saturday,
				"sunday":     c.Sunday,
				"start_date": c.StartDate,
				"end_date":   c.EndDate,
			}
		},
	}
}

func calendarAttributeDef() *Definition {
	return &Definition{
		Name:       "calendar_attribute",
		File:       "calendar_attributes.txt",
		Table:      "calendar_attribute",
		KeyColumns: []string{"service_id"},
		KeySelect:  "service_id",
		Deps:       []string{"calendar"},
		Schema:     schema.CalendarAttributeSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			c := e.(*gtfs.CalendarAttribute)
			return map[string]any{
				"service_id":                  c.ServiceID,
				"service_description":         c.Description,
				"service_schedule_name":       c.ScheduleName,
				"service_schedule_type":       string(c.ScheduleType),
				"service_schedule_typicality": enumPtr(c.ScheduleTypicality),
				"rating_start_date":           c.RatingStartDate,
				"rating_end_date":             c.RatingEndDate,
				"rating_description":          c.RatingDescription,
			}
		},
	}
}

func calendarDateDef() *Definition {
	return &Definition{
		Name:       "calendar_date",
		File:       "calendar_dates.txt",
		Table:      "calendar_date",
		KeyColumns: []string{"service_id", "date"},
		KeySelect:  "service_id || '|' || to_char(date, 'YYYYMMDD')",
		Deps:       []string{"calendar"},
		Schema:     schema.CalendarDateSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			c := e.(*gtfs.CalendarDate)
			return map[string]any{
				"service_id":     c.ServiceID,
				"date":           c.Date,
				"exception_type": string(c.ExceptionType),
				"holiday_name":   c.HolidayName,
			}
		},
	}
}

func shapeDef() *Definition {
	return &Definition{
		Name:       "shape",
		File:       "shapes.txt",
		Table:      "shape",
		KeyColumns: []string{"shape_id", "shape_pt_sequence"},
		KeySelect:  "shape_id || '|' || shape_pt_sequence::text",
		Schema:     schema.ShapeSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			s := e.(*gtfs.Shape)
			return map[string]any{
				"shape_id":            s.ShapeID,
				"shape_pt_lon":        s.Position.Lon,
				"shape_pt_lat":        s.Position.Lat,
				"shape_pt_sequence":   s.PtSequence,
				"shape_dist_traveled": s.DistTraveled,
			}
		},
	}
}

func directionDef() *Definition {
	return &Definition{
		Name:       "direction",
		File:       "directions.txt",
		Table:      "direction",
		KeyColumns: []string{"route_id", "direction_id"},
		KeySelect:  "route_id || '|' || direction_id::text",
		Deps:       []string{"route"},
		Schema:     schema.DirectionSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			d := e.(*gtfs.Direction)
			return map[string]any{
				"route_id":              d.RouteID,
				"direction_id":          d.DirectionID,
				"direction":             string(d.Direction),
				"direction_destination": d.Destination,
			}
		},
	}
}

func routePatternDef() *Definition {
	return &Definition{
		Name:       "route_pattern",
		File:       "route_patterns.txt",
		Table:      "route_pattern",
		KeyColumns: []string{"route_pattern_id"},
		KeySelect:  "route_pattern_id",
		Deps:       []string{"route"},
		Schema:     schema.RoutePatternSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			r := e.(*gtfs.RoutePattern)
			return map[string]any{
				"route_pattern_id":         r.RoutePatternID,
				"route_id":                 r.RouteID,
				"direction_id":             r.DirectionID,
				"route_pattern_name":       r.Name,
				"route_pattern_time_desc":  r.TimeDesc,
				"route_pattern_typicality": enumPtr(r.Typicality),
				"route_pattern_sort_order": r.SortOrder,
				"representative_trip_id":   r.RepresentativeTripID,
			}
		},
	}
}

func tripDef() *Definition {
	return &Definition{
		Name:       "trip",
		File:       "trips.txt",
		Table:      "trip",
		KeyColumns: []string{"trip_id"},
		KeySelect:  "trip_id",
		Deps:       []string{"route", "calendar", "route_pattern"},
		Schema:     schema.TripSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			t := e.(*gtfs.Trip)
			return map[string]any{
				"trip_id":               t.TripID,
				"route_id":              t.RouteID,
				"service_id":            t.ServiceID,
				"trip_headsign":         t.Headsign,
				"trip_short_name":       t.ShortName,
				"direction_id":          t.DirectionID,
				"block_id":              t.BlockID,
				"shape_id":              t.ShapeID,
				"wheelchair_accessible": enumPtr(t.WheelchairAccessible),
				"trip_route_type":       enumPtr(t.RouteType),
				"route_pattern_id":      t.RoutePatternID,
				"bikes_allowed":         enumPtr(t.BikesAllowed),
			}
		},
	}
}

func checkpointDef() *Definition {
	return &Definition{
		Name:       "checkpoint",
		File:       "checkpoints.txt",
		Table:      "checkpoint",
		KeyColumns: []string{"checkpoint_id"},
		KeySelect:  "checkpoint_id",
		Schema:     schema.CheckpointSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			c := e.(*gtfs.Checkpoint)
			return map[string]any{
				"checkpoint_id":   c.CheckpointID,
				"checkpoint_name": c.Name,
			}
		},
	}
}

func stopTimeDef() *Definition {
	return &Definition{
		Name:       "stop_time",
		File:       "stop_times.txt",
		Table:      "stop_time",
		KeyColumns: []string{"trip_id", "stop_sequence"},
		KeySelect:  "trip_id || '|' || stop_sequence::text",
		Deps:       []string{"trip", "stop", "checkpoint"},
		Schema:     schema.StopTimeSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			s := e.(*gtfs.StopTime)
			return map[string]any{
				"trip_id":             s.TripID,
				"arrival_time":        int(s.ArrivalTime),
				"departure_time":      int(s.DepartureTime),
				"stop_id":             s.StopID,
				"stop_sequence":       s.StopSequence,
				"stop_headsign":       s.Headsign,
				"pickup_type":         enumPtr(s.PickupType),
				"drop_off_type":       enumPtr(s.DropOffType),
				"shape_dist_traveled": s.DistTraveled,
				"timepoint":           s.Timepoint,
				"checkpoint_id":       s.CheckpointID,
			}
		},
	}
}

func linkedDatasetDef() *Definition {
	return &Definition{
		Name:       "linked_dataset",
		File:       "linked_datasets.txt",
		Table:      "linked_dataset",
		KeyColumns: []string{"url"},
		KeySelect:  "url",
		Schema:     schema.LinkedDatasetSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			l := e.(*gtfs.LinkedDataset)
			return map[string]any{
				"url":                 l.URL,
				"trip_updates":        l.TripUpdates,
				"vehicle_positions":   l.VehiclePositions,
				"service_alerts":      l.ServiceAlerts,
				"authentication_type": string(l.AuthenticationType),
			}
		},
	}
}

func multiRouteTripDef() *Definition {
	return &Definition{
		Name:       "multi_route_trip",
		File:       "multi_route_trips.txt",
		Table:      "multi_route_trip",
		KeyColumns: []string{"added_route_id", "trip_id"},
		KeySelect:  "added_route_id || '|' || trip_id",
		Deps:       []string{"route", "trip"},
		Schema:     schema.MultiRouteTripSchema(),
		Values: func(e gtfs.Entity) map[string]any {
			m := e.(*gtfs.MultiRouteTrip)
			return map[string]any{
				"added_route_id": m.AddedRouteID,
				"trip_id":        m.TripID,
			}
		},
	}
}
