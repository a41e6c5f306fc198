package schema

import (
	"time"

	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
)

// calendarDays are the boolean day-of-week columns of calendar.txt.
// They are exempt from the blank-value pre-filter: an explicit "0" or
// "false" must reach the boolean converter rather than being mistaken
// for an absent value by a filter keyed on falsiness.
var calendarDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// CalendarSchema validates rows of calendar.txt.
func CalendarSchema() *Schema {
	fields := []Field{
		{Name: "service_id", Required: true, Convert: Str()},
	}
	for _, day := range calendarDays {
		fields = append(fields, Field{Name: day, Required: true, Convert: Bool()})
	}
	fields = append(fields,
		Field{Name: "start_date", Required: true, Convert: Date()},
		Field{Name: "end_date", Required: true, Convert: Date()},
	)
	return &Schema{
		Entity:   "calendar",
		Fields:   fields,
		NoFilter: calendarDays,
		Build: func(v Values) gtfs.Entity {
			return &gtfs.Calendar{
				ServiceID: v["service_id"].(string),
				Monday:    v["monday"].(bool),
				Tuesday:   v["tuesday"].(bool),
				Wednesday: v["wednesday"].(bool),
				Thursday:  v["thursday"].(bool),
				Friday:    v["friday"].(bool),
				Saturday:  v["saturday"].(bool),
				Sunday:    v["sunday"].(bool),
				StartDate: v["start_date"].(time.Time),
				EndDate:   v["end_date"].(time.Time),
			}
		},
	}
}

// CalendarAttributeSchema validates rows of calendar_attributes.txt.
func CalendarAttributeSchema() *Schema {
	return &Schema{
		Entity: "calendar_attribute",
		Fields: []Field{
			{Name: "service_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "calendar"}},
			{Name: "service_description", Required: true, Convert: Str()},
			{Name: "service_schedule_name", Required: true, Convert: Str()},
			{Name: "service_schedule_type", Required: true, Convert: NamedEnum(gtfs.ServiceScheduleTypes)},
			{Name: "service_schedule_typicality", Convert: NumberedEnum(gtfs.ServiceScheduleTypicalities), Default: gtfs.TypicalityNotDefined},
			{Name: "rating_start_date", Convert: Date()},
			{Name: "rating_end_date", Convert: Date()},
			{Name: "rating_description", Convert: Str()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.CalendarAttribute{
				ServiceID:          v["service_id"].(string),
				Description:        v["service_description"].(string),
				ScheduleName:       v["service_schedule_name"].(string),
				ScheduleType:       v["service_schedule_type"].(gtfs.ServiceScheduleType),
				ScheduleTypicality: ptr[gtfs.ServiceScheduleTypicality](v, "service_schedule_typicality"),
				RatingStartDate:    ptr[time.Time](v, "rating_start_date"),
				RatingEndDate:      ptr[time.Time](v, "rating_end_date"),
				RatingDescription:  v.StrPtr("rating_description"),
			}
		},
	}
}

// CalendarDateSchema validates rows of calendar_dates.txt.
func CalendarDateSchema() *Schema {
	return &Schema{
		Entity: "calendar_date",
		Fields: []Field{
			{Name: "service_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "calendar"}},
			{Name: "date", Required: true, Convert: Date()},
			{Name: "exception_type", Required: true, Convert: NumberedEnum(gtfs.DateExceptionTypes)},
			{Name: "holiday_name", Convert: Str()},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.CalendarDate{
				ServiceID:     v["service_id"].(string),
				Date:          v["date"].(time.Time),
				ExceptionType: v["exception_type"].(gtfs.DateExceptionType),
				HolidayName:   v.StrPtr("holiday_name"),
			}
		},
	}
}
