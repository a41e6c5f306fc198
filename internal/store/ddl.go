package store

// createStatements holds the table DDL in dependency order. Statements
// are idempotent so CreateAll can run at every startup.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS agency (
		agency_id       integer PRIMARY KEY,
		agency_name     text NOT NULL,
		agency_url      text NOT NULL,
		agency_timezone text NOT NULL,
		agency_lang     text,
		agency_phone    text
	)`,
	`CREATE TABLE IF NOT EXISTS line (
		line_id         text PRIMARY KEY,
		line_short_name text,
		line_long_name  text NOT NULL,
		line_desc       text,
		line_url        text,
		line_color      text,
		line_text_color text,
		line_sort_order integer
	)`,
	`CREATE TABLE IF NOT EXISTS route (
		route_id         text PRIMARY KEY,
		agency_id        integer NOT NULL REFERENCES agency (agency_id),
		route_short_name text,
		route_long_name  text NOT NULL,
		route_desc       text,
		route_type       text NOT NULL,
		route_url        text,
		route_color      text,
		route_text_color text,
		route_sort_order integer,
		route_fare_class text,
		line_id          text REFERENCES line (line_id)
	)`,
	`CREATE TABLE IF NOT EXISTS stop (
		stop_id             text PRIMARY KEY,
		stop_code           text,
		stop_name           text,
		tts_stop_name       text,
		stop_desc           text,
		platform_code       text,
		platform_name       text,
		stop_lon            double precision,
		stop_lat            double precision,
		zone_id             text,
		stop_address        text,
		stop_url            text,
		level_id            text,
		location_type       text,
		parent_station      text REFERENCES stop (stop_id),
		wheelchair_boarding text,
		municipality        text,
		on_street           text,
		at_street           text,
		vehicle_type        text,
		stop_timezone       text
	)`,
	`CREATE TABLE IF NOT EXISTS calendar (
		service_id text PRIMARY KEY,
		monday     boolean NOT NULL,
		tuesday    boolean NOT NULL,
		wednesday  boolean NOT NULL,
		thursday   boolean NOT NULL,
		friday     boolean NOT NULL,
		saturday   boolean NOT NULL,
		sunday     boolean NOT NULL,
		start_date date NOT NULL,
		end_date   date NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_attribute (
		service_id                  text PRIMARY KEY REFERENCES calendar (service_id),
		service_description         text NOT NULL,
		service_schedule_name       text NOT NULL,
		service_schedule_type       text NOT NULL,
		service_schedule_typicality text,
		rating_start_date           date,
		rating_end_date             date,
		rating_description          text
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_date (
		service_id     text NOT NULL REFERENCES calendar (service_id),
		date           date NOT NULL,
		exception_type text NOT NULL,
		holiday_name   text,
		PRIMARY KEY (service_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS shape (
		shape_id            text NOT NULL,
		shape_pt_lon        double precision NOT NULL,
		shape_pt_lat        double precision NOT NULL,
		shape_pt_sequence   integer NOT NULL,
		shape_dist_traveled double precision,
		PRIMARY KEY (shape_id, shape_pt_sequence)
	)`,
	`CREATE TABLE IF NOT EXISTS direction (
		route_id              text NOT NULL REFERENCES route (route_id),
		direction_id          integer NOT NULL,
		direction             text NOT NULL,
		direction_destination text NOT NULL,
		PRIMARY KEY (route_id, direction_id)
	)`,
	`CREATE TABLE IF NOT EXISTS route_pattern (
		route_pattern_id         text PRIMARY KEY,
		route_id                 text NOT NULL REFERENCES route (route_id),
		direction_id             integer,
		route_pattern_name       text,
		route_pattern_time_desc  text,
		route_pattern_typicality text,
		route_pattern_sort_order integer,
		representative_trip_id   text
	)`,
	`CREATE TABLE IF NOT EXISTS trip (
		trip_id               text PRIMARY KEY,
		route_id              text NOT NULL REFERENCES route (route_id),
		service_id            text NOT NULL REFERENCES calendar (service_id),
		trip_headsign         text,
		trip_short_name       text,
		direction_id          integer,
		block_id              text,
		shape_id              text,
		wheelchair_accessible text,
		trip_route_type       text,
		route_pattern_id      text REFERENCES route_pattern (route_pattern_id),
		bikes_allowed         text
	)`,
	`CREATE TABLE IF NOT EXISTS checkpoint (
		checkpoint_id   text PRIMARY KEY,
		checkpoint_name text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stop_time (
		trip_id             text NOT NULL REFERENCES trip (trip_id),
		arrival_time        integer NOT NULL,
		departure_time      integer NOT NULL,
		stop_id             text NOT NULL REFERENCES stop (stop_id),
		stop_sequence       integer NOT NULL,
		stop_headsign       text,
		pickup_type         text,
		drop_off_type       text,
		shape_dist_traveled double precision,
		timepoint           integer,
		checkpoint_id       text REFERENCES checkpoint (checkpoint_id),
		PRIMARY KEY (trip_id, stop_sequence)
	)`,
	`CREATE TABLE IF NOT EXISTS linked_dataset (
		url                 text PRIMARY KEY,
		trip_updates        integer NOT NULL,
		vehicle_positions   integer NOT NULL,
		service_alerts      integer NOT NULL,
		authentication_type text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS multi_route_trip (
		added_route_id text NOT NULL REFERENCES route (route_id),
		trip_id        text NOT NULL REFERENCES trip (trip_id),
		PRIMARY KEY (added_route_id, trip_id)
	)`,
}
