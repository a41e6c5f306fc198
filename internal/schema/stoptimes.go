package schema

import "github.com/mbtahub/gtfs-ingest/internal/gtfs"

// StopTimeSchema validates rows of stop_times.txt, by far the largest
// table in a feed.
func StopTimeSchema() *Schema {
	return &Schema{
		Entity: "stop_time",
		Fields: []Field{
			{Name: "trip_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "trip"}},
			{Name: "arrival_time", Required: true, Convert: TimeOfDay()},
			{Name: "departure_time", Required: true, Convert: TimeOfDay()},
			{Name: "stop_id", Required: true, Convert: Str(), Ref: &Ref{Entity: "stop"}},
			{Name: "stop_sequence", Required: true, Convert: Int()},
			{Name: "stop_headsign", Convert: Str()},
			{Name: "pickup_type", Convert: NumberedEnum(gtfs.PickupDropOffTypes)},
			{Name: "drop_off_type", Convert: NumberedEnum(gtfs.PickupDropOffTypes)},
			{Name: "shape_dist_traveled", Convert: Float()},
			{Name: "timepoint", Convert: Binary()},
			{Name: "checkpoint_id", Convert: Str(), Ref: &Ref{Entity: "checkpoint"}},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.StopTime{
				TripID:        v["trip_id"].(string),
				ArrivalTime:   v["arrival_time"].(gtfs.TimeOfDay),
				DepartureTime: v["departure_time"].(gtfs.TimeOfDay),
				StopID:        v["stop_id"].(string),
				StopSequence:  v["stop_sequence"].(int),
				Headsign:      v.StrPtr("stop_headsign"),
				PickupType:    ptr[gtfs.PickupDropOffType](v, "pickup_type"),
				DropOffType:   ptr[gtfs.PickupDropOffType](v, "drop_off_type"),
				DistTraveled:  v.FloatPtr("shape_dist_traveled"),
				Timepoint:     v.IntPtr("timepoint"),
				CheckpointID:  v.StrPtr("checkpoint_id"),
			}
		},
	}
}

// LinkedDatasetSchema validates rows of linked_datasets.txt.
func LinkedDatasetSchema() *Schema {
	return &Schema{
		Entity: "linked_dataset",
		Fields: []Field{
			{Name: "url", Required: true, Convert: URL()},
			{Name: "trip_updates", Required: true, Convert: Binary()},
			{Name: "vehicle_positions", Required: true, Convert: Binary()},
			{Name: "service_alerts", Required: true, Convert: Binary()},
			{Name: "authentication_type", Required: true, Convert: NumberedEnum(gtfs.AuthenticationTypes)},
		},
		Build: func(v Values) gtfs.Entity {
			return &gtfs.LinkedDataset{
				URL:                v["url"].(string),
				TripUpdates:        v["trip_updates"].(int),
				VehiclePositions:   v["vehicle_positions"].(int),
				ServiceAlerts:      v["service_alerts"].(int),
				AuthenticationType: v["authentication_type"].(gtfs.AuthenticationType),
			}
		},
	}
}
