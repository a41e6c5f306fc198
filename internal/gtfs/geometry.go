package gtfs

import "fmt"

// Coordinate is a WGS84 position, decomposed into its longitude and
// latitude halves at construction time.
type Coordinate struct {
	Lon float64
	Lat float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("POINT(%g %g)", c.Lon, c.Lat)
}
