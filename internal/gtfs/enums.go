package gtfs

// Enumerated field domains for the static GTFS tables. Feeds encode most of
// these as small numerals ("0", "1", ...); the numbered lookup tables below
// map those numerals to the named variants stored in the database.

// RouteType classifies the vehicle serving a route (routes.txt route_type,
// stops.txt vehicle_type, trips.txt trip_route_type).
type RouteType string

const (
	RouteTypeStreetLevelRail RouteType = "street_level_rail"
	RouteTypeUndergroundRail RouteType = "underground_rail"
	RouteTypeLongDistRail    RouteType = "long_dist_rail"
	RouteTypeBus             RouteType = "bus"
	RouteTypeFerry           RouteType = "ferry"
	RouteTypeCableTram       RouteType = "cable_tram"
	RouteTypeSuspended       RouteType = "suspended"
	RouteTypeFunicular       RouteType = "funicular"
	RouteTypeTrolleybus      RouteType = "trolleybus"
	RouteTypeMonorail        RouteType = "monorail"
)

// RouteTypes maps source numerals to RouteType variants. Note the gap:
// 8-10 are unassigned in the reference data.
var RouteTypes = map[string]RouteType{
	"0":  RouteTypeStreetLevelRail,
	"1":  RouteTypeUndergroundRail,
	"2":  RouteTypeLongDistRail,
	"3":  RouteTypeBus,
	"4":  RouteTypeFerry,
	"5":  RouteTypeCableTram,
	"6":  RouteTypeSuspended,
	"7":  RouteTypeFunicular,
	"11": RouteTypeTrolleybus,
	"12": RouteTypeMonorail,
}

// FareClass is the fare category of a route (routes.txt route_fare_class),
// named in the source as free text ("Rapid Transit", "Local Bus", ...).
type FareClass string

const (
	FareClassRapidTransit FareClass = "rapid_transit"
	FareClassLocalBus     FareClass = "local_bus"
	FareClassCommuterRail FareClass = "commuter_rail"
	FareClassFerry        FareClass = "ferry"
	FareClassInnerExpress FareClass = "inner_express"
	FareClassOuterExpress FareClass = "outer_express"
	FareClassFree         FareClass = "free"
	FareClassSpecial      FareClass = "special"
)

// FareClasses maps normalized source labels to FareClass variants.
var FareClasses = map[string]FareClass{
	"rapid_transit": FareClassRapidTransit,
	"local_bus":     FareClassLocalBus,
	"commuter_rail": FareClassCommuterRail,
	"ferry":         FareClassFerry,
	"inner_express": FareClassInnerExpress,
	"outer_express": FareClassOuterExpress,
	"free":          FareClassFree,
	"special":       FareClassSpecial,
}

// LocationType classifies a stop record (stops.txt location_type).
type LocationType string

const (
	LocationTypeStopOrPlatform LocationType = "stop_or_platform"
	LocationTypeStation        LocationType = "station"
	LocationTypeEntranceExit   LocationType = "entrance_exit"
	LocationTypeGenericNode    LocationType = "generic_node"
	LocationTypeBoardingArea   LocationType = "boarding_area"
)

var LocationTypes = map[string]LocationType{
	"0": LocationTypeStopOrPlatform,
	"1": LocationTypeStation,
	"2": LocationTypeEntranceExit,
	"3": LocationTypeGenericNode,
	"4": LocationTypeBoardingArea,
}

// AccessibilityType is the wheelchair boarding status of a stop.
type AccessibilityType string

const (
	AccessibilityUnknownOrInherited AccessibilityType = "unknown_or_inherited"
	AccessibilityLimitedOrFull      AccessibilityType = "limited_or_full"
	AccessibilityInaccessible       AccessibilityType = "inaccessible"
)

var AccessibilityTypes = map[string]AccessibilityType{
	"0": AccessibilityUnknownOrInherited,
	"1": AccessibilityLimitedOrFull,
	"2": AccessibilityInaccessible,
}

// ServiceScheduleType names the kind of day a calendar service covers
// (calendar_attributes.txt service_schedule_type, free text in the source).
type ServiceScheduleType string

const (
	ScheduleTypeWeekday  ServiceScheduleType = "weekday"
	ScheduleTypeSaturday ServiceScheduleType = "saturday"
	ScheduleTypeSunday   ServiceScheduleType = "sunday"
	ScheduleTypeOther    ServiceScheduleType = "other"
)

var ServiceScheduleTypes = map[string]ServiceScheduleType{
	"weekday":  ScheduleTypeWeekday,
	"saturday": ScheduleTypeSaturday,
	"sunday":   ScheduleTypeSunday,
	"other":    ScheduleTypeOther,
}

// ServiceScheduleTypicality describes how closely a schedule matches
// typical service.
type ServiceScheduleTypicality string

const (
	TypicalityNotDefined          ServiceScheduleTypicality = "not_defined"
	TypicalityTypicalService      ServiceScheduleTypicality = "typical_service"
	TypicalitySupplementalService ServiceScheduleTypicality = "supplemental_service"
	TypicalityHolidayService      ServiceScheduleTypicality = "holiday_service"
	TypicalityPlannedDisruption   ServiceScheduleTypicality = "planned_disruption"
	TypicalityAtypicalReduction   ServiceScheduleTypicality = "atypical_reduction"
)

var ServiceScheduleTypicalities = map[string]ServiceScheduleTypicality{
	"0": TypicalityNotDefined,
	"1": TypicalityTypicalService,
	"2": TypicalitySupplementalService,
	"3": TypicalityHolidayService,
	"4": TypicalityPlannedDisruption,
	"5": TypicalityAtypicalReduction,
}

// DateExceptionType marks a calendar date as added or removed service.
// "0" is deliberately absent: the source starts this domain at 1.
type DateExceptionType string

const (
	DateExceptionAddition DateExceptionType = "addition"
	DateExceptionRemoval  DateExceptionType = "removal"
)

var DateExceptionTypes = map[string]DateExceptionType{
	"1": DateExceptionAddition,
	"2": DateExceptionRemoval,
}

// DirectionOption is the human-readable heading of a direction record
// (directions.txt direction, free text in the source).
type DirectionOption string

const (
	DirectionNorth            DirectionOption = "north"
	DirectionSouth            DirectionOption = "south"
	DirectionEast             DirectionOption = "east"
	DirectionWest             DirectionOption = "west"
	DirectionNortheast        DirectionOption = "northeast"
	DirectionNorthwest        DirectionOption = "northwest"
	DirectionSoutheast        DirectionOption = "southeast"
	DirectionSouthwest        DirectionOption = "southwest"
	DirectionClockwise        DirectionOption = "clockwise"
	DirectionCounterclockwise DirectionOption = "counterclockwise"
	DirectionInbound          DirectionOption = "inbound"
	DirectionOutbound         DirectionOption = "outbound"
	DirectionLoopA            DirectionOption = "loop_a"
	DirectionLoopB            DirectionOption = "loop_b"
	DirectionLoop             DirectionOption = "loop"
)

var DirectionOptions = map[string]DirectionOption{
	"north":            DirectionNorth,
	"south":            DirectionSouth,
	"east":             DirectionEast,
	"west":             DirectionWest,
	"northeast":        DirectionNortheast,
	"northwest":        DirectionNorthwest,
	"southeast":        DirectionSoutheast,
	"southwest":        DirectionSouthwest,
	"clockwise":        DirectionClockwise,
	"counterclockwise": DirectionCounterclockwise,
	"inbound":          DirectionInbound,
	"outbound":         DirectionOutbound,
	"loop_a":           DirectionLoopA,
	"loop_b":           DirectionLoopB,
	"loop":             DirectionLoop,
}

// RoutePatternTypicality describes how representative a pattern is of its
// route's service.
type RoutePatternTypicality string

const (
	PatternNotDefined     RoutePatternTypicality = "not_defined"
	PatternTypical        RoutePatternTypicality = "typical"
	PatternDeviation      RoutePatternTypicality = "deviation"
	PatternHighlyAtypical RoutePatternTypicality = "highly_atypical"
	PatternDiversion      RoutePatternTypicality = "diversion"
)

var RoutePatternTypicalities = map[string]RoutePatternTypicality{
	"0": PatternNotDefined,
	"1": PatternTypical,
	"2": PatternDeviation,
	"3": PatternHighlyAtypical,
	"4": PatternDiversion,
}

// TripAccessibility is the wheelchair/bike accommodation status of a trip.
type TripAccessibility string

const (
	TripAccessibilityUnknown   TripAccessibility = "unknown"
	TripAccessibilityOneOrMore TripAccessibility = "one_or_more"
	TripAccessibilityNone      TripAccessibility = "none"
)

var TripAccessibilities = map[string]TripAccessibility{
	"0": TripAccessibilityUnknown,
	"1": TripAccessibilityOneOrMore,
	"2": TripAccessibilityNone,
}

// PickupDropOffType describes how passengers board or alight at a stop time.
type PickupDropOffType string

const (
	PickupDropOffRegular           PickupDropOffType = "regularly_scheduled"
	PickupDropOffNone              PickupDropOffType = "none_available"
	PickupDropOffArrangeWithAgency PickupDropOffType = "arrange_with_agency"
	PickupDropOffArrangeWithDriver PickupDropOffType = "arrange_with_driver"
)

var PickupDropOffTypes = map[string]PickupDropOffType{
	"0": PickupDropOffRegular,
	"1": PickupDropOffNone,
	"2": PickupDropOffArrangeWithAgency,
	"3": PickupDropOffArrangeWithDriver,
}

// AuthenticationType is how a linked realtime dataset authenticates.
type AuthenticationType string

const (
	AuthenticationNone AuthenticationType = "none"
)

var AuthenticationTypes = map[string]AuthenticationType{
	"0": AuthenticationNone,
}
