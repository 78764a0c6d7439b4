package gtfs

// RouteRecord is one row of routes.txt, keyed by RouteID.
type RouteRecord struct {
	RouteID   string
	ShortName string
	LongName  string
}

// TripRecord is one row of trips.txt. TripID joins to RouteRecord via RouteID
// and to StopTimeRecord via TripID; ServiceID joins to CalendarRecord.
type TripRecord struct {
	TripID    string
	RouteID   string
	ServiceID string
	Headsign  string
}

// CalendarRecord is one row of calendar.txt. Weekdays is indexed by
// time.Weekday (Sunday == 0). StartDate and EndDate are inclusive YYYYMMDD
// strings compared lexically.
type CalendarRecord struct {
	ServiceID string
	Weekdays  [7]bool
	StartDate string
	EndDate   string
}

// StopTimeRecord is one row of stop_times.txt. ArrivalTime is a zero-padded
// HH:mm:ss string and may exceed 24:00:00 for trips running past midnight.
type StopTimeRecord struct {
	TripID      string
	StopID      string
	ArrivalTime string
}
