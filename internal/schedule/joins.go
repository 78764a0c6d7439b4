// Package schedule implements the relational joins and temporal filters that
// turn static GTFS tables into the set of scheduled departures matching a
// query. All date and time comparisons are lexical over zero-padded strings
// (YYYYMMDD and HH:mm:ss), which is valid because values stay inside a single
// representable range.
package schedule

import (
	"time"

	"github.com/nawal-0/BusParser/internal/gtfs"
)

// Departure is a scheduled departure from the station, produced by joining
// routes, trips and stop_times and filtering by calendar validity.
type Departure struct {
	RouteShortName string
	RouteLongName  string
	ServiceID      string
	TripID         string
	Headsign       string
	// ArrivalTime is the scheduled arrival at the station (HH:mm:ss),
	// attached by JoinStopTime.
	ArrivalTime string
}

// JoinRouteTrip inner-joins trips against routes on route_id, with trips as
// the probe side. Trips whose route_id has no matching route are dropped, so
// the output never exceeds len(trips). On duplicate route_ids the first route
// in source order wins.
func JoinRouteTrip(routes []gtfs.RouteRecord, trips []gtfs.TripRecord) []Departure {
	byRouteID := make(map[string]gtfs.RouteRecord, len(routes))
	for _, r := range routes {
		if _, ok := byRouteID[r.RouteID]; !ok {
			byRouteID[r.RouteID] = r
		}
	}

	deps := make([]Departure, 0, len(trips))
	for _, t := range trips {
		r, ok := byRouteID[t.RouteID]
		if !ok {
			continue
		}
		deps = append(deps, Departure{
			RouteShortName: r.ShortName,
			RouteLongName:  r.LongName,
			ServiceID:      t.ServiceID,
			TripID:         t.TripID,
			Headsign:       t.Headsign,
		})
	}
	return deps
}

// FilterByCalendar keeps a departure iff some calendar record shares its
// service_id, marks weekday as active and has date within
// [StartDate, EndDate] inclusive. date is YYYYMMDD. Departures matching no
// calendar record are silently dropped.
func FilterByCalendar(deps []Departure, calendar []gtfs.CalendarRecord, date string, weekday time.Weekday) []Departure {
	out := make([]Departure, 0, len(deps))
	for _, d := range deps {
		for _, c := range calendar {
			if c.ServiceID != d.ServiceID {
				continue
			}
			if !c.Weekdays[weekday] {
				continue
			}
			if date < c.StartDate || date > c.EndDate {
				continue
			}
			out = append(out, d)
			break
		}
	}
	return out
}

// JoinStopTime joins the station stop-time rows against departures on
// trip_id, keeping rows whose arrival falls in [windowStart, windowEnd]
// inclusive. Stop-times are the probe side: a trip with several qualifying
// stop-time rows yields one output row per stop-time, so duplicates are
// possible and expected. The first departure sharing a trip_id wins.
func JoinStopTime(deps []Departure, stopTimes []gtfs.StopTimeRecord, windowStart, windowEnd string) []Departure {
	out := make([]Departure, 0, len(stopTimes))
	for _, st := range stopTimes {
		if st.ArrivalTime < windowStart || st.ArrivalTime > windowEnd {
			continue
		}
		for _, d := range deps {
			if d.TripID != st.TripID {
				continue
			}
			d.ArrivalTime = st.ArrivalTime
			out = append(out, d)
			break
		}
	}
	return out
}
