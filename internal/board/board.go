// Package board orchestrates one departure-board query: static schedule
// joins, live feed freshness, live data merge, and final ordering.
package board

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nawal-0/BusParser/internal/gtfs"
	"github.com/nawal-0/BusParser/internal/realtime"
	"github.com/nawal-0/BusParser/internal/schedule"
)

// Query is one set of already-validated user inputs.
type Query struct {
	// Date is the requested service date.
	Date time.Time
	// DepartTime is the earliest departure of interest, "HH:mm" 24-hour.
	// The query window extends ten minutes past it.
	DepartTime string
	// RouteFilter selects routes by short name; nil keeps all routes.
	RouteFilter func(shortName string) bool
}

// Board runs departure queries against a schedule store and a live feed
// cache. It owns no I/O beyond delegating to its collaborators.
type Board struct {
	store        *gtfs.Store
	cache        *realtime.Cache
	stationStops map[string]struct{}
	loc          *time.Location
	logger       *logrus.Logger
}

// New creates a Board. loc localizes live departure timestamps for display.
func New(store *gtfs.Store, cache *realtime.Cache, stationStops []string, loc *time.Location, logger *logrus.Logger) *Board {
	stops := make(map[string]struct{}, len(stationStops))
	for _, id := range stationStops {
		stops[id] = struct{}{}
	}
	return &Board{store: store, cache: cache, stationStops: stops, loc: loc, logger: logger}
}

// Departures answers one query: joins the static tables, ensures the live
// feeds are fresh, merges live times then positions, and returns the rows
// sorted ascending by scheduled arrival time (stable for equal times).
func (b *Board) Departures(q Query) ([]Row, error) {
	routes, err := b.store.Routes(q.RouteFilter)
	if err != nil {
		return nil, err
	}
	trips, err := b.store.Trips()
	if err != nil {
		return nil, err
	}
	calendar, err := b.store.Calendar()
	if err != nil {
		return nil, err
	}
	stopTimes, err := b.store.StopTimes()
	if err != nil {
		return nil, err
	}

	deps := schedule.JoinRouteTrip(routes, trips)
	deps = schedule.FilterByCalendar(deps, calendar, q.Date.Format("20060102"), q.Date.Weekday())
	start, end := schedule.Window(q.DepartTime)
	deps = schedule.JoinStopTime(deps, stopTimes, start, end)

	feeds, refreshed, err := b.cache.EnsureFresh()
	if err != nil {
		return nil, err
	}
	b.logger.WithField("refreshed", refreshed).Debug("live feeds ready")

	rows := MergeLiveTimes(deps, feeds.TripUpdates, b.stationStops, b.loc)
	rows = MergeLivePositions(rows, feeds.VehiclePositions)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ArrivalTime < rows[j].ArrivalTime
	})
	return rows, nil
}
