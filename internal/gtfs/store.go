package gtfs

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store holds the static schedule tables for the lifetime of a session.
// trips, calendar and stop_times are read from disk once and memoized;
// routes.txt is re-read on every Routes call because the route selection
// filter varies per query. Store is not safe for concurrent use; queries
// run strictly sequentially.
type Store struct {
	dir          string
	stationStops map[string]struct{}

	trips     []TripRecord
	calendar  []CalendarRecord
	stopTimes []StopTimeRecord

	tripsLoaded     bool
	calendarLoaded  bool
	stopTimesLoaded bool
}

// NewStore creates a schedule store reading GTFS tables from dir.
// stop_times.txt rows are kept only for the given station stop IDs.
func NewStore(dir string, stationStops []string) *Store {
	stops := make(map[string]struct{}, len(stationStops))
	for _, id := range stationStops {
		stops[id] = struct{}{}
	}
	return &Store{dir: dir, stationStops: stops}
}

// Routes reads routes.txt and returns the records whose short name passes
// keep. A nil keep returns every route.
func (s *Store) Routes(keep func(shortName string) bool) ([]RouteRecord, error) {
	rows, idx, err := s.readTable("routes.txt")
	if err != nil {
		return nil, err
	}
	rID := idx("route_id")
	rShort := idx("route_short_name")
	rLong := idx("route_long_name")
	if rID < 0 || rShort < 0 || rLong < 0 {
		return nil, fmt.Errorf("routes.txt: missing required columns")
	}

	var routes []RouteRecord
	for _, row := range rows {
		r := RouteRecord{RouteID: row[rID], ShortName: row[rShort], LongName: row[rLong]}
		if keep != nil && !keep(r.ShortName) {
			continue
		}
		routes = append(routes, r)
	}
	return routes, nil
}

// Trips returns the trips table, loading it on first use.
func (s *Store) Trips() ([]TripRecord, error) {
	if s.tripsLoaded {
		return s.trips, nil
	}
	rows, idx, err := s.readTable("trips.txt")
	if err != nil {
		return nil, err
	}
	tID := idx("trip_id")
	rID := idx("route_id")
	svc := idx("service_id")
	hs := idx("trip_headsign")
	if tID < 0 || rID < 0 || svc < 0 || hs < 0 {
		return nil, fmt.Errorf("trips.txt: missing required columns")
	}

	for _, row := range rows {
		s.trips = append(s.trips, TripRecord{
			TripID:    row[tID],
			RouteID:   row[rID],
			ServiceID: row[svc],
			Headsign:  row[hs],
		})
	}
	s.tripsLoaded = true
	return s.trips, nil
}

var weekdayColumns = [7]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// Calendar returns the calendar table, loading it on first use.
func (s *Store) Calendar() ([]CalendarRecord, error) {
	if s.calendarLoaded {
		return s.calendar, nil
	}
	rows, idx, err := s.readTable("calendar.txt")
	if err != nil {
		return nil, err
	}
	svc := idx("service_id")
	start := idx("start_date")
	end := idx("end_date")
	if svc < 0 || start < 0 || end < 0 {
		return nil, fmt.Errorf("calendar.txt: missing required columns")
	}
	var dayIdx [7]int
	for wd, col := range weekdayColumns {
		dayIdx[wd] = idx(col)
		if dayIdx[wd] < 0 {
			return nil, fmt.Errorf("calendar.txt: missing %s column", col)
		}
	}

	for _, row := range rows {
		rec := CalendarRecord{
			ServiceID: row[svc],
			StartDate: row[start],
			EndDate:   row[end],
		}
		for wd := range rec.Weekdays {
			rec.Weekdays[wd] = strings.TrimSpace(row[dayIdx[wd]]) == "1"
		}
		s.calendar = append(s.calendar, rec)
	}
	s.calendarLoaded = true
	return s.calendar, nil
}

// StopTimes returns the station-relevant stop_times rows, loading and
// filtering them on first use.
func (s *Store) StopTimes() ([]StopTimeRecord, error) {
	if s.stopTimesLoaded {
		return s.stopTimes, nil
	}
	rows, idx, err := s.readTable("stop_times.txt")
	if err != nil {
		return nil, err
	}
	tID := idx("trip_id")
	sID := idx("stop_id")
	arr := idx("arrival_time")
	if tID < 0 || sID < 0 || arr < 0 {
		return nil, fmt.Errorf("stop_times.txt: missing required columns")
	}

	for _, row := range rows {
		if _, ok := s.stationStops[row[sID]]; !ok {
			continue
		}
		s.stopTimes = append(s.stopTimes, StopTimeRecord{
			TripID:      row[tID],
			StopID:      row[sID],
			ArrivalTime: row[arr],
		})
	}
	s.stopTimesLoaded = true
	return s.stopTimes, nil
}

// readTable reads a CSV file and returns its data rows plus a header-index
// lookup over column names.
func (s *Store) readTable(name string) ([][]string, func(col string) int, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rec, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if len(rec) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", name)
	}

	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	return rec[1:], idx, nil
}
