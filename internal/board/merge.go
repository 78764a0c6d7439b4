package board

import (
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/nawal-0/BusParser/internal/schedule"
)

// NoLiveData marks a departure with no matching live feed entity.
const NoLiveData = "No Live Data"

// Row is one final result row: a scheduled departure enriched with live data.
type Row struct {
	schedule.Departure
	// LiveArrivalTime is the predicted departure at the station as a
	// localized 24-hour clock string, or NoLiveData.
	LiveArrivalTime string
	// LivePosition is the vehicle's "lat, lon", or NoLiveData.
	LivePosition string
}

// MergeLiveTimes left-joins trip-update entities onto departures by trip_id.
// Every input departure appears exactly once in the output. Within a matched
// entity the first stop-time update at a station stop carrying a departure
// timestamp wins; entity order is whatever the upstream feed provided.
func MergeLiveTimes(deps []schedule.Departure, tripUpdates *gtfsrtpb.FeedMessage, stationStops map[string]struct{}, loc *time.Location) []Row {
	rows := make([]Row, 0, len(deps))
	for _, d := range deps {
		row := Row{Departure: d, LiveArrivalTime: NoLiveData}
		if t := liveDepartureTime(tripUpdates, d.TripID, stationStops); t > 0 {
			row.LiveArrivalTime = time.Unix(t, 0).In(loc).Format("15:04:05")
		}
		rows = append(rows, row)
	}
	return rows
}

func liveDepartureTime(tripUpdates *gtfsrtpb.FeedMessage, tripID string, stationStops map[string]struct{}) int64 {
	for _, e := range tripUpdates.GetEntity() {
		tu := e.GetTripUpdate()
		if tu.GetTrip().GetTripId() != tripID {
			continue
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			if _, ok := stationStops[stu.GetStopId()]; !ok {
				continue
			}
			if t := stu.GetDeparture().GetTime(); t > 0 {
				return t
			}
		}
		// First matching entity wins, enriched or not.
		return 0
	}
	return 0
}

// MergeLivePositions left-joins vehicle-position entities onto rows by
// trip_id, first match wins. Row count is preserved.
func MergeLivePositions(rows []Row, vehiclePositions *gtfsrtpb.FeedMessage) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		row.LivePosition = NoLiveData
		if pos := livePosition(vehiclePositions, row.TripID); pos != nil {
			row.LivePosition = fmt.Sprintf("%.5f, %.5f", pos.GetLatitude(), pos.GetLongitude())
		}
		out = append(out, row)
	}
	return out
}

func livePosition(vehiclePositions *gtfsrtpb.FeedMessage, tripID string) *gtfsrtpb.Position {
	for _, e := range vehiclePositions.GetEntity() {
		v := e.GetVehicle()
		if v.GetTrip().GetTripId() != tripID {
			continue
		}
		return v.GetPosition()
	}
	return nil
}
