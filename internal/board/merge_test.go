package board

import (
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/nawal-0/BusParser/internal/schedule"
)

var stationStops = map[string]struct{}{"1853": {}, "1878": {}}

func tripUpdateEntity(id, tripID, stopID string, departure int64) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String(tripID)},
			StopTimeUpdate: []*gtfsrtpb.TripUpdate_StopTimeUpdate{
				{
					StopId:    proto.String(stopID),
					Departure: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(departure)},
				},
			},
		},
	}
}

func vehicleEntity(id, tripID string, lat, lon float32) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		Vehicle: &gtfsrtpb.VehiclePosition{
			Trip:     &gtfsrtpb.TripDescriptor{TripId: proto.String(tripID)},
			Position: &gtfsrtpb.Position{Latitude: proto.Float32(lat), Longitude: proto.Float32(lon)},
		},
	}
}

func TestMergeLiveTimes(t *testing.T) {
	deps := []schedule.Departure{
		{TripID: "T1", ArrivalTime: "08:05:00"},
		{TripID: "T2", ArrivalTime: "08:07:00"},
		{TripID: "T3", ArrivalTime: "08:09:00"},
	}
	// 1700000000 = 2023-11-14 22:13:20 UTC
	tu := &gtfsrtpb.FeedMessage{
		Entity: []*gtfsrtpb.FeedEntity{
			tripUpdateEntity("1", "T1", "1853", 1700000000),
			// T2 is reported, but only at a non-station stop.
			tripUpdateEntity("2", "T2", "9999", 1700000000),
		},
	}

	rows := MergeLiveTimes(deps, tu, stationStops, time.UTC)

	if len(rows) != len(deps) {
		t.Fatalf("left join must preserve row count: got %d, want %d", len(rows), len(deps))
	}
	if rows[0].LiveArrivalTime != "22:13:20" {
		t.Errorf("T1 live time = %q, want 22:13:20", rows[0].LiveArrivalTime)
	}
	if rows[1].LiveArrivalTime != NoLiveData {
		t.Errorf("T2 (no station stop update) live time = %q, want sentinel", rows[1].LiveArrivalTime)
	}
	if rows[2].LiveArrivalTime != NoLiveData {
		t.Errorf("T3 (unmatched) live time = %q, want sentinel", rows[2].LiveArrivalTime)
	}
}

func TestMergeLiveTimes_FirstMatchWins(t *testing.T) {
	deps := []schedule.Departure{{TripID: "T1"}}
	tu := &gtfsrtpb.FeedMessage{
		Entity: []*gtfsrtpb.FeedEntity{
			tripUpdateEntity("1", "T1", "1853", 1700000000),
			tripUpdateEntity("2", "T1", "1853", 1700003600),
		},
	}

	rows := MergeLiveTimes(deps, tu, stationStops, time.UTC)
	if rows[0].LiveArrivalTime != "22:13:20" {
		t.Errorf("expected first entity in feed order to win, got %q", rows[0].LiveArrivalTime)
	}
}

func TestMergeLivePositions(t *testing.T) {
	rows := []Row{
		{Departure: schedule.Departure{TripID: "T1"}},
		{Departure: schedule.Departure{TripID: "T2"}},
	}
	vp := &gtfsrtpb.FeedMessage{
		Entity: []*gtfsrtpb.FeedEntity{
			vehicleEntity("v1", "T1", -27.497, 153.013),
			// A later duplicate for T1 must be ignored.
			vehicleEntity("v2", "T1", 0, 0),
		},
	}

	out := MergeLivePositions(rows, vp)

	if len(out) != len(rows) {
		t.Fatalf("left join must preserve row count: got %d, want %d", len(out), len(rows))
	}
	if out[0].LivePosition != "-27.49700, 153.01300" {
		t.Errorf("T1 position = %q", out[0].LivePosition)
	}
	if out[1].LivePosition != NoLiveData {
		t.Errorf("T2 position = %q, want sentinel", out[1].LivePosition)
	}
}

func TestMerge_EmptyFeedsKeepAllRows(t *testing.T) {
	deps := []schedule.Departure{{TripID: "T1"}, {TripID: "T2"}}

	rows := MergeLiveTimes(deps, &gtfsrtpb.FeedMessage{}, stationStops, time.UTC)
	rows = MergeLivePositions(rows, &gtfsrtpb.FeedMessage{})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.LiveArrivalTime != NoLiveData || r.LivePosition != NoLiveData {
			t.Errorf("expected sentinels on empty feeds, got %+v", r)
		}
	}
}
