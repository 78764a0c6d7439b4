package realtime

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/sirupsen/logrus"
)

const (
	// staleAfterSeconds is the staleness window: cached live data older than
	// this (measured against the vehicle-position header timestamp) is
	// refetched.
	staleAfterSeconds = 300

	tripUpdatesFile      = "trip-updates.json"
	vehiclePositionsFile = "vehicle-positions.json"
)

// Feeds holds one decoded snapshot of each live feed.
type Feeds struct {
	TripUpdates      *gtfsrtpb.FeedMessage
	VehiclePositions *gtfsrtpb.FeedMessage
}

// Cache supplies fresh live feed snapshots for a query, fetching from the
// upstream endpoints only when the on-disk copies are missing or stale.
type Cache struct {
	dir                 string
	client              *Client
	tripUpdatesURL      string
	vehiclePositionsURL string
	stationStops        map[string]struct{}
	logger              *logrus.Logger

	// now is swappable for staleness tests.
	now func() time.Time
}

// NewCache creates a live feed cache writing under dir. Trip-update entities
// are filtered to those touching one of the station stop IDs before caching.
func NewCache(dir string, client *Client, tripUpdatesURL, vehiclePositionsURL string, stationStops []string, logger *logrus.Logger) *Cache {
	stops := make(map[string]struct{}, len(stationStops))
	for _, id := range stationStops {
		stops[id] = struct{}{}
	}
	return &Cache{
		dir:                 dir,
		client:              client,
		tripUpdatesURL:      tripUpdatesURL,
		vehiclePositionsURL: vehiclePositionsURL,
		stationStops:        stops,
		logger:              logger,
		now:                 time.Now,
	}
}

// EnsureFresh returns live feed snapshots no older than the staleness window.
// refreshed reports whether a network fetch happened. Both cache files must
// exist for the cached copies to be considered; a decode error on either file
// is fatal to the query. Fetch errors propagate: a query either gets live
// data or fails as a whole.
func (c *Cache) EnsureFresh() (Feeds, bool, error) {
	tuPath := filepath.Join(c.dir, tripUpdatesFile)
	vpPath := filepath.Join(c.dir, vehiclePositionsFile)

	if fileExists(tuPath) && fileExists(vpPath) {
		feeds, err := c.readCached(tuPath, vpPath)
		if err != nil {
			return Feeds{}, false, err
		}
		if !c.stale(feeds.VehiclePositions) {
			return feeds, false, nil
		}
	}

	feeds, err := c.fetchAndPersist(tuPath, vpPath)
	if err != nil {
		return Feeds{}, false, err
	}
	return feeds, true, nil
}

// stale reports whether the snapshot's header timestamp is at least the
// staleness window behind the current time.
func (c *Cache) stale(vp *gtfsrtpb.FeedMessage) bool {
	fetchedAt := int64(vp.GetHeader().GetTimestamp())
	return c.now().Unix()-fetchedAt >= staleAfterSeconds
}

func (c *Cache) readCached(tuPath, vpPath string) (Feeds, error) {
	tuData, err := os.ReadFile(tuPath)
	if err != nil {
		return Feeds{}, fmt.Errorf("reading cached trip updates: %w", err)
	}
	tu, err := DecodeFeed(tuData)
	if err != nil {
		return Feeds{}, fmt.Errorf("cached trip updates: %w", err)
	}

	vpData, err := os.ReadFile(vpPath)
	if err != nil {
		return Feeds{}, fmt.Errorf("reading cached vehicle positions: %w", err)
	}
	vp, err := DecodeFeed(vpData)
	if err != nil {
		return Feeds{}, fmt.Errorf("cached vehicle positions: %w", err)
	}

	return Feeds{TripUpdates: tu, VehiclePositions: vp}, nil
}

func (c *Cache) fetchAndPersist(tuPath, vpPath string) (Feeds, error) {
	tuData, err := c.client.Fetch(c.tripUpdatesURL)
	if err != nil {
		return Feeds{}, fmt.Errorf("trip updates: %w", err)
	}
	tu, err := DecodeFeed(tuData)
	if err != nil {
		return Feeds{}, fmt.Errorf("trip updates: %w", err)
	}
	tu = c.filterTripUpdates(tu)

	vpData, err := c.client.Fetch(c.vehiclePositionsURL)
	if err != nil {
		return Feeds{}, fmt.Errorf("vehicle positions: %w", err)
	}
	vp, err := DecodeFeed(vpData)
	if err != nil {
		return Feeds{}, fmt.Errorf("vehicle positions: %w", err)
	}

	// Writes are fire-and-forget: a failure is logged and the in-memory
	// snapshots are returned regardless. The vehicle-position payload is
	// persisted verbatim; trip updates are re-encoded after filtering.
	if filtered, err := EncodeFeed(tu); err != nil {
		c.logger.WithError(err).Warn("failed to encode trip updates for cache")
	} else {
		c.persist(tuPath, filtered)
	}
	c.persist(vpPath, vpData)

	return Feeds{TripUpdates: tu, VehiclePositions: vp}, nil
}

// filterTripUpdates keeps only entities whose stop-time updates include a
// station stop.
func (c *Cache) filterTripUpdates(fm *gtfsrtpb.FeedMessage) *gtfsrtpb.FeedMessage {
	kept := make([]*gtfsrtpb.FeedEntity, 0, len(fm.GetEntity()))
	for _, e := range fm.GetEntity() {
		for _, stu := range e.GetTripUpdate().GetStopTimeUpdate() {
			if _, ok := c.stationStops[stu.GetStopId()]; ok {
				kept = append(kept, e)
				break
			}
		}
	}
	return &gtfsrtpb.FeedMessage{Header: fm.GetHeader(), Entity: kept}
}

func (c *Cache) persist(path string, data []byte) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("failed to create cache directory")
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("failed to write live feed cache")
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
