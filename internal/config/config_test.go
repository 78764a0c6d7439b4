package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `station:
  name: UQ Lakes
  stop_ids: ["1853", "1878"]
gtfs:
  dir: data
realtime:
  tripUpdatesURL: https://example.com/TripUpdates.json
  vehiclePositionsURL: https://example.com/VehiclePositions.json
routes: ["66", "192"]
timezone: Australia/Brisbane
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Station.Name != "UQ Lakes" || len(cfg.Station.StopIDs) != 2 {
		t.Errorf("station not loaded: %+v", cfg.Station)
	}
	if cfg.Realtime.CacheDir != "cache" {
		t.Errorf("expected default cache dir, got %q", cfg.Realtime.CacheDir)
	}
	if len(cfg.Routes) != 2 {
		t.Errorf("routes not loaded: %v", cfg.Routes)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing stop ids",
			content: `station:
  name: UQ Lakes
gtfs:
  dir: data
realtime:
  tripUpdatesURL: https://example.com/tu
  vehiclePositionsURL: https://example.com/vp
routes: ["66"]
`,
		},
		{
			name: "feed URL not a URL",
			content: `station:
  name: UQ Lakes
  stop_ids: ["1853"]
gtfs:
  dir: data
realtime:
  tripUpdatesURL: not-a-url
  vehiclePositionsURL: https://example.com/vp
routes: ["66"]
`,
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GTFS_DIR", "/elsewhere")
	t.Setenv("TRIP_UPDATES_URL", "https://override.example.com/tu")

	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GTFS.Dir != "/elsewhere" {
		t.Errorf("GTFS_DIR override not applied: %q", cfg.GTFS.Dir)
	}
	if cfg.Realtime.TripUpdatesURL != "https://override.example.com/tu" {
		t.Errorf("TRIP_UPDATES_URL override not applied: %q", cfg.Realtime.TripUpdatesURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
