package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// StationConfig identifies the target station and the stop IDs of its platforms.
type StationConfig struct {
	Name    string   `yaml:"name" validate:"required"`
	StopIDs []string `yaml:"stop_ids" validate:"required,min=1"`
}

// GTFSConfig locates the static GTFS tables on disk.
type GTFSConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

// RealtimeConfig holds the live feed endpoints and the cache location.
type RealtimeConfig struct {
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"required,url"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"required,url"`
	CacheDir            string `yaml:"cacheDir"`
}

// Config is the root application configuration.
type Config struct {
	Station  StationConfig  `yaml:"station"`
	GTFS     GTFSConfig     `yaml:"gtfs"`
	Realtime RealtimeConfig `yaml:"realtime"`
	// Routes offered at the route-selection prompt, by short name.
	Routes   []string `yaml:"routes" validate:"required,min=1"`
	Timezone string   `yaml:"timezone"`
}

// Load reads and validates the YAML configuration at path.
// Environment variables GTFS_DIR, TRIP_UPDATES_URL and VEHICLE_POSITIONS_URL
// override the corresponding file values when set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if v := os.Getenv("GTFS_DIR"); v != "" {
		cfg.GTFS.Dir = v
	}
	if v := os.Getenv("TRIP_UPDATES_URL"); v != "" {
		cfg.Realtime.TripUpdatesURL = v
	}
	if v := os.Getenv("VEHICLE_POSITIONS_URL"); v != "" {
		cfg.Realtime.VehiclePositionsURL = v
	}

	if cfg.Realtime.CacheDir == "" {
		cfg.Realtime.CacheDir = "cache"
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
