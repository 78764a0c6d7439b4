package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nawal-0/BusParser/internal/board"
	"github.com/nawal-0/BusParser/internal/cli"
	"github.com/nawal-0/BusParser/internal/config"
	"github.com/nawal-0/BusParser/internal/gtfs"
	"github.com/nawal-0/BusParser/internal/realtime"
)

var CLI struct {
	Config string `help:"Path to config file" default:"config.yml" type:"path"`
	Debug  bool   `help:"Enable debug logging"`
}

func main() {
	kong.Parse(&CLI)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	if CLI.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	// .env overrides are optional.
	_ = godotenv.Load()

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.WithError(err).Fatal("invalid timezone")
		}
	}

	store := gtfs.NewStore(cfg.GTFS.Dir, cfg.Station.StopIDs)
	cache := realtime.NewCache(
		cfg.Realtime.CacheDir,
		realtime.NewClient(),
		cfg.Realtime.TripUpdatesURL,
		cfg.Realtime.VehiclePositionsURL,
		cfg.Station.StopIDs,
		logger,
	)
	departures := board.New(store, cache, cfg.Station.StopIDs, loc, logger)

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	logger.WithFields(logrus.Fields{
		"station": cfg.Station.Name,
		"routes":  cfg.Routes,
	}).Info("starting busparser")

	for {
		date, ok := prompter.Date()
		if !ok {
			return
		}
		depart, ok := prompter.Time()
		if !ok {
			return
		}
		routeFilter, ok := prompter.Route(cfg.Routes)
		if !ok {
			return
		}

		rows, err := departures.Departures(board.Query{
			Date:        date,
			DepartTime:  depart,
			RouteFilter: routeFilter,
		})
		if err != nil {
			logger.WithError(err).Fatal("query failed")
		}

		cli.RenderRows(os.Stdout, rows)

		again, ok := prompter.Again()
		if !ok || !again {
			return
		}
	}
}
