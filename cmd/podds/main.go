package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"

	"github.com/richard-senior/podds/internal/config"
	"github.com/richard-senior/podds/internal/logger"
	"github.com/richard-senior/podds/pkg/podds"
	"github.com/richard-senior/podds/pkg/server"
	"github.com/richard-senior/podds/pkg/source"
	"github.com/richard-senior/podds/pkg/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	serve := flag.Bool("serve", false, "start the HTTP API")
	refresh := flag.Bool("refresh", false, "refresh league data before anything else")
	league := flag.Int("league", 0, "league id for a one-off prediction")
	season := flag.String("season", "", "season for a one-off prediction, e.g. 2025/2026")
	home := flag.String("home", "", "home team id for a one-off prediction")
	away := flag.String("away", "", "away team id for a one-off prediction")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("Could not load configuration", err)
		}
		cfg = loaded
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Could not open database", err)
	}
	defer st.Close()

	if *refresh {
		ds := source.New(cfg.Source.ResultsURL, cfg.Source.CacheDir, st)
		for _, leagueID := range cfg.Source.Leagues {
			if err := ds.Refresh(leagueID, cfg.Source.Season); err != nil {
				logger.Error("Refresh failed for league", leagueID, err)
			}
		}
	}

	switch {
	case *serve:
		handler := server.NewAPIHandler(st, cfg.Server.Pin, cfg.Source.FormMatches)
		logger.Info("Listening on", cfg.Server.Addr)
		if err := http.ListenAndServe(cfg.Server.Addr, handler.SetupRoutes()); err != nil {
			logger.Fatal("Server stopped", err)
		}
	case *home != "" && *away != "":
		if *league == 0 || *season == "" {
			logger.Fatal("A one-off prediction needs -league and -season")
		}
		input, err := st.BuildPredictionInput(*league, *season, *home, *away, cfg.Source.FormMatches)
		if err != nil {
			logger.Fatal("Could not assemble prediction input", err)
		}
		result := podds.Predict(input)
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			logger.Fatal("Could not encode result", err)
		}
	case !*refresh:
		flag.Usage()
	}
}
