package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richard-senior/podds/internal/logger"
	"github.com/richard-senior/podds/pkg/store"
	"github.com/richard-senior/podds/pkg/transport"
)

// Datasource loads league results pages, caches the raw HTML on disk and
// writes the parsed fixtures into the store. Everything downstream of the
// store (the prediction engine included) never sees this layer.
type Datasource struct {
	// ResultsURL is a template with verbs for league id and season slug,
	// e.g. "https://example.com/league/%d/results/%s"
	ResultsURL string
	CacheDir   string

	store *store.Store
}

// New creates a datasource writing into st
func New(resultsURL, cacheDir string, st *store.Store) *Datasource {
	return &Datasource{
		ResultsURL: resultsURL,
		CacheDir:   cacheDir,
		store:      st,
	}
}

// Refresh loads one league-season: fetch (or reuse cached) results page,
// parse the fixtures, persist them and rebuild the derived statistics
func (d *Datasource) Refresh(leagueID int, season string) error {
	html, err := d.fetch(leagueID, season)
	if err != nil {
		return err
	}

	matches, err := ParseResults(html, leagueID, season)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		logger.Warn("No fixtures parsed for league", leagueID, "season", season)
		return nil
	}

	objects := make([]store.Persistable, 0, len(matches))
	for _, match := range matches {
		objects = append(objects, match)
	}
	if err := d.store.BulkSave(objects); err != nil {
		return fmt.Errorf("failed to persist fixtures: %w", err)
	}

	logger.Info("Loaded fixtures for league", leagueID, "season", season, "count", len(matches))
	return d.store.RecalculateStats(leagueID, season)
}

// fetch returns the results page, preferring the disk cache. Completed
// seasons never change, so a cache hit skips the network entirely.
func (d *Datasource) fetch(leagueID int, season string) ([]byte, error) {
	safeSeason := strings.ReplaceAll(season, "/", "-")
	cacheFile := filepath.Join(d.CacheDir, fmt.Sprintf("results-%d-%s.html", leagueID, safeSeason))

	if data, err := os.ReadFile(cacheFile); err == nil {
		logger.Debug("Loaded results from cache", cacheFile)
		return data, nil
	}

	url := fmt.Sprintf(d.ResultsURL, leagueID, safeSeason)
	data, err := transport.Get(url)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(d.CacheDir, 0755); err == nil {
		if err := os.WriteFile(cacheFile, data, 0644); err != nil {
			logger.Warn("Failed to write results cache", cacheFile, err)
		}
	}

	return data, nil
}
