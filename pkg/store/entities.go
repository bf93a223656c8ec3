package store

import (
	"time"

	"github.com/richard-senior/podds/pkg/podds"
)

// Compile-time checks that every record implements Persistable
var (
	_ Persistable = (*League)(nil)
	_ Persistable = (*Team)(nil)
	_ Persistable = (*TeamStats)(nil)
	_ Persistable = (*MatchResult)(nil)
)

// League is one league-season with its rolling scoring norms. The averages
// are what the engine consumes as its LeagueBaseline.
type League struct {
	ID     int    `json:"id" column:"id" dbtype:"INTEGER NOT NULL" primary:"true" index:"true"`
	Season string `json:"season" column:"season" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Name   string `json:"name" column:"name" dbtype:"TEXT NOT NULL"`

	AvgHomeGoals float64 `json:"avgHomeGoals" column:"avg_home_goals" dbtype:"REAL DEFAULT 0.0"`
	AvgAwayGoals float64 `json:"avgAwayGoals" column:"avg_away_goals" dbtype:"REAL DEFAULT 0.0"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

func (l *League) TableName() string { return "leagues" }

func (l *League) PrimaryKey() map[string]any {
	return map[string]any{"id": l.ID, "season": l.Season}
}

func (l *League) BeforeSave() error {
	touch(&l.CreatedAt, &l.UpdatedAt)
	return nil
}

// Baseline converts the league row into the engine's baseline record
func (l *League) Baseline() *podds.LeagueBaseline {
	return &podds.LeagueBaseline{
		AvgHomeGoals: l.AvgHomeGoals,
		AvgAwayGoals: l.AvgAwayGoals,
	}
}

// Team is a club within a league
type Team struct {
	ID        string    `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`
	Name      string    `json:"name" column:"name" dbtype:"TEXT NOT NULL" index:"true"`
	ShortName string    `json:"shortName" column:"short_name" dbtype:"TEXT NOT NULL"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

func (t *Team) TableName() string { return "teams" }

func (t *Team) PrimaryKey() map[string]any {
	return map[string]any{"id": t.ID}
}

func (t *Team) BeforeSave() error {
	touch(&t.CreatedAt, &t.UpdatedAt)
	return nil
}

// TeamStats is a team's cumulative season record with home/away splits,
// the persisted source of the engine's TeamSeasonStats
type TeamStats struct {
	TeamID   string `json:"teamId" column:"team_id" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Season   string `json:"season" column:"season" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	LeagueID int    `json:"leagueId" column:"league_id" dbtype:"INTEGER NOT NULL" primary:"true" index:"true"`

	TeamName string `json:"teamName" column:"team_name" dbtype:"TEXT DEFAULT ''"`

	HomeGamesPlayed  int `json:"homeGamesPlayed" column:"home_games_played" dbtype:"INTEGER DEFAULT 0"`
	HomeGoalsFor     int `json:"homeGoalsFor" column:"home_goals_for" dbtype:"INTEGER DEFAULT 0"`
	HomeGoalsAgainst int `json:"homeGoalsAgainst" column:"home_goals_against" dbtype:"INTEGER DEFAULT 0"`
	AwayGamesPlayed  int `json:"awayGamesPlayed" column:"away_games_played" dbtype:"INTEGER DEFAULT 0"`
	AwayGoalsFor     int `json:"awayGoalsFor" column:"away_goals_for" dbtype:"INTEGER DEFAULT 0"`
	AwayGoalsAgainst int `json:"awayGoalsAgainst" column:"away_goals_against" dbtype:"INTEGER DEFAULT 0"`

	Points int `json:"points" column:"points" dbtype:"INTEGER DEFAULT 0"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

func (ts *TeamStats) TableName() string { return "team_stats" }

func (ts *TeamStats) PrimaryKey() map[string]any {
	return map[string]any{
		"team_id":   ts.TeamID,
		"season":    ts.Season,
		"league_id": ts.LeagueID,
	}
}

func (ts *TeamStats) BeforeSave() error {
	touch(&ts.CreatedAt, &ts.UpdatedAt)
	return nil
}

// SeasonStats converts the stats row into the engine's season record
func (ts *TeamStats) SeasonStats() *podds.TeamSeasonStats {
	return &podds.TeamSeasonStats{
		TeamID:           ts.TeamID,
		TeamName:         ts.TeamName,
		HomeGoalsFor:     ts.HomeGoalsFor,
		HomeGoalsAgainst: ts.HomeGoalsAgainst,
		HomeGamesPlayed:  ts.HomeGamesPlayed,
		AwayGoalsFor:     ts.AwayGoalsFor,
		AwayGoalsAgainst: ts.AwayGoalsAgainst,
		AwayGamesPlayed:  ts.AwayGamesPlayed,
	}
}

// MatchResult is one fixture. Unplayed fixtures keep goals at -1, the same
// sentinel the scrape layer writes for scheduled matches.
type MatchResult struct {
	ID       string `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`
	LeagueID int    `json:"leagueId" column:"league_id" dbtype:"INTEGER DEFAULT -1" index:"true"`
	Season   string `json:"season" column:"season" dbtype:"TEXT" index:"true"`

	// Ordinal within the season, ascending = more recent
	MatchNumber int `json:"matchNumber" column:"match_number" dbtype:"INTEGER DEFAULT 0" index:"true"`

	HomeID       string `json:"homeId" column:"home_id" dbtype:"TEXT NOT NULL" index:"true"`
	AwayID       string `json:"awayId" column:"away_id" dbtype:"TEXT NOT NULL" index:"true"`
	HomeTeamName string `json:"homeTeamName" column:"home_team_name" dbtype:"TEXT DEFAULT ''"`
	AwayTeamName string `json:"awayTeamName" column:"away_team_name" dbtype:"TEXT DEFAULT ''"`

	HomeGoals int `json:"homeGoals" column:"home_goals" dbtype:"INTEGER DEFAULT -1"`
	AwayGoals int `json:"awayGoals" column:"away_goals" dbtype:"INTEGER DEFAULT -1"`

	UTCTime   time.Time `json:"utcTime" column:"utc_time" dbtype:"DATETIME" index:"true"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

func (m *MatchResult) TableName() string { return "match_results" }

func (m *MatchResult) PrimaryKey() map[string]any {
	return map[string]any{"id": m.ID}
}

func (m *MatchResult) BeforeSave() error {
	touch(&m.CreatedAt, &m.UpdatedAt)
	return nil
}

// HasBeenPlayed reports whether a final score is recorded
func (m *MatchResult) HasBeenPlayed() bool {
	return m.HomeGoals >= 0 && m.AwayGoals >= 0
}

// touch sets created on first save and refreshes updated
func touch(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
