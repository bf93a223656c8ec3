package store

import (
	"fmt"

	"github.com/richard-senior/podds/internal/logger"
	"github.com/richard-senior/podds/pkg/podds"
)

// Baseline loads the league-season scoring norms
func (s *Store) Baseline(leagueID int, season string) (*podds.LeagueBaseline, error) {
	league := &League{}
	pk := map[string]any{"id": leagueID, "season": season}
	if err := s.FindByPrimaryKey(league, pk); err != nil {
		return nil, fmt.Errorf("no baseline for league %d season %s: %w", leagueID, season, err)
	}
	return league.Baseline(), nil
}

// SeasonStats loads a team's season record
func (s *Store) SeasonStats(teamID string, leagueID int, season string) (*podds.TeamSeasonStats, error) {
	stats := &TeamStats{}
	pk := map[string]any{"team_id": teamID, "league_id": leagueID, "season": season}
	if err := s.FindByPrimaryKey(stats, pk); err != nil {
		return nil, fmt.Errorf("no season stats for team %s in league %d season %s: %w",
			teamID, leagueID, season, err)
	}
	return stats.SeasonStats(), nil
}

// RecentForm builds a team's last-N form samples from its played matches,
// ordered ascending so the regression's independent variable runs oldest
// to newest. A team with no played matches yields an empty history, which
// the engine treats as neutral form.
func (s *Store) RecentForm(teamID string, leagueID int, season string, limit int) ([]podds.MatchHistoryEntry, error) {
	clause := `league_id = ? AND season = ?
		AND (home_id = ? OR away_id = ?)
		AND home_goals >= 0 AND away_goals >= 0
		ORDER BY match_number DESC LIMIT ?`

	rows, err := s.FindWhere(&MatchResult{}, clause, leagueID, season, teamID, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent matches for team %s: %w", teamID, err)
	}

	// Rows arrive newest first; walk backwards so the entries ascend
	history := make([]podds.MatchHistoryEntry, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		match, ok := rows[i].(*MatchResult)
		if !ok {
			return nil, fmt.Errorf("unexpected type in match results for team %s", teamID)
		}

		entry := podds.MatchHistoryEntry{
			MatchNumber: len(history) + 1,
			WasHome:     match.HomeID == teamID,
		}
		if entry.WasHome {
			entry.GoalsScored = match.HomeGoals
			entry.GoalsConceded = match.AwayGoals
		} else {
			entry.GoalsScored = match.AwayGoals
			entry.GoalsConceded = match.HomeGoals
		}
		switch {
		case entry.GoalsScored > entry.GoalsConceded:
			entry.Points = 3
		case entry.GoalsScored == entry.GoalsConceded:
			entry.Points = 1
		}
		history = append(history, entry)
	}

	return history, nil
}

// BuildPredictionInput assembles the fully-resolved engine input for one
// fixture: baseline, both season records and both form histories
func (s *Store) BuildPredictionInput(leagueID int, season, homeID, awayID string, formMatches int) (*podds.PredictionInput, error) {
	baseline, err := s.Baseline(leagueID, season)
	if err != nil {
		return nil, err
	}

	homeStats, err := s.SeasonStats(homeID, leagueID, season)
	if err != nil {
		return nil, err
	}
	awayStats, err := s.SeasonStats(awayID, leagueID, season)
	if err != nil {
		return nil, err
	}

	homeHistory, err := s.RecentForm(homeID, leagueID, season, formMatches)
	if err != nil {
		return nil, err
	}
	awayHistory, err := s.RecentForm(awayID, leagueID, season, formMatches)
	if err != nil {
		return nil, err
	}

	return &podds.PredictionInput{
		Baseline:    baseline,
		HomeStats:   homeStats,
		AwayStats:   awayStats,
		HomeHistory: homeHistory,
		AwayHistory: awayHistory,
	}, nil
}

// RecalculateStats rebuilds every team's cumulative season record and the
// league's scoring averages from the played matches on file. Called after
// each data refresh so the engine always sees current numbers.
func (s *Store) RecalculateStats(leagueID int, season string) error {
	clause := "league_id = ? AND season = ? AND home_goals >= 0 AND away_goals >= 0 ORDER BY match_number ASC"
	rows, err := s.FindWhere(&MatchResult{}, clause, leagueID, season)
	if err != nil {
		return err
	}

	statsByTeam := map[string]*TeamStats{}
	lookup := func(teamID, teamName string) *TeamStats {
		stats, ok := statsByTeam[teamID]
		if !ok {
			stats = &TeamStats{TeamID: teamID, Season: season, LeagueID: leagueID, TeamName: teamName}
			statsByTeam[teamID] = stats
		}
		return stats
	}

	var homeGoals, awayGoals, played int
	for _, row := range rows {
		match, ok := row.(*MatchResult)
		if !ok {
			continue
		}

		home := lookup(match.HomeID, match.HomeTeamName)
		away := lookup(match.AwayID, match.AwayTeamName)

		home.HomeGamesPlayed++
		home.HomeGoalsFor += match.HomeGoals
		home.HomeGoalsAgainst += match.AwayGoals
		away.AwayGamesPlayed++
		away.AwayGoalsFor += match.AwayGoals
		away.AwayGoalsAgainst += match.HomeGoals

		switch {
		case match.HomeGoals > match.AwayGoals:
			home.Points += 3
		case match.HomeGoals < match.AwayGoals:
			away.Points += 3
		default:
			home.Points++
			away.Points++
		}

		homeGoals += match.HomeGoals
		awayGoals += match.AwayGoals
		played++
	}

	if played == 0 {
		logger.Warn("No played matches for league", leagueID, "season", season)
		return nil
	}

	objects := make([]Persistable, 0, len(statsByTeam)+1)
	for _, stats := range statsByTeam {
		objects = append(objects, stats)
	}

	league := &League{ID: leagueID, Season: season}
	if err := s.FindByPrimaryKey(league, league.PrimaryKey()); err != nil {
		logger.Debug("Creating league row for", leagueID, season)
	}
	league.AvgHomeGoals = float64(homeGoals) / float64(played)
	league.AvgAwayGoals = float64(awayGoals) / float64(played)
	objects = append(objects, league)

	if err := s.BulkSave(objects); err != nil {
		return err
	}

	logger.Info("Recalculated stats for league", leagueID, "season", season,
		"teams", len(statsByTeam), "matches", played)
	return nil
}
