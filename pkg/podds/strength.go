package podds

// LeagueBaseline holds the league-wide scoring norms used to de-trend raw
// team statistics. Supplied per prediction by the data layer.
type LeagueBaseline struct {
	AvgHomeGoals float64 `json:"avgHomeGoals"`
	AvgAwayGoals float64 `json:"avgAwayGoals"`
}

// TeamSeasonStats is a team's season scoring record. Home and away splits
// are tracked separately because home and away scoring rates differ
// systematically.
type TeamSeasonStats struct {
	TeamID   string `json:"teamId,omitempty"`
	TeamName string `json:"teamName,omitempty"`

	HomeGoalsFor     int `json:"homeGoalsFor"`
	HomeGoalsAgainst int `json:"homeGoalsAgainst"`
	HomeGamesPlayed  int `json:"homeGamesPlayed"`
	AwayGoalsFor     int `json:"awayGoalsFor"`
	AwayGoalsAgainst int `json:"awayGoalsAgainst"`
	AwayGamesPlayed  int `json:"awayGamesPlayed"`
}

// TeamStrengths holds the four dimensionless strength ratios derived from a
// team's season record. A value above 1 means stronger than league average;
// for defense the ratio measures goals conceded, so above 1 means leakier
// than average.
type TeamStrengths struct {
	HomeAttack  float64 `json:"homeAttack"`
	HomeDefense float64 `json:"homeDefense"`
	AwayAttack  float64 `json:"awayAttack"`
	AwayDefense float64 `json:"awayDefense"`
}

// Strength converts a raw goals count into a rate relative to the league
// average. A team with no games played has zero demonstrated strength; the
// safe divide here is deliberate policy, not an error condition.
func Strength(goals, gamesPlayed int, leagueAvg float64) float64 {
	if gamesPlayed <= 0 {
		return 0
	}
	return (float64(goals) / float64(gamesPlayed)) / leagueAvg
}

// CalculateStrengths derives the four strength ratios for a team. Defensive
// ratios use the crossed league average: home conceding is compared to what
// an average away side scores, and vice versa.
func CalculateStrengths(stats *TeamSeasonStats, baseline *LeagueBaseline) *TeamStrengths {
	return &TeamStrengths{
		HomeAttack:  Strength(stats.HomeGoalsFor, stats.HomeGamesPlayed, baseline.AvgHomeGoals),
		HomeDefense: Strength(stats.HomeGoalsAgainst, stats.HomeGamesPlayed, baseline.AvgAwayGoals),
		AwayAttack:  Strength(stats.AwayGoalsFor, stats.AwayGamesPlayed, baseline.AvgAwayGoals),
		AwayDefense: Strength(stats.AwayGoalsAgainst, stats.AwayGamesPlayed, baseline.AvgHomeGoals),
	}
}
