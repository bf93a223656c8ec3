package source

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/podds/internal/logger"
	"github.com/richard-senior/podds/pkg/store"
)

// ParseResults extracts fixtures from a league results page. Expected row
// shape (one table row per fixture):
//
//	<tr class="fixture" data-match-id="..." data-kickoff="2026-08-15T15:00:00Z">
//	  <td class="home" data-team-id="...">Home Name</td>
//	  <td class="score">2 - 1</td>
//	  <td class="away" data-team-id="...">Away Name</td>
//	</tr>
//
// Scheduled fixtures carry an empty or dashed score cell and keep the -1
// goal sentinels.
func ParseResults(html []byte, leagueID int, season string) ([]*store.MatchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var matches []*store.MatchResult
	ordinal := 0

	doc.Find("tr.fixture").Each(func(_ int, row *goquery.Selection) {
		ordinal++

		home := row.Find("td.home")
		away := row.Find("td.away")
		homeID, _ := home.Attr("data-team-id")
		awayID, _ := away.Attr("data-team-id")
		if homeID == "" || awayID == "" {
			logger.Warn("Skipping fixture row without team ids, ordinal", ordinal)
			return
		}

		match := &store.MatchResult{
			LeagueID:     leagueID,
			Season:       season,
			MatchNumber:  ordinal,
			HomeID:       homeID,
			AwayID:       awayID,
			HomeTeamName: strings.TrimSpace(home.Text()),
			AwayTeamName: strings.TrimSpace(away.Text()),
			HomeGoals:    -1,
			AwayGoals:    -1,
		}

		if id, ok := row.Attr("data-match-id"); ok && id != "" {
			match.ID = id
		} else {
			match.ID = fmt.Sprintf("%d-%s-%d", leagueID, strings.ReplaceAll(season, "/", "-"), ordinal)
		}

		if kickoff, ok := row.Attr("data-kickoff"); ok {
			if utc, err := time.Parse(time.RFC3339, kickoff); err == nil {
				match.UTCTime = utc
			}
		}

		if h, a, ok := parseScore(row.Find("td.score").Text()); ok {
			match.HomeGoals = h
			match.AwayGoals = a
		}

		matches = append(matches, match)
	})

	return matches, nil
}

// parseScore splits a "2 - 1" style score cell; hyphen and en dash both
// appear in the wild
func parseScore(text string) (home, away int, ok bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "–", "-"))
	if text == "" || text == "-" {
		return 0, 0, false
	}

	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return home, away, true
}
