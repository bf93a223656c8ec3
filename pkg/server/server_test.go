package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/podds/pkg/podds"
)

type fakeProvider struct {
	lastLeague int
	lastSeason string
	fail       bool
}

func (f *fakeProvider) BuildPredictionInput(leagueID int, season, homeID, awayID string, formMatches int) (*podds.PredictionInput, error) {
	if f.fail {
		return nil, fmt.Errorf("no data for league %d", leagueID)
	}
	f.lastLeague = leagueID
	f.lastSeason = season
	return &podds.PredictionInput{
		Baseline: &podds.LeagueBaseline{AvgHomeGoals: 1.5, AvgAwayGoals: 1.2},
		HomeStats: &podds.TeamSeasonStats{TeamID: homeID,
			HomeGoalsFor: 15, HomeGoalsAgainst: 12, HomeGamesPlayed: 10,
			AwayGoalsFor: 12, AwayGoalsAgainst: 15, AwayGamesPlayed: 10},
		AwayStats: &podds.TeamSeasonStats{TeamID: awayID,
			HomeGoalsFor: 15, HomeGoalsAgainst: 12, HomeGamesPlayed: 10,
			AwayGoalsFor: 12, AwayGoalsAgainst: 15, AwayGamesPlayed: 10},
	}, nil
}

func newTestServer(provider DataProvider, pin string) *httptest.Server {
	handler := NewAPIHandler(provider, pin, 6)
	return httptest.NewServer(handler.SetupRoutes())
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(&fakeProvider{}, "")
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestPredictEndpoint(t *testing.T) {
	provider := &fakeProvider{}
	server := newTestServer(provider, "")
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/predict?league=47&season=2025/2026&home=8650&away=8456")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result podds.PredictionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, 47, provider.lastLeague)
	assert.Equal(t, "2025/2026", provider.lastSeason)
	assert.InDelta(t, 1.5, result.HomeExpGoals, 1e-6)
	assert.InDelta(t, 1.2, result.AwayExpGoals, 1e-6)
	assert.NotNil(t, result.DixonColes)
	assert.NotNil(t, result.BTTS)
}

func TestPredictParameterOverrides(t *testing.T) {
	server := newTestServer(&fakeProvider{}, "")
	defer server.Close()

	resp, err := http.Get(server.URL +
		"/api/predict?league=47&season=2025/2026&home=a&away=b&rho=-0.05&line=3.5&btts=2.10&lambda3=0.05")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result podds.PredictionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, -0.05, result.Rho)
	assert.Equal(t, 0.05, result.Lambda3)
	assert.Equal(t, 3.5, result.TrueGoalLine.BookieLine)
	assert.Equal(t, 2.10, result.BTTS.BookieOdds)
}

func TestPredictMissingParameters(t *testing.T) {
	server := newTestServer(&fakeProvider{}, "")
	defer server.Close()

	for _, url := range []string{
		"/api/predict",
		"/api/predict?league=notanumber&season=2025/2026&home=a&away=b",
		"/api/predict?league=47&home=a&away=b",
		"/api/predict?league=47&season=2025/2026&home=a",
	} {
		resp, err := http.Get(server.URL + url)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "url=%s", url)
	}
}

func TestPredictUnknownFixture(t *testing.T) {
	server := newTestServer(&fakeProvider{fail: true}, "")
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/predict?league=47&season=2025/2026&home=a&away=b")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPinProtection(t *testing.T) {
	server := newTestServer(&fakeProvider{}, "1234")
	defer server.Close()

	url := server.URL + "/api/predict?league=47&season=2025/2026&home=a&away=b"

	// No pin header
	resp, err := http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong pin
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("X-Podds-Pin", "9999")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct pin
	req, _ = http.NewRequest("GET", url, nil)
	req.Header.Set("X-Podds-Pin", "1234")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Health stays open
	resp, err = http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
