package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/match-predictor/internal/domain/user"
	"github.com/riskibarqy/match-predictor/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/usecase"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	principal user.Principal
	err       error
	calls     int
}

func (s *stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	s.calls++
	return s.principal, s.err
}

type testServer struct {
	router      http.Handler
	predictions *memory.PredictionRepository
}

func newTestServer(t *testing.T, cfg RouterConfig) testServer {
	t.Helper()

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	predictionRepo := memory.NewPredictionRepository(clockwork.NewFakeClockAt(time.Date(2018, time.June, 10, 9, 0, 0, 0, time.UTC)))
	standingRepo := memory.NewStandingRepository(memory.SeedStandings())

	handler := NewHandler(
		usecase.NewMatchService(matchRepo),
		usecase.NewPredictionService(matchRepo, predictionRepo, logging.NewNop()),
		usecase.NewStandingService(standingRepo),
		logging.NewNop(),
	)

	return testServer{
		router:      NewRouter(handler, logging.NewNop(), cfg),
		predictions: predictionRepo,
	}
}

func (s testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestListMatches_FirstPage(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "http://example.com/matches", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].([]any)
	require.Len(t, data, 2)
	require.Equal(t, float64(1), data[0].(map[string]any)["id"])
	require.Equal(t, float64(2), data[1].(map[string]any)["id"])

	first := data[0].(map[string]any)
	require.Equal(t, "A", first["group"])
	require.Equal(t, "Russia", first["home_team"].(map[string]any)["name"])
	require.Equal(t, "2018-06-14T15:00:00Z", first["kickoff_at"])

	meta := body["meta"].(map[string]any)
	require.Equal(t, float64(1), meta["current_page"])
	require.Equal(t, float64(3), meta["last_page"])
	require.Equal(t, float64(2), meta["per_page"])
	require.Equal(t, float64(5), meta["total"])
	require.Equal(t, float64(1), meta["from"])
	require.Equal(t, float64(2), meta["to"])
	require.Equal(t, "http://example.com/matches", meta["path"])

	links := body["links"].(map[string]any)
	require.Equal(t, "http://example.com/matches?page=1", links["first"])
	require.Equal(t, "http://example.com/matches?page=3", links["last"])
	require.Nil(t, links["prev"])
	require.Equal(t, "http://example.com/matches?page=2", links["next"])
}

func TestListMatches_LastAndPastEndPages(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/matches?page=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Len(t, body["data"].([]any), 1)
	require.Nil(t, body["links"].(map[string]any)["next"])

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/matches?page=9", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Empty(t, body["data"].([]any))
	meta := body["meta"].(map[string]any)
	require.Nil(t, meta["from"])
	require.Nil(t, meta["to"])
	require.Equal(t, float64(9), meta["current_page"])
}

func TestListMatches_MaxIntPageIsEmpty(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/matches?page=9223372036854775807", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Empty(t, body["data"].([]any))
	meta := body["meta"].(map[string]any)
	require.Nil(t, meta["from"])
	require.Nil(t, meta["to"])
	require.Nil(t, body["links"].(map[string]any)["next"])
}

func TestListMatches_InvalidPageFallsBackToFirst(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	for _, page := range []string{"abc", "0", "-4"} {
		rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/matches?page="+page, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		meta := decodeBody(t, rec)["meta"].(map[string]any)
		require.Equal(t, float64(1), meta["current_page"], "page=%s", page)
	}
}

func TestGetMatch(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/matches/4", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, float64(4), data["id"])
	require.Equal(t, "Portugal", data["home_team"].(map[string]any)["name"])
	require.Equal(t, "Spain", data["away_team"].(map[string]any)["name"])
}

func TestGetMatch_NotFound(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	for _, id := range []string{"99", "0", "abc"} {
		rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/matches/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code, "id=%s", id)
		require.JSONEq(t, `{"data":{"status":"failed","error":404}}`, rec.Body.String())
	}
}

func TestSubmitPrediction_Anonymous(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, jsonRequest(http.MethodPost, "/matches/predictions", `{"match_id":5,"home_team_goals":2,"away_team_goals":1}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	require.Equal(t, true, body["status"])
	require.Equal(t, "Mail succesfully added", body["message"])

	emails := body["emails"].(map[string]any)
	require.Equal(t, float64(5), emails["match_id"])
	require.Equal(t, float64(2), emails["home_team_goals"])
	require.Equal(t, float64(1), emails["away_team_goals"])
	require.Contains(t, emails, "user_id")
	require.Nil(t, emails["user_id"])
	require.Equal(t, "2018-06-10T09:00:00Z", emails["created_at"])

	require.Len(t, srv.predictions.List(), 1)
}

func TestSubmitPrediction_WithSession(t *testing.T) {
	verifier := &stubVerifier{principal: user.Principal{UserID: "user-42", Email: "fan@example.com"}}
	srv := newTestServer(t, RouterConfig{Verifier: verifier})

	req := jsonRequest(http.MethodPost, "/matches/predictions", `{"match_id":"3","home_team_goals":"0","away_team_goals":"0"}`)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := srv.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	emails := decodeBody(t, rec)["emails"].(map[string]any)
	require.Equal(t, "user-42", emails["user_id"])
	require.Equal(t, float64(3), emails["match_id"])
	require.Equal(t, 1, verifier.calls)
}

func TestSubmitPrediction_RejectedTokenIsAnonymous(t *testing.T) {
	verifier := &stubVerifier{err: usecase.ErrUnauthorized}
	srv := newTestServer(t, RouterConfig{Verifier: verifier})

	req := jsonRequest(http.MethodPost, "/matches/predictions", `{"match_id":1,"home_team_goals":1,"away_team_goals":1}`)
	req.Header.Set("Authorization", "Bearer expired")
	rec := srv.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Nil(t, decodeBody(t, rec)["emails"].(map[string]any)["user_id"])
}

func TestSubmitPrediction_AccountServiceUnavailable(t *testing.T) {
	verifier := &stubVerifier{err: usecase.ErrDependencyUnavailable}
	srv := newTestServer(t, RouterConfig{Verifier: verifier})

	req := jsonRequest(http.MethodPost, "/matches/predictions", `{"match_id":1,"home_team_goals":1,"away_team_goals":1}`)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := srv.do(t, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Empty(t, srv.predictions.List())
}

func TestSubmitPrediction_FormBodyDropsToken(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	form := url.Values{
		"_token":          {"csrf-token"},
		"match_id":        {"2"},
		"home_team_goals": {"3"},
		"away_team_goals": {"1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/matches/predictions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := srv.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	emails := decodeBody(t, rec)["emails"].(map[string]any)
	require.Equal(t, float64(2), emails["match_id"])
	require.NotContains(t, emails, "_token")
}

func TestSubmitPrediction_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing home goals",
			body:      `{"match_id":5,"away_team_goals":1}`,
			wantField: "home_team_goals",
			wantMsg:   "The home team goals field is required.",
		},
		{
			name:      "non integer away goals",
			body:      `{"match_id":5,"home_team_goals":1,"away_team_goals":"two"}`,
			wantField: "away_team_goals",
			wantMsg:   "The away team goals must be an integer.",
		},
		{
			name:      "fractional goals",
			body:      `{"match_id":5,"home_team_goals":1.5,"away_team_goals":1}`,
			wantField: "home_team_goals",
			wantMsg:   "The home team goals must be an integer.",
		},
		{
			name:      "negative goals",
			body:      `{"match_id":5,"home_team_goals":-1,"away_team_goals":1}`,
			wantField: "home_team_goals",
			wantMsg:   "The home team goals must be at least 0.",
		},
		{
			name:      "unknown match",
			body:      `{"match_id":404,"home_team_goals":1,"away_team_goals":1}`,
			wantField: "match_id",
			wantMsg:   "The selected match id is invalid.",
		},
		{
			name:      "empty body",
			body:      ``,
			wantField: "match_id",
			wantMsg:   "The match id field is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, RouterConfig{})

			rec := srv.do(t, jsonRequest(http.MethodPost, "/matches/predictions", tt.body))
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

			body := decodeBody(t, rec)
			errs := body["errors"].(map[string]any)
			require.Contains(t, errs, tt.wantField)
			require.Equal(t, tt.wantMsg, errs[tt.wantField].([]any)[0])
			require.Empty(t, srv.predictions.List())
		})
	}
}

func TestSubmitPrediction_MessageCountsRemainingErrors(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, jsonRequest(http.MethodPost, "/matches/predictions", `{}`))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "The match id field is required. (and 2 more errors)", decodeBody(t, rec)["message"])
}

func TestSubmitPrediction_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, jsonRequest(http.MethodPost, "/matches/predictions", `{"match_id":`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errorObj := decodeBody(t, rec)["error"].(map[string]any)
	require.Equal(t, "INVALID_ARGUMENT", errorObj["status"])
}

func TestSubmitPrediction_RepeatedSubmissionsAllPersist(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	for i := 0; i < 2; i++ {
		rec := srv.do(t, jsonRequest(http.MethodPost, "/matches/predictions", `{"match_id":1,"home_team_goals":2,"away_team_goals":2}`))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	stored := srv.predictions.List()
	require.Len(t, stored, 2)
	require.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestStandingsPage(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	page := rec.Body.String()
	require.Contains(t, page, "<h1>Current Matches</h1>")
	require.Contains(t, page, "<p>B</p>")
	require.Contains(t, page, "<p>Saudi Arabia</p>")
	require.Contains(t, page, `src="/img/crests/irn.png"`)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, RouterConfig{})

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"apiVersion":"2.0","data":{"status":"ok"}}`, rec.Body.String())
}

func TestSwaggerRoutesFollowConfig(t *testing.T) {
	disabled := newTestServer(t, RouterConfig{})
	rec := disabled.do(t, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	enabled := newTestServer(t, RouterConfig{SwaggerEnabled: true})
	rec = enabled.do(t, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/matches/predictions")

	rec = enabled.do(t, httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Match Predictor API Docs")
}
