package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/repository"
	"github.com/reviewscope/reviewscope/pkg/scheduler"
	"github.com/reviewscope/reviewscope/server/mocks"
)

var testNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

// testServer creates a server with fixed clock
func testServer(database Database, reports Reports, jobs Jobs) *Server {
	cfg := &mocks.ConfigProviderMock{GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second }}
	srv := New(cfg, database, reports, jobs, "test", false)
	srv.now = func() time.Time { return testNow }
	return srv
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
	}
	srv := New(cfg, &mocks.DatabaseMock{}, &mocks.ReportsMock{}, &mocks.JobsMock{}, "1.0.0", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Status(t *testing.T) {
	db := &mocks.DatabaseMock{StatusCountsFunc: func(context.Context) (map[string]map[string]int, error) {
		return map[string]map[string]int{"review_translation": {"pending": 3, "translated": 7}}, nil
	}}
	rec := serve(testServer(db, nil, nil), http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reviewscope", rec.Header().Get("App-Name"))

	var resp struct {
		Status  string                    `json:"status"`
		Version string                    `json:"version"`
		Counts  map[string]map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, 7, resp.Counts["review_translation"]["translated"])

	db.StatusCountsFunc = func(context.Context) (map[string]map[string]int, error) { return nil, errors.New("db locked") }
	rec = serve(testServer(db, nil, nil), http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
}

func TestServer_Apps(t *testing.T) {
	db := &mocks.DatabaseMock{
		ListAppsFunc: func(_ context.Context, activeOnly bool) ([]domain.TrackedApp, error) {
			apps := []domain.TrackedApp{{AppID: 570, Name: "Dota 2", Active: true, LastKnownPosition: 1700000000}}
			if !activeOnly {
				apps = append(apps, domain.TrackedApp{AppID: 440, Name: "TF2"})
			}
			return apps, nil
		},
		CreateAppFunc: func(_ context.Context, app *domain.TrackedApp) (bool, error) {
			return app.AppID != 570, nil
		},
		SetAppActiveFunc: func(_ context.Context, appID int64, _ bool) error {
			if appID == 1 {
				return fmt.Errorf("set app 1 active: %w", repository.ErrNotFound)
			}
			return nil
		},
	}
	srv := testServer(db, nil, nil)

	t.Run("list", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/api/v1/apps?active=true", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var apps []appJSON
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
		require.Len(t, apps, 1)
		assert.Equal(t, int64(1700000000), apps[0].LastKnownPosition)

		rec = serve(srv, http.MethodGet, "/api/v1/apps", "")
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
		assert.Len(t, apps, 2)
	})

	t.Run("create", func(t *testing.T) {
		rec := serve(srv, http.MethodPost, "/api/v1/apps", `{"app_id": 730, "name": " CS2 "}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		calls := db.CreateAppCalls()
		require.NotEmpty(t, calls)
		assert.Equal(t, "CS2", calls[len(calls)-1].App.Name)
		assert.True(t, calls[len(calls)-1].App.Active)

		rec = serve(srv, http.MethodPost, "/api/v1/apps", `{"app_id": 570}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"created":false`)

		rec = serve(srv, http.MethodPost, "/api/v1/apps", `{"app_id": -1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = serve(srv, http.MethodPost, "/api/v1/apps", `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set active", func(t *testing.T) {
		rec := serve(srv, http.MethodPost, "/api/v1/apps/570/active", `{"active": false}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		calls := db.SetAppActiveCalls()
		require.NotEmpty(t, calls)
		assert.False(t, calls[len(calls)-1].Active)

		rec = serve(srv, http.MethodPost, "/api/v1/apps/1/active", `{"active": true}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		rec = serve(srv, http.MethodPost, "/api/v1/apps/abc/active", `{"active": true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = serve(srv, http.MethodPost, "/api/v1/apps/570/active", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_SteamReport(t *testing.T) {
	reports := &mocks.ReportsMock{BuildSteamReportFunc: func(_ context.Context, appID int64, w domain.ReportWindow) ([]byte, error) {
		if appID == 13 {
			return nil, errors.New("db gone")
		}
		return []byte("PK-xlsx"), nil
	}}
	srv := testServer(&mocks.DatabaseMock{}, reports, nil)

	rec := serve(srv, http.MethodGet, "/api/v1/reports/steam/570?days=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="steam_app_570_last_3d_2024-05-12.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK-xlsx", rec.Body.String())
	w := reports.BuildSteamReportCalls()[0].W
	assert.Equal(t, testNow.AddDate(0, 0, -3), w.Start)
	assert.Equal(t, testNow, w.End)

	rec = serve(srv, http.MethodGet, "/api/v1/reports/steam/570", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "weekly", reports.BuildSteamReportCalls()[1].W.Label)

	rec = serve(srv, http.MethodGet, "/api/v1/reports/steam/570?timespan=monthly", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "monthly", reports.BuildSteamReportCalls()[2].W.Label)

	for _, path := range []string{"/api/v1/reports/steam/570?days=0", "/api/v1/reports/steam/570?days=x",
		"/api/v1/reports/steam/570?timespan=yearly", "/api/v1/reports/steam/570?days=3&timespan=weekly",
		"/api/v1/reports/steam/zero"} {
		rec = serve(srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}

	rec = serve(srv, http.MethodGet, "/api/v1/reports/steam/13", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, reports.BuildSteamReportCalls(), 4)
}

func TestServer_YouTubeReport(t *testing.T) {
	db := &mocks.DatabaseMock{GetGameFunc: func(_ context.Context, id string) (*domain.Game, error) {
		if id != "g1" {
			return nil, fmt.Errorf("get game %s: %w", id, repository.ErrNotFound)
		}
		return &domain.Game{ID: "g1", Name: "Space Miner"}, nil
	}}
	reports := &mocks.ReportsMock{BuildYouTubeReportFunc: func(context.Context, string, domain.ReportWindow) ([]byte, error) {
		return []byte("PK-yt"), nil
	}}
	srv := testServer(db, reports, nil)

	rec := serve(srv, http.MethodGet, "/api/v1/reports/youtube/g1?timespan=weekly", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="youtube_space_miner_weekly_2024-05-06.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "g1", reports.BuildYouTubeReportCalls()[0].GameID)

	rec = serve(srv, http.MethodGet, "/api/v1/reports/youtube/g2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RunJob(t *testing.T) {
	jobs := &mocks.JobsMock{RunFunc: func(_ context.Context, name scheduler.JobName) scheduler.JobSummary {
		res := scheduler.JobSummary{Job: name, RunID: "run-1", Succeeded: 5}
		if name == scheduler.JobAnalyzeVideos {
			res.Err = "enrichment is not configured"
		}
		return res
	}}
	srv := testServer(&mocks.DatabaseMock{}, nil, jobs)

	rec := serve(srv, http.MethodPost, "/api/v1/jobs/translate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary scheduler.JobSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, scheduler.JobTranslate, summary.Job)
	assert.Equal(t, 5, summary.Succeeded)

	rec = serve(srv, http.MethodPost, "/api/v1/jobs/analyze-videos", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(srv, http.MethodPost, "/api/v1/jobs/reboot", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, jobs.RunCalls(), 2)

	rec = serve(srv, http.MethodGet, "/api/v1/jobs/translate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	renderError(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), nil, http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"error":"unknown error"}`, rec.Body.String())
}
