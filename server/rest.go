package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/repository"
	"github.com/reviewscope/reviewscope/pkg/scheduler"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// statusHandler returns server status with item counts per status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    s.now().UTC(),
	}
	counts, err := s.db.StatusCounts(r.Context())
	if err != nil {
		lgr.Printf("[WARN] failed to get status counts: %v", err)
		status["status"] = "degraded"
		status["error"] = err.Error()
	} else {
		status["counts"] = counts
	}
	renderJSON(w, r, http.StatusOK, status)
}

type appJSON struct {
	AppID             int64     `json:"app_id"`
	Name              string    `json:"name"`
	Active            bool      `json:"active"`
	LastKnownPosition int64     `json:"last_known_position"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// listAppsHandler returns tracked apps, ?active=true limits to active ones
func (s *Server) listAppsHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	apps, err := s.db.ListApps(r.Context(), activeOnly)
	if err != nil {
		lgr.Printf("[ERROR] failed to list apps: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	res := make([]appJSON, 0, len(apps))
	for _, a := range apps {
		res = append(res, appJSON{AppID: a.AppID, Name: a.Name, Active: a.Active,
			LastKnownPosition: a.LastKnownPosition, CreatedAt: a.CreatedAt})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// createAppHandler starts tracking an app, tracking an already known app is not an error
func (s *Server) createAppHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AppID int64  `json:"app_id"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.AppID <= 0 {
		renderError(w, r, errors.New("app_id must be positive"), http.StatusBadRequest)
		return
	}
	app := &domain.TrackedApp{AppID: req.AppID, Name: strings.TrimSpace(req.Name), Active: true}
	created, err := s.db.CreateApp(r.Context(), app)
	if err != nil {
		lgr.Printf("[ERROR] failed to create app %d: %v", req.AppID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	code := http.StatusOK
	if created {
		lgr.Printf("[INFO] tracking app %d %q", app.AppID, app.Name)
		code = http.StatusCreated
	}
	renderJSON(w, r, code, map[string]any{"app_id": app.AppID, "created": created})
}

// setAppActiveHandler enables or disables fetching of an app
func (s *Server) setAppActiveHandler(w http.ResponseWriter, r *http.Request) {
	appID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid app id"), http.StatusBadRequest)
		return
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		renderError(w, r, errors.New("active flag is required"), http.StatusBadRequest)
		return
	}
	if err := s.db.SetAppActive(r.Context(), appID, *req.Active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to set app %d active: %v", appID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"app_id": appID, "active": *req.Active})
}

// steamReportHandler sends the steam report of an app as an xlsx attachment
func (s *Server) steamReportHandler(w http.ResponseWriter, r *http.Request) {
	appID, err := strconv.ParseInt(r.PathValue("app_id"), 10, 64)
	if err != nil || appID <= 0 {
		renderError(w, r, errors.New("invalid app id"), http.StatusBadRequest)
		return
	}
	window, err := s.window(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	data, err := s.reports.BuildSteamReport(r.Context(), appID, window)
	if err != nil {
		lgr.Printf("[ERROR] failed to build steam report for app %d: %v", appID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	sendWorkbook(w, scheduler.ReportFilename("steam", "app "+strconv.FormatInt(appID, 10), window), data)
}

// youtubeReportHandler sends the youtube report of a game as an xlsx attachment
func (s *Server) youtubeReportHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("game_id")
	game, err := s.db.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	window, err := s.window(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	data, err := s.reports.BuildYouTubeReport(r.Context(), game.ID, window)
	if err != nil {
		lgr.Printf("[ERROR] failed to build youtube report for game %s: %v", game.Name, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	sendWorkbook(w, scheduler.ReportFilename("youtube", game.Name, window), data)
}

// runJobHandler runs a job synchronously and returns its summary
func (s *Server) runJobHandler(w http.ResponseWriter, r *http.Request) {
	name, err := scheduler.ParseJobName(r.PathValue("name"))
	if err != nil {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	summary := s.jobs.Run(r.Context(), name)
	code := http.StatusOK
	if summary.Err != "" {
		code = http.StatusInternalServerError
	}
	renderJSON(w, r, code, summary)
}

// window builds a report window from ?timespan=weekly|monthly or ?days=N, weekly by default
func (s *Server) window(r *http.Request) (domain.ReportWindow, error) {
	timespan := r.URL.Query().Get("timespan")
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		if timespan != "" {
			return domain.ReportWindow{}, errors.New("days and timespan are mutually exclusive")
		}
		d, err := strconv.Atoi(v)
		if err != nil {
			return domain.ReportWindow{}, fmt.Errorf("invalid days %q", v)
		}
		days = d
	} else if timespan == "" {
		timespan = "weekly"
	}
	return domain.ParseWindow(s.now(), timespan, days)
}

func sendWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		lgr.Printf("[WARN] failed to send %s: %v", filename, err)
	}
}
