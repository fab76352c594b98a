package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
	"github.com/jcabot/uml-tools-dashboard/internal/logging"
	"github.com/jcabot/uml-tools-dashboard/internal/usecase"
)

const maxDescriptionLen = 200

// repoRow is the render-ready form of a record: dates as calendar days,
// topics joined, description truncated for the table.
type repoRow struct {
	Name        string `json:"name"`
	Stars       int    `json:"stars"`
	LastUpdated string `json:"last_updated"`
	FirstCommit string `json:"first_commit"`
	URL         string `json:"url"`
	Forks       int    `json:"forks"`
	Issues      int    `json:"issues"`
	Language    string `json:"language"`
	License     string `json:"license"`
	Description string `json:"description"`
	Topics      string `json:"topics"`
}

type dashboardView struct {
	Title   string
	Source  usecase.Source
	Notices []usecase.Notice
	Rows    []repoRow
}

type reposResponse struct {
	Source  usecase.Source   `json:"source"`
	Notices []usecase.Notice `json:"notices"`
	Repos   []repoRow        `json:"repos"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := s.resolve(r)
	if err != nil {
		view := dashboardView{
			Title:   "Dashboard of Open-Source UML Tools in GitHub",
			Notices: []usecase.Notice{usecase.SnapshotFailure(err)},
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		s.render(w, r, view)
		return
	}

	view := dashboardView{
		Title:   "Dashboard of Open-Source UML Tools in GitHub",
		Source:  result.Source,
		Notices: result.Notices,
		Rows:    rows(s.filtered(r, result.Records)),
	}
	s.render(w, r, view)
}

func (s *Server) handleRepos(w http.ResponseWriter, r *http.Request) {
	result, err := s.resolve(r)
	if err != nil {
		s.writeUnavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reposResponse{
		Source:  result.Source,
		Notices: result.Notices,
		Repos:   rows(s.filtered(r, result.Records)),
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := s.resolve(r)
	if err != nil {
		s.writeUnavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.Analyze(result.Records, s.cfg.Analysis.Categories))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.resolve(r)
	if err != nil {
		s.writeUnavailable(w, err)
		return
	}
	globalStats, err := usecase.ComputeStats(s.filtered(r, result.Records))
	if err != nil {
		logging.FromContext(r.Context()).Error("stats computation failed", "error", err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, globalStats)
}

// resolve performs the fetch-or-fallback flow for one request. Records are
// rebuilt on every load; nothing is cached between requests.
func (s *Server) resolve(r *http.Request) (*usecase.Result, error) {
	result, err := s.source.Resolve(r.Context(), s.searchQuery())
	if err != nil {
		logging.FromContext(r.Context()).Error("dashboard load failed", "error", err, "kind", string(domain.KindOf(err)))
		return nil, err
	}
	logging.FromContext(r.Context()).Info("dashboard load resolved", "source", string(result.Source), "repos", len(result.Records))
	return result, nil
}

// filtered applies the request's view filters, the moral equivalent of the
// dashboard's star and last-commit sliders.
func (s *Server) filtered(r *http.Request, records []domain.RepositoryRecord) []domain.RepositoryRecord {
	minStars := s.cfg.Search.MinStars
	if raw := r.URL.Query().Get("min_stars"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			minStars = parsed
		}
	}
	var updatedSince time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		if parsed, err := time.Parse(domain.DateLayout, raw); err == nil {
			updatedSince = parsed
		}
	}
	return usecase.FilterRecords(records, minStars, updatedSince)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, view dashboardView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		logging.FromContext(r.Context()).Error("template render failed", "error", err)
	}
}

func (s *Server) writeUnavailable(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusServiceUnavailable, reposResponse{
		Notices: []usecase.Notice{usecase.SnapshotFailure(err)},
		Repos:   []repoRow{},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func rows(records []domain.RepositoryRecord) []repoRow {
	out := make([]repoRow, 0, len(records))
	for _, rec := range records {
		out = append(out, repoRow{
			Name:        rec.Name,
			Stars:       rec.Stars,
			LastUpdated: rec.LastUpdated.Format(domain.DateLayout),
			FirstCommit: rec.FirstCommit.Format(domain.DateLayout),
			URL:         rec.URL,
			Forks:       rec.Forks,
			Issues:      rec.OpenIssues,
			Language:    rec.Language,
			License:     rec.License,
			Description: truncate(rec.Description, maxDescriptionLen),
			Topics:      strings.Join(rec.Topics, ","),
		})
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
