package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcabot/uml-tools-dashboard/internal/config"
	"github.com/jcabot/uml-tools-dashboard/internal/domain"
	"github.com/jcabot/uml-tools-dashboard/internal/usecase"
)

// fakeSource returns a canned resolver result.
type fakeSource struct {
	result    *usecase.Result
	err       error
	lastQuery string
}

func (f *fakeSource) Resolve(ctx context.Context, query string) (*usecase.Result, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testRecords() []domain.RepositoryRecord {
	return []domain.RepositoryRecord{
		{
			Name:        "plantuml",
			Stars:       1200,
			LastUpdated: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			FirstCommit: time.Date(2013, 3, 20, 0, 0, 0, 0, time.UTC),
			URL:         "https://github.com/plantuml/plantuml",
			Language:    "Java",
			Topics:      []string{"uml", "plantuml"},
		},
		{
			Name:        "small-tool",
			Stars:       60,
			LastUpdated: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			FirstCommit: time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC),
			URL:         "https://github.com/x/small-tool",
		},
	}
}

func newTestServer(t *testing.T, source Source) *Server {
	t.Helper()
	server, err := NewServer(source, config.Default())
	require.NoError(t, err)
	return server
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Repos(t *testing.T) {
	source := &fakeSource{result: &usecase.Result{
		Source:  usecase.SourceLive,
		Notices: []usecase.Notice{usecase.LiveSuccess(2)},
		Records: testRecords(),
	}}
	rec := get(t, newTestServer(t, source), "/api/repos")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp reposResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, usecase.SourceLive, resp.Source)
	require.Len(t, resp.Repos, 2)
	assert.Equal(t, "2025-06-01", resp.Repos[0].LastUpdated)
	assert.Equal(t, "uml,plantuml", resp.Repos[0].Topics)

	// The resolver got a query with the configured cutoffs attached.
	assert.Contains(t, source.lastQuery, "uml stars:>=50 pushed:>=")
}

func TestServer_Repos_ViewFilters(t *testing.T) {
	source := &fakeSource{result: &usecase.Result{Source: usecase.SourceLive, Records: testRecords()}}
	server := newTestServer(t, source)

	rec := get(t, server, "/api/repos?min_stars=100")
	var resp reposResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Repos, 1)
	assert.Equal(t, "plantuml", resp.Repos[0].Name)

	rec = get(t, server, "/api/repos?min_stars=0&since=2025-05-01")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Repos, 1)
	assert.Equal(t, "plantuml", resp.Repos[0].Name)
}

func TestServer_Repos_FallbackNoticesSurface(t *testing.T) {
	source := &fakeSource{result: &usecase.Result{
		Source: usecase.SourceSnapshot,
		Notices: []usecase.Notice{
			usecase.FetchFailure(&domain.OpError{Kind: domain.KindHTTPError, Status: 503, Op: "gateway.search_repositories"}),
			usecase.FallbackWarning(),
			usecase.FallbackSuccess(2),
		},
		Records: testRecords(),
	}}
	rec := get(t, newTestServer(t, source), "/api/repos")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp reposResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, usecase.SourceSnapshot, resp.Source)
	require.Len(t, resp.Notices, 3)
	assert.Equal(t, usecase.SeverityWarning, resp.Notices[1].Severity)
}

func TestServer_Repos_TerminalFailure(t *testing.T) {
	source := &fakeSource{err: &domain.OpError{Op: "snapshot.load", Kind: domain.KindMissingSnapshot, Path: "snapshot.csv"}}
	rec := get(t, newTestServer(t, source), "/api/repos")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp reposResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Repos, "no partial data on terminal failure")
	require.Len(t, resp.Notices, 1)
	assert.Equal(t, usecase.SeverityError, resp.Notices[0].Severity)
	assert.Contains(t, resp.Notices[0].Message, "no snapshot.csv file found")
}

func TestServer_Dashboard(t *testing.T) {
	source := &fakeSource{result: &usecase.Result{
		Source:  usecase.SourceSnapshot,
		Notices: []usecase.Notice{usecase.FallbackWarning(), usecase.FallbackSuccess(2)},
		Records: testRecords(),
	}}
	rec := get(t, newTestServer(t, source), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Dashboard of Open-Source UML Tools in GitHub")
	assert.Contains(t, body, "notice warning")
	assert.Contains(t, body, "snapshot.csv")
	assert.Contains(t, body, "plantuml")
}

func TestServer_Analysis(t *testing.T) {
	source := &fakeSource{result: &usecase.Result{Source: usecase.SourceLive, Records: testRecords()}}
	rec := get(t, newTestServer(t, source), "/api/analysis")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []usecase.CategoryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 5)
	for _, result := range results {
		if result.Category == "plantuml" {
			require.Len(t, result.Matching, 1)
			assert.Equal(t, "plantuml", result.Matching[0].Name)
		}
	}
}

func TestServer_Stats(t *testing.T) {
	source := &fakeSource{result: &usecase.Result{Source: usecase.SourceLive, Records: testRecords()}}
	rec := get(t, newTestServer(t, source), "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats usecase.GlobalStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1200.0, stats.Stars.Max)
}

func TestServer_Health(t *testing.T) {
	rec := get(t, newTestServer(t, &fakeSource{result: &usecase.Result{}}), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}
