package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "uml", cfg.Search.Query)
	assert.Equal(t, 50, cfg.Search.MinStars)
	assert.Equal(t, 10*time.Second, cfg.Search.Timeout.Std())
	assert.Equal(t, "snapshot.csv", cfg.Snapshot.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Contains(t, cfg.Curation.Excluded, "awesome-diagramming")
	assert.Len(t, cfg.Analysis.Categories, 5)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
search:
  query: "uml OR statechart"
  min_stars: 100
  timeout: 30s
server:
  addr: ":9090"
curation:
  excluded: [one, two]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "uml OR statechart", cfg.Search.Query)
	assert.Equal(t, 100, cfg.Search.MinStars)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout.Std())
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"one", "two"}, cfg.Curation.Excluded)
	// Untouched sections keep their defaults.
	assert.Equal(t, 100, cfg.Search.PerPage)
	assert.Equal(t, "snapshot.csv", cfg.Snapshot.Path)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "bad yaml",
			content: "search: [not a mapping",
			errMsg:  "parse config",
		},
		{
			name:    "bad duration",
			content: "search:\n  timeout: soon\n",
			errMsg:  `invalid duration "soon"`,
		},
		{
			name:    "empty query",
			content: "search:\n  query: \"\"\n",
			errMsg:  "search.query",
		},
		{
			name:    "per page out of range",
			content: "search:\n  per_page: 500\n",
			errMsg:  "search.per_page",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
