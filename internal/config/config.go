// Package config loads the dashboard configuration from an optional YAML
// file. Defaults reproduce the curated dashboard's editorial settings, so a
// config file is only needed to override them.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jcabot/uml-tools-dashboard/internal/usecase"
)

// Duration wraps time.Duration with YAML support for values like "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all dashboard settings.
type Config struct {
	Search   Search   `yaml:"search"`
	Snapshot Snapshot `yaml:"snapshot"`
	Server   Server   `yaml:"server"`
	Curation Curation `yaml:"curation"`
	Analysis Analysis `yaml:"analysis"`
}

// Search configures the live GitHub query.
type Search struct {
	// Query is the editorial base expression; star and activity cutoffs are
	// appended to it.
	Query          string   `yaml:"query"`
	MinStars       int      `yaml:"min_stars"`
	ActivityWindow Duration `yaml:"activity_window"`
	PerPage        int      `yaml:"per_page"`
	MaxPages       int      `yaml:"max_pages"`
	Timeout        Duration `yaml:"timeout"`
}

// Snapshot configures the fallback file.
type Snapshot struct {
	Path string `yaml:"path"`
}

// Server configures the HTTP dashboard.
type Server struct {
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Curation lists repositories edited out of every view.
type Curation struct {
	Excluded []string `yaml:"excluded"`
}

// Analysis configures the keyword categories.
type Analysis struct {
	Categories []usecase.Category `yaml:"categories"`
}

// Default returns the built-in configuration: the same query, cutoffs, and
// exclusion list the dashboard has always shipped with.
func Default() Config {
	return Config{
		Search: Search{
			Query:          "uml",
			MinStars:       50,
			ActivityWindow: Duration(365 * 24 * time.Hour),
			PerPage:        100,
			MaxPages:       10,
			Timeout:        Duration(10 * time.Second),
		},
		Snapshot: Snapshot{Path: "snapshot.csv"},
		Server: Server{
			Addr:      ":8080",
			LogLevel:  "info",
			LogFormat: "text",
		},
		Curation: Curation{
			Excluded: []string{
				"awesome-low-level-design", "Books-Free-Books", "awesome-diagramming",
				"plantuml-examples", "hogwarts-artifacts-online",
				"-Enterprise-Architect-16-Crack-renewal-", "UoM-Applied-Informatics",
				"UML-Best-Practices", "design-pattern-examples-in-python",
				"design-pattern-examples-in-crystal", "FreeTakServer",
				"plantuml-icon-font-sprites", "snow-owl", "StarUML-CrackedAndTranslate",
				"tiro-notes", "QuickUMLS",
			},
		},
		Analysis: Analysis{Categories: usecase.DefaultCategories()},
	}
}

// Load returns the defaults overridden by the YAML file at path. An empty
// path returns the defaults as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail far from here.
func (c Config) Validate() error {
	if c.Search.Query == "" {
		return errors.New("search.query must not be empty")
	}
	if c.Search.MinStars < 0 {
		return errors.New("search.min_stars must not be negative")
	}
	if c.Search.PerPage < 1 || c.Search.PerPage > 100 {
		return errors.New("search.per_page must be between 1 and 100")
	}
	if c.Search.MaxPages < 1 {
		return errors.New("search.max_pages must be at least 1")
	}
	if c.Search.Timeout.Std() <= 0 {
		return errors.New("search.timeout must be positive")
	}
	if c.Snapshot.Path == "" {
		return errors.New("snapshot.path must not be empty")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	return nil
}
