// Package snapshot reads and writes the bundled CSV backup of the last
// known-good repository listing. The snapshot is the fallback data source
// when the GitHub API is unavailable, so records parsed here must come out
// structurally identical to live API records.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

// Header is the documented column order of snapshot.csv.
var Header = []string{
	"Name", "Stars⭐", "Last Updated", "First Commit", "URL",
	"Forks", "Issues", "Language", "License", "Description", "Topics",
}

// Placeholder values the snapshot uses for empty optional fields.
const (
	noLanguage    = "No language"
	noLicense     = "No license"
	noDescription = "No description"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads the snapshot file at Path.
type Loader struct {
	Path string
}

// NewLoader returns a Loader for the snapshot file at path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load opens the snapshot file, strips a leading UTF-8 BOM if present, and
// parses every data row into a RepositoryRecord. A missing file or a row that
// cannot be parsed is an error; rows are never silently skipped.
func (l *Loader) Load() ([]domain.RepositoryRecord, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.OpError{Op: "snapshot.load", Kind: domain.KindMissingSnapshot, Path: l.Path, Err: err}
		}
		return nil, fmt.Errorf("open snapshot %s: %w", l.Path, err)
	}
	defer f.Close()

	return parse(f, l.Path)
}

func parse(r io.Reader, path string) ([]domain.RepositoryRecord, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, &domain.OpError{Op: "snapshot.parse", Kind: domain.KindMalformedRow, Path: path, Row: 0, Err: fmt.Errorf("read header: %w", err)}
	}
	col, err := columnIndex(header)
	if err != nil {
		return nil, &domain.OpError{Op: "snapshot.parse", Kind: domain.KindMalformedRow, Path: path, Row: 0, Err: err}
	}

	var records []domain.RepositoryRecord
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.OpError{Op: "snapshot.parse", Kind: domain.KindMalformedRow, Path: path, Row: row, Err: err}
		}
		rec, err := normalize(col, fields)
		if err != nil {
			return nil, &domain.OpError{Op: "snapshot.parse", Kind: domain.KindMalformedRow, Path: path, Row: row, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex maps each documented header name to its position, so column
// order in the file does not matter as long as every column is present.
func columnIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range Header {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return col, nil
}

// normalize converts one parsed CSV row into a RepositoryRecord with the same
// field set and types as a live API record: dates become calendar days,
// numeric columns become integers, the Topics column splits into an ordered
// sequence, and snapshot placeholders map back to empty fields.
func normalize(col map[string]int, fields []string) (domain.RepositoryRecord, error) {
	get := func(name string) string { return fields[col[name]] }

	stars, err := strconv.Atoi(get("Stars⭐"))
	if err != nil {
		return domain.RepositoryRecord{}, fmt.Errorf("stars: %w", err)
	}
	forks, err := strconv.Atoi(get("Forks"))
	if err != nil {
		return domain.RepositoryRecord{}, fmt.Errorf("forks: %w", err)
	}
	issues, err := strconv.Atoi(get("Issues"))
	if err != nil {
		return domain.RepositoryRecord{}, fmt.Errorf("issues: %w", err)
	}
	lastUpdated, err := time.Parse(domain.DateLayout, get("Last Updated"))
	if err != nil {
		return domain.RepositoryRecord{}, fmt.Errorf("last updated: %w", err)
	}
	firstCommit, err := time.Parse(domain.DateLayout, get("First Commit"))
	if err != nil {
		return domain.RepositoryRecord{}, fmt.Errorf("first commit: %w", err)
	}

	rec := domain.RepositoryRecord{
		Name:        get("Name"),
		Stars:       stars,
		LastUpdated: lastUpdated,
		FirstCommit: firstCommit,
		URL:         get("URL"),
		Forks:       forks,
		OpenIssues:  issues,
		Language:    get("Language"),
		License:     get("License"),
		Description: get("Description"),
	}
	if rec.Language == noLanguage {
		rec.Language = ""
	}
	if rec.License == noLicense {
		rec.License = ""
	}
	if rec.Description == noDescription {
		rec.Description = ""
	}
	if topics := get("Topics"); topics != "" {
		rec.Topics = strings.Split(topics, ",")
	}
	return rec, nil
}

// skipBOM returns a reader positioned past a leading UTF-8 byte-order mark,
// if the input starts with one.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}
