package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

// WriteFile exports records to a snapshot file at path, replacing any
// existing file. The output is what Load expects back: a UTF-8 BOM, the
// documented header, and one row per repository.
func WriteFile(path string, records []domain.RepositoryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write streams records as snapshot CSV to w.
func Write(w io.Writer, records []domain.RepositoryRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("write row for %s: %w", rec.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// row renders one record in Header column order, restoring the snapshot
// placeholders for empty optional fields.
func row(rec domain.RepositoryRecord) []string {
	language := rec.Language
	if language == "" {
		language = noLanguage
	}
	license := rec.License
	if license == "" {
		license = noLicense
	}
	description := rec.Description
	if description == "" {
		description = noDescription
	}
	return []string{
		rec.Name,
		strconv.Itoa(rec.Stars),
		rec.LastUpdated.Format(domain.DateLayout),
		rec.FirstCommit.Format(domain.DateLayout),
		rec.URL,
		strconv.Itoa(rec.Forks),
		strconv.Itoa(rec.OpenIssues),
		language,
		license,
		description,
		strings.Join(rec.Topics, ","),
	}
}
