package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"mapphone-go/pkg/models"
)

// Source supplies the businesses a search term resolves to
type Source interface {
	Businesses(ctx context.Context, term string) ([]models.Business, error)
}

// FixtureSource serves businesses from a JSON file holding an array of result rows.
// The file is read on every call so it can be edited while the server runs.
type FixtureSource struct {
	path string
}

// NewFixtureSource creates a source backed by the JSON file at path
func NewFixtureSource(path string) *FixtureSource {
	return &FixtureSource{path: path}
}

func (s *FixtureSource) Businesses(ctx context.Context, term string) ([]models.Business, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var rows []models.Business
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", s.path, err)
	}
	return normalize(rows), nil
}

// SampleSource generates a deterministic set of rows named after the search term
type SampleSource struct {
	Count int
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func (s *SampleSource) Businesses(ctx context.Context, term string) ([]models.Business, error) {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(term), "-"), "-")
	if slug == "" {
		slug = "business"
	}

	rows := make([]models.Business, s.Count)
	for i := range rows {
		n := i + 1
		rows[i] = models.Business{
			BusinessName: fmt.Sprintf("%s #%d", strings.TrimSpace(term), n),
			Website:      fmt.Sprintf("https://%s-%d.example.com", slug, n),
			Phone:        fmt.Sprintf("+92300%07d", n),
		}
		if n%5 == 0 {
			rows[i].Website = ""
		}
		if n%7 == 0 {
			rows[i].Phone = ""
		}
	}
	return normalize(rows), nil
}

// normalize fills missing websites and phones with the N/A placeholder
func normalize(rows []models.Business) []models.Business {
	for i := range rows {
		if strings.TrimSpace(rows[i].Website) == "" {
			rows[i].Website = models.NotAvailable
		}
		if strings.TrimSpace(rows[i].Phone) == "" {
			rows[i].Phone = models.NotAvailable
		}
	}
	return rows
}
