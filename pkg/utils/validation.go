package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptySearchTerm is returned when the search term is blank after trimming
var ErrEmptySearchTerm = fmt.Errorf("search term is required")

// ValidateSearchTerm trims a search term and rejects it when nothing remains.
func ValidateSearchTerm(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptySearchTerm
	}
	return s, nil
}

// ValidateBaseURL trims and validates a backend base URL, returning it without a trailing slash.
func ValidateBaseURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL: scheme must be http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base URL: missing host")
	}
	return strings.TrimSuffix(s, "/"), nil
}
