package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"mapphone-go/pkg/models"
)

// Export file names served under /download/
const (
	WebsitesCSV = "websites.csv"
	PhonesCSV   = "phones.csv"
)

// phonesCSV renders every row with its website and phone
func phonesCSV(rows []models.Business) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Business Name", "Website", "Phone"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.BusinessName, r.Website, r.Phone}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", PhonesCSV, err)
	}
	return buf.Bytes(), nil
}

// websitesCSV renders only the rows that have a website
func websitesCSV(rows []models.Business) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Business Name", "Website"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.Website == "" || r.Website == models.NotAvailable {
			continue
		}
		if err := w.Write([]string{r.BusinessName, r.Website}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", WebsitesCSV, err)
	}
	return buf.Bytes(), nil
}
