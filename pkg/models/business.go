package models

import "strings"

// NotAvailable is the placeholder the backend uses for a missing website or phone
const NotAvailable = "N/A"

// SearchRequest is the payload of a job creation request
type SearchRequest struct {
	SearchTerm string `json:"search_term" binding:"required"`
}

// Business is one result row returned by a poll or batch response
type Business struct {
	BusinessName string `json:"business_name"`
	Website      string `json:"website"`
	Phone        string `json:"phone"`
}

// HasPhone reports whether the row carries a usable phone number
func (b Business) HasPhone() bool {
	p := strings.TrimSpace(b.Phone)
	return p != "" && p != NotAvailable
}

// CountPhones returns how many rows carry a phone number
func CountPhones(rows []Business) int {
	n := 0
	for _, r := range rows {
		if r.HasPhone() {
			n++
		}
	}
	return n
}
