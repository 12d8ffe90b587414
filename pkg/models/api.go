package models

// StartResponse is returned by POST /start_scrape.
// Poll-style backends fill JobID; batch-style backends fill the rest.
type StartResponse struct {
	JobID         string     `json:"job_id,omitempty"`
	Message       string     `json:"message,omitempty"`
	Status        JobStatus  `json:"status,omitempty"`
	BusinessCount int        `json:"business_count,omitempty"`
	Results       []Business `json:"results,omitempty"`
	Remaining     *int       `json:"remaining,omitempty"`
	WebsitesCSV   string     `json:"websites_csv,omitempty"`
	PhonesCSV     string     `json:"phones_csv,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// StatusResponse is returned by GET /scrape_status/{job_id}
type StatusResponse struct {
	Status      JobStatus  `json:"status"`
	Result      []Business `json:"result,omitempty"`
	WebsitesCSV string     `json:"websites_csv,omitempty"`
	PhonesCSV   string     `json:"phones_csv,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Downloads returns the CSV links carried by the response
func (r *StatusResponse) Downloads() DownloadLinks {
	return DownloadLinks{WebsitesCSV: r.WebsitesCSV, PhonesCSV: r.PhonesCSV}
}

// BatchResponse is returned by POST /scrape_batch
type BatchResponse struct {
	Message     string     `json:"message,omitempty"`
	Status      JobStatus  `json:"status"`
	Results     []Business `json:"results"`
	Remaining   int        `json:"remaining"`
	NextBatch   int        `json:"next_batch,omitempty"`
	WebsitesCSV string     `json:"websites_csv,omitempty"`
	PhonesCSV   string     `json:"phones_csv,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Downloads returns the CSV links carried by the response
func (r *BatchResponse) Downloads() DownloadLinks {
	return DownloadLinks{WebsitesCSV: r.WebsitesCSV, PhonesCSV: r.PhonesCSV}
}

// ErrorResponse is the body of any failed call
type ErrorResponse struct {
	Error string `json:"error"`
}
