package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mapphone-go/pkg/models"
	"mapphone-go/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(count int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewJobService(&services.SampleSource{Count: count}, 30, time.Hour)
	return NewRouter(svc)
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(1), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStartScrapeRequiresTerm(t *testing.T) {
	r := newTestRouter(1)

	for _, body := range []string{`{}`, `{"search_term": "  "}`, `not json`} {
		w := do(t, r, http.MethodPost, "/start_scrape", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Search term is required", decode[models.ErrorResponse](t, w).Error)
	}
}

func TestStartScrapeNoBusinesses(t *testing.T) {
	w := do(t, newTestRouter(0), http.MethodPost, "/start_scrape", `{"search_term": "cafes"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No businesses found", decode[models.ErrorResponse](t, w).Error)
}

func TestBatchFlowAndDownload(t *testing.T) {
	r := newTestRouter(40)

	w := do(t, r, http.MethodPost, "/start_scrape", `{"search_term": "dental clinics in Lahore"}`)
	require.Equal(t, http.StatusOK, w.Code)
	start := decode[models.StartResponse](t, w)
	assert.Equal(t, 40, start.BusinessCount)
	assert.Equal(t, models.StatusReady, start.Status)

	w = do(t, r, http.MethodGet, "/download/phones.csv", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "phones.csv not found", decode[models.ErrorResponse](t, w).Error)

	w = do(t, r, http.MethodPost, "/scrape_batch", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[models.BatchResponse](t, w)
	assert.Len(t, first.Results, 30)
	assert.Equal(t, 10, first.Remaining)

	w = do(t, r, http.MethodPost, "/scrape_batch", `{}`)
	second := decode[models.BatchResponse](t, w)
	assert.Len(t, second.Results, 10)
	assert.Equal(t, 0, second.Remaining)

	w = do(t, r, http.MethodPost, "/scrape_batch", `{}`)
	done := decode[models.BatchResponse](t, w)
	assert.Equal(t, models.StatusComplete, done.Status)
	assert.Equal(t, "/download/phones.csv", done.PhonesCSV)

	w = do(t, r, http.MethodGet, done.PhonesCSV, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Business Name,Website,Phone\n"))

	w = do(t, r, http.MethodPost, "/scrape_batch", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No businesses available", decode[models.ErrorResponse](t, w).Error)
}

func TestDownloadRejectsUnknownFile(t *testing.T) {
	w := do(t, newTestRouter(1), http.MethodGet, "/download/secrets.txt", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid file", decode[models.ErrorResponse](t, w).Error)
}

func TestScrapeStatus(t *testing.T) {
	r := newTestRouter(3)

	w := do(t, r, http.MethodGet, "/scrape_status/unknown", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusNotFound, decode[models.StatusResponse](t, w).Status)

	w = do(t, r, http.MethodPost, "/start_scrape", `{"search_term": "cafes"}`)
	start := decode[models.StartResponse](t, w)
	require.NotEmpty(t, start.JobID)

	w = do(t, r, http.MethodGet, "/scrape_status/"+start.JobID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusRunning, decode[models.StatusResponse](t, w).Status)
}
