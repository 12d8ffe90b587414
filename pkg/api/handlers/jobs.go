package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"mapphone-go/pkg/models"
	"mapphone-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// StartScrape resolves a search term and opens a new job
func StartScrape(service *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: services.ErrNoSearchTerm.Error()})
			return
		}

		resp, err := service.Start(c.Request.Context(), req.SearchTerm)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ScrapeStatus reports a poll job; unknown ids answer 200 with status not_found
func ScrapeStatus(service *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := service.Status(c.Request.Context(), c.Param("job_id"))
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ScrapeBatch hands out the next batch of the open session
func ScrapeBatch(service *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := service.NextBatch(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// Download serves the latest CSV export
func Download(service *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filename")

		data, err := service.Download(name)
		if err != nil {
			if errors.Is(err, services.ErrFileNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf("%s not found", name)})
				return
			}
			writeError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNoSearchTerm),
		errors.Is(err, services.ErrNoBusinesses),
		errors.Is(err, services.ErrNoSession),
		errors.Is(err, services.ErrInvalidFile):
		status = http.StatusBadRequest
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}
