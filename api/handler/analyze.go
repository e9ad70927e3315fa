package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohitmenonhart-xhunter/starweb-p1/cache"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
	"github.com/rohitmenonhart-xhunter/starweb-p1/webhook"
)

// Pipeline is the audit pipeline capability the analyze handler drives.
// *audit.Service implements it; tests substitute a fake.
type Pipeline interface {
	Analyze(ctx context.Context, url string) (*models.FullAnalysis, error)
}

// WebhookSink carries the optional analysis.completed delivery target.
type WebhookSink struct {
	URL    string
	Secret string
}

// Analyze returns a handler for POST /analyze.
//
// Orchestration flow:
//  1. Parse & validate request — scheme check happens before any
//     browser work.
//  2. Cache lookup (when a TTL is configured).
//  3. Pipeline: capture → extract → analyze.
//  4. Respond 200 with the FullAnalysis; failures collapse to the flat
//     {error} body.
func Analyze(p Pipeline, cc *cache.Cache, sink WebhookSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
		if !req.ValidURL() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid URL format"})
			return
		}

		cacheKey := cache.Key(req.URL)
		if cc != nil {
			if cached, hit := cc.Get(cacheKey); hit {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		result, err := p.Analyze(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}

		if cc != nil {
			cc.Set(cacheKey, result)
		}

		if sink.URL != "" {
			webhook.DeliverAsync(sink.URL, sink.Secret, &webhook.Event{
				Type:      "analysis.completed",
				URL:       req.URL,
				Timestamp: time.Now().Unix(),
				Data: map[string]any{
					"title":       result.MainPage.Title,
					"links":       len(result.MainPage.Links),
					"duration_ms": time.Since(start).Milliseconds(),
				},
			})
		}

		c.JSON(http.StatusOK, result)
	}
}

// respondError maps an AuditError to an HTTP status and writes the flat
// {error} body the analyze contract specifies.
func respondError(c *gin.Context, err error) {
	var auditErr *models.AuditError
	if !errors.As(err, &auditErr) {
		auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
	}
	c.JSON(mapErrorToStatus(auditErr), models.ErrorResponse{Error: auditErr.Message})
}

// mapErrorToStatus translates error codes to HTTP status codes. The
// analyze contract is "fail loud": every pipeline failure surfaces.
func mapErrorToStatus(e *models.AuditError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
