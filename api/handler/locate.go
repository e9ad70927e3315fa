package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohitmenonhart-xhunter/starweb-p1/locator"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// LocateIssue returns a handler for POST /api/locate-issue.
//
// The service holds no state between requests, so the caller posts back
// the analysis collections together with a tagged issue reference.
// "Not found" is a regular 200 outcome the client renders as a generic
// indicator, never an error status.
func LocateIssue() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LocateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}

		box, found := locator.Resolve(locator.Ref{
			Issue:    req.Issue,
			Category: req.Category,
			Index:    req.Index,
		}, &req.Content, &req.Assets, req.Links)

		resp := models.LocateResponse{Found: found}
		if found {
			resp.Location = &box
		}
		c.JSON(http.StatusOK, resp)
	}
}
