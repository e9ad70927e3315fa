package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// Solver is the fix-suggestion capability. *analyzer.Solver implements
// it; tests substitute a fake.
type Solver interface {
	Solve(ctx context.Context, issue string) string
}

// GenerateSolution returns a handler for POST /api/generate-solution.
//
// Contract: a non-empty issue always gets a 200 with a solution string.
// AI failures degrade inside the Solver to static fallbacks — this
// endpoint never surfaces a server error for them.
func GenerateSolution(s Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SolutionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
		if strings.TrimSpace(req.Issue) == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Issue is required"})
			return
		}

		c.JSON(http.StatusOK, models.SolutionResponse{
			Solution: s.Solve(c.Request.Context(), req.Issue),
		})
	}
}
