package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/database/stats"
)

// StatsController exposes the dashboard aggregates.
type StatsController struct {
	stats *stats.Repository
}

// NewStatsController creates a new stats controller.
func NewStatsController(repo *stats.Repository) *StatsController {
	return &StatsController{stats: repo}
}

// GetStats returns catalog-wide copy and student counts.
func (controller *StatsController) GetStats(c *gin.Context) {
	result, err := controller.stats.GetStats()
	if err != nil {
		respondInternalError(c, err, "get stats")
		return
	}
	c.JSON(http.StatusOK, result)
}
