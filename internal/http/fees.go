package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/config"
	"github.com/unilib/backend/internal/database/discounts"
	"github.com/unilib/backend/internal/fees"
)

// FeesController exposes the overdue fine estimator.
type FeesController struct {
	discounts *discounts.Repository
	cfg       config.Fees
}

// NewFeesController creates a new fees controller.
func NewFeesController(repo *discounts.Repository, cfg config.Fees) *FeesController {
	return &FeesController{discounts: repo, cfg: cfg}
}

// Estimate calculates the fine for a number of overdue days. The daily
// rate defaults from configuration, and an optional discountId applies
// an active, unexpired discount.
func (controller *FeesController) Estimate(c *gin.Context) {
	daysOverdue, err := strconv.Atoi(c.DefaultQuery("daysOverdue", "0"))
	if err != nil {
		respondBadRequest(c, "daysOverdue must be an integer")
		return
	}

	dailyFine := controller.cfg.DailyFine
	if raw := c.Query("dailyFine"); raw != "" {
		dailyFine, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondBadRequest(c, "dailyFine must be a number")
			return
		}
	}

	discountPercent := 0
	if raw := c.Query("discountId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondBadRequest(c, "invalid discountId")
			return
		}
		discount, err := controller.discounts.GetActiveDiscount(uint(id), time.Now())
		if err != nil {
			if errors.Is(err, discounts.ErrDiscountNotFound) {
				respondNotFound(c, "discount")
				return
			}
			respondInternalError(c, err, "look up discount")
			return
		}
		discountPercent = discount.Percentage
	}

	estimate, err := fees.Calculate(daysOverdue, dailyFine, discountPercent)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, estimate)
}
