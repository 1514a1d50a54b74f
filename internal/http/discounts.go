package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/database/discounts"
	"github.com/unilib/backend/internal/entities"
)

// DiscountsController exposes discount CRUD.
type DiscountsController struct {
	discounts *discounts.Repository
}

// NewDiscountsController creates a new discounts controller.
func NewDiscountsController(repo *discounts.Repository) *DiscountsController {
	return &DiscountsController{discounts: repo}
}

type createDiscountRequest struct {
	Title      string `json:"title" binding:"required"`
	Percentage int    `json:"percentage" binding:"required"`
	ValidUntil string `json:"validUntil" binding:"required"` // ISO date
	Active     *bool  `json:"active"`
}

// GetDiscounts returns all discounts.
func (controller *DiscountsController) GetDiscounts(c *gin.Context) {
	list, err := controller.discounts.GetDiscounts()
	if err != nil {
		respondInternalError(c, err, "list discounts")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateDiscount adds a new discount.
func (controller *DiscountsController) CreateDiscount(c *gin.Context) {
	var req createDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title, percentage and validUntil are required")
		return
	}
	if req.Percentage < 1 || req.Percentage > 100 {
		respondBadRequest(c, "percentage must be between 1 and 100")
		return
	}

	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		respondBadRequest(c, "validUntil must be an ISO date")
		return
	}

	discount := entities.Discount{
		Title:      req.Title,
		Percentage: req.Percentage,
		ValidUntil: validUntil,
		Active:     true,
	}
	if req.Active != nil {
		discount.Active = *req.Active
	}

	if err := controller.discounts.CreateDiscount(&discount); err != nil {
		respondInternalError(c, err, "create discount")
		return
	}

	c.JSON(http.StatusCreated, discount)
}
