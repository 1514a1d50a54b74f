package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/database/loans"
)

// LoansController exposes the loan ledger over the transactions API.
type LoansController struct {
	loans *loans.Repository
}

// NewLoansController creates a new loans controller.
func NewLoansController(repo *loans.Repository) *LoansController {
	return &LoansController{loans: repo}
}

type issueLoanRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	BookID  uint   `json:"bookId" binding:"required"`
	DueDate string `json:"dueDate" binding:"required"` // ISO date or RFC 3339
}

// parseDueDate accepts both a bare ISO date and a full RFC 3339
// timestamp, the two shapes the client sends.
func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// ListLoans returns all loans joined with book and borrower records,
// most recently issued first.
func (controller *LoansController) ListLoans(c *gin.Context) {
	details, err := controller.loans.ListLoans()
	if err != nil {
		respondInternalError(c, err, "list loans")
		return
	}
	c.JSON(http.StatusOK, details)
}

// IssueLoan lends a book copy to a borrower.
func (controller *LoansController) IssueLoan(c *gin.Context) {
	var req issueLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "userId, bookId and dueDate are required")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondBadRequest(c, "dueDate must be an ISO date")
		return
	}

	detail, err := controller.loans.IssueLoan(req.UserID, req.BookID, dueDate)
	if err != nil {
		switch {
		case errors.Is(err, loans.ErrOutOfStock):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "out_of_stock"})
		case errors.Is(err, loans.ErrDueDateInPast):
			respondBadRequest(c, err.Error())
		case errors.Is(err, loans.ErrBookNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, loans.ErrUserNotFound):
			respondNotFound(c, "borrower")
		default:
			respondInternalError(c, err, "issue loan")
		}
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// ReturnLoan marks a loan as returned.
func (controller *LoansController) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := controller.loans.ReturnLoan(id)
	if err != nil {
		if errors.Is(err, loans.ErrLoanNotFound) {
			respondNotFound(c, "loan")
			return
		}
		respondInternalError(c, err, "return loan")
		return
	}

	c.JSON(http.StatusOK, detail)
}
