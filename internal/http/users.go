package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/database/users"
)

// UsersController exposes student listing for the librarian UI.
type UsersController struct {
	users *users.Repository
}

// NewUsersController creates a new users controller.
func NewUsersController(repo *users.Repository) *UsersController {
	return &UsersController{users: repo}
}

// GetStudents returns all student accounts.
func (controller *UsersController) GetStudents(c *gin.Context) {
	students, err := controller.users.GetStudents()
	if err != nil {
		respondInternalError(c, err, "list students")
		return
	}
	c.JSON(http.StatusOK, students)
}
