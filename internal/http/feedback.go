package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/database/feedback"
	"github.com/unilib/backend/internal/entities"
	"github.com/unilib/backend/internal/tasks"
)

// FeedbackController accepts visitor feedback and hands it to the mail
// queue.
type FeedbackController struct {
	feedback   *feedback.Repository
	taskClient *tasks.Client
}

// NewFeedbackController creates a new feedback controller. taskClient
// may be nil when the queue is disabled; feedback is then only stored.
func NewFeedbackController(repo *feedback.Repository, taskClient *tasks.Client) *FeedbackController {
	return &FeedbackController{feedback: repo, taskClient: taskClient}
}

type createFeedbackRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateFeedback stores a feedback message and enqueues its delivery.
func (controller *FeedbackController) CreateFeedback(c *gin.Context) {
	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name, email and message are required")
		return
	}

	fb := entities.Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := controller.feedback.CreateFeedback(&fb); err != nil {
		respondInternalError(c, err, "create feedback")
		return
	}

	if controller.taskClient != nil {
		// Delivery failure must not fail the submission
		if _, err := controller.taskClient.Add(tasks.FeedbackMailTask{FeedbackID: fb.ID}).Save(); err != nil {
			log.Printf("Failed to enqueue feedback mail for feedback %d: %v", fb.ID, err)
		}
	}

	c.JSON(http.StatusCreated, fb)
}
