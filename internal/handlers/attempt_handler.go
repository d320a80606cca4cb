package handlers

import (
	"context"
	"errors"
	"net/http"

	"ecg-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

// SubmitAttempt grades a full batch of answers for one quiz and returns the
// score summary. Answers that do not resolve are skipped, not rejected.
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		QuizID  string                     `json:"quiz" binding:"required"`
		Answers []service.AnswerSubmission `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	summary, err := h.Service.Grade(context.Background(), user.ID, req.QuizID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, summary)
}

// ListAttempts returns attempt history; teachers and admins see everyone's.
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	attempts, err := h.Service.ListForUser(context.Background(), currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// CheckAnswer verifies one question/choice pair and reveals the correct
// choice for immediate feedback.
func (h *AttemptHandler) CheckAnswer(c *gin.Context) {
	var req struct {
		QuestionID string `json:"question_id" binding:"required"`
		ChoiceID   string `json:"choice_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	result, err := h.Service.CheckAnswer(context.Background(), req.QuestionID, req.ChoiceID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid question or choice"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
