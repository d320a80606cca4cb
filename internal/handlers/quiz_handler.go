package handlers

import (
	"context"
	"errors"
	"net/http"

	"ecg-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

type generateRequest struct {
	NumQuestions          int     `json:"num_questions"`
	ChoicesPerQuestion    int     `json:"choices_per_question"`
	PersonalizationWeight float64 `json:"personalization_weight"`
	RecencyWeight         float64 `json:"recency_weight"`
}

// GenerateQuiz builds a personalized quiz for the caller. Students, teachers
// and admins may all generate; the target user is always the caller.
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	user := currentUser(c)
	if !user.Role.Valid() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only students, teachers, and administrators can generate quizzes"})
		return
	}

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}
	}
	// This deployment path asks six choices per question by default.
	if req.ChoicesPerQuestion <= 0 {
		req.ChoicesPerQuestion = 6
	}

	quiz, err := h.Service.GeneratePersonalized(context.Background(), user, service.GenerateOptions{
		NumQuestions:          req.NumQuestions,
		ChoicesPerQuestion:    req.ChoicesPerQuestion,
		PersonalizationWeight: req.PersonalizationWeight,
		RecencyWeight:         req.RecencyWeight,
	})
	if err != nil {
		if service.IsInsufficientData(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// GenerateRandomQuiz builds a quiz without performance weighting.
func (h *QuizHandler) GenerateRandomQuiz(c *gin.Context) {
	user := currentUser(c)
	if !user.Role.Valid() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only students, teachers, and administrators can generate quizzes"})
		return
	}

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}
	}

	quiz, err := h.Service.GenerateRandom(context.Background(), user, req.NumQuestions, req.ChoicesPerQuestion)
	if err != nil {
		if service.IsInsufficientData(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.Service.GetQuiz(context.Background(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.Service.ListQuizzes(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}
