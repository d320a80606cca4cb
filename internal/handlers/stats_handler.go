package handlers

import (
	"context"
	"net/http"
	"strconv"

	"ecg-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Service *service.StatsService
}

func NewStatsHandler(s *service.StatsService) *StatsHandler {
	return &StatsHandler{Service: s}
}

// GetUserStatistics returns a user's quiz history summary. Students may only
// view their own; teachers and admins may view anyone's. Optional query
// params days_limit and quiz_limit bound the window.
func (h *StatsHandler) GetUserStatistics(c *gin.Context) {
	user := currentUser(c)
	targetID := c.Param("userId")
	if targetID != user.ID && !user.Role.CanViewOthers() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this user's statistics"})
		return
	}

	daysLimit, ok := positiveIntQuery(c, "days_limit")
	if !ok {
		return
	}
	quizLimit, ok := positiveIntQuery(c, "quiz_limit")
	if !ok {
		return
	}

	stats, err := h.Service.UserStatistics(context.Background(), targetID, daysLimit, quizLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// positiveIntQuery parses an optional positive integer query param, writing
// a 400 response and returning ok=false on a bad value. Absent params yield
// zero.
func positiveIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return v, true
}
