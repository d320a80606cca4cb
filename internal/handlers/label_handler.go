package handlers

import (
	"context"
	"net/http"

	"ecg-quiz-service/internal/models"
	"ecg-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type LabelHandler struct {
	Service *service.SampleService
}

func NewLabelHandler(s *service.SampleService) *LabelHandler {
	return &LabelHandler{Service: s}
}

func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels, err := h.Service.ListLabels(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, labels)
}

// CreateLabel registers a new diagnostic label. Teacher or admin only.
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	if !currentUser(c).Role.CanViewOthers() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Teacher or admin role required"})
		return
	}

	var label models.DiagnosticLabel
	if err := c.ShouldBindJSON(&label); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	if label.LabelDesc == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label_desc is required"})
		return
	}

	if err := h.Service.CreateLabel(context.Background(), &label); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, label)
}
