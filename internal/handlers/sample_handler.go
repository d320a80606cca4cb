package handlers

import (
	"context"
	"errors"
	"net/http"

	"ecg-quiz-service/internal/models"
	"ecg-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SampleHandler struct {
	Service *service.SampleService
}

func NewSampleHandler(s *service.SampleService) *SampleHandler {
	return &SampleHandler{Service: s}
}

func (h *SampleHandler) ListSamples(c *gin.Context) {
	samples, err := h.Service.ListSamples(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, samples)
}

// CreateSample registers a new ECG sample. Teacher or admin only.
func (h *SampleHandler) CreateSample(c *gin.Context) {
	if !currentUser(c).Role.CanViewOthers() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Teacher or admin role required"})
		return
	}

	var sample models.EcgSample
	if err := c.ShouldBindJSON(&sample); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	if sample.SamplePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sample_path is required"})
		return
	}

	if err := h.Service.CreateSample(context.Background(), &sample); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sample)
}

// AddSampleLabel associates an existing label with a sample. Teacher or
// admin only.
func (h *SampleHandler) AddSampleLabel(c *gin.Context) {
	if !currentUser(c).Role.CanViewOthers() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Teacher or admin role required"})
		return
	}

	var req struct {
		LabelID string `json:"label_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	if err := h.Service.AddLabel(context.Background(), c.Param("id"), req.LabelID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sample or label not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Label associated"})
}
