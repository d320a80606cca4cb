package service

import (
	"context"
	"errors"
	"fmt"

	"ecg-quiz-service/internal/models"
	"ecg-quiz-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// SampleService manages the quiz pool: ECG samples, diagnostic labels, and
// their associations. Everything else in the service reads this pool.
type SampleService struct {
	SampleRepo *repository.SampleRepository
	LabelRepo  *repository.LabelRepository
}

func NewSampleService(sampleRepo *repository.SampleRepository, labelRepo *repository.LabelRepository) *SampleService {
	return &SampleService{SampleRepo: sampleRepo, LabelRepo: labelRepo}
}

func (s *SampleService) ListSamples(ctx context.Context) ([]models.EcgSample, error) {
	return s.SampleRepo.FindAll(ctx)
}

func (s *SampleService) CreateSample(ctx context.Context, sample *models.EcgSample) error {
	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}
	if sample.LabelIDs == nil {
		sample.LabelIDs = []string{}
	}
	return s.SampleRepo.Create(ctx, sample)
}

// AddLabel associates an existing label with an existing sample.
func (s *SampleService) AddLabel(ctx context.Context, sampleID, labelID string) error {
	if _, err := s.LabelRepo.FindByID(ctx, labelID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("resolve label: %w", err)
	}
	if err := s.SampleRepo.AddLabel(ctx, sampleID, labelID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("associate label: %w", err)
	}
	return nil
}

func (s *SampleService) ListLabels(ctx context.Context) ([]models.DiagnosticLabel, error) {
	return s.LabelRepo.FindAll(ctx)
}

func (s *SampleService) CreateLabel(ctx context.Context, label *models.DiagnosticLabel) error {
	if label.ID == "" {
		label.ID = uuid.NewString()
	}
	return s.LabelRepo.Create(ctx, label)
}
