package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"ecg-quiz-service/internal/models"
	"ecg-quiz-service/internal/repository"
)

// LabelStatistic is a user's accuracy on questions whose sample carries a
// given diagnostic label.
type LabelStatistic struct {
	Label           string  `json:"label"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
}

// UserStatistics summarizes a user's quiz history, optionally bounded by a
// day window or a number of most recent quizzes.
type UserStatistics struct {
	TotalExams      int              `json:"total_exams"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	OverallAccuracy float64          `json:"overall_accuracy"`
	LabelStatistics []LabelStatistic `json:"label_statistics"`
}

type StatsService struct {
	AttemptRepo *repository.AttemptRepository
	SampleRepo  *repository.SampleRepository
	LabelRepo   *repository.LabelRepository

	now func() time.Time
}

func NewStatsService(attemptRepo *repository.AttemptRepository, sampleRepo *repository.SampleRepository, labelRepo *repository.LabelRepository) *StatsService {
	return &StatsService{
		AttemptRepo: attemptRepo,
		SampleRepo:  sampleRepo,
		LabelRepo:   labelRepo,
		now:         time.Now,
	}
}

// UserStatistics aggregates attempt counts and per-label accuracy for one
// user. daysLimit <= 0 means no time bound; quizLimit <= 0 means all
// attempts.
func (s *StatsService) UserStatistics(ctx context.Context, userID string, daysLimit, quizLimit int) (*UserStatistics, error) {
	var since *time.Time
	if daysLimit > 0 {
		t := s.now().AddDate(0, 0, -daysLimit)
		since = &t
	}

	attempts, err := s.AttemptRepo.FindByUserWindow(ctx, userID, since, quizLimit)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}

	samples, err := s.SampleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	labels, err := s.LabelRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}

	labelsBySample := make(map[string][]string, len(samples))
	for i := range samples {
		labelsBySample[samples[i].ID] = samples[i].LabelIDs
	}

	return aggregateStatistics(attempts, labelsBySample, labels), nil
}

// aggregateStatistics folds attempts into overall and per-label counts. A
// question counts toward every label its sample carries, not only the
// primary one used for selection weighting.
func aggregateStatistics(attempts []models.QuizAttempt, labelsBySample map[string][]string, labels []models.DiagnosticLabel) *UserStatistics {
	stats := &UserStatistics{TotalExams: len(attempts)}
	perLabel := make(map[string]*LabelStatistic, len(labels))
	for _, l := range labels {
		perLabel[l.ID] = &LabelStatistic{Label: l.LabelDesc}
	}

	for _, attempt := range attempts {
		for _, qa := range attempt.QuestionAttempts {
			stats.TotalQuestions++
			if qa.IsCorrect {
				stats.CorrectAnswers++
			}
			for _, labelID := range labelsBySample[qa.SampleID] {
				ls, ok := perLabel[labelID]
				if !ok {
					continue
				}
				ls.TotalAttempts++
				if qa.IsCorrect {
					ls.CorrectAttempts++
				}
			}
		}
	}

	if stats.TotalQuestions > 0 {
		stats.OverallAccuracy = round2(float64(stats.CorrectAnswers) / float64(stats.TotalQuestions) * 100)
	}

	stats.LabelStatistics = make([]LabelStatistic, 0, len(labels))
	for _, l := range labels {
		ls := perLabel[l.ID]
		if ls.TotalAttempts > 0 {
			ls.Accuracy = round2(float64(ls.CorrectAttempts) / float64(ls.TotalAttempts) * 100)
		}
		stats.LabelStatistics = append(stats.LabelStatistics, *ls)
	}

	return stats
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
