package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"ecg-quiz-service/internal/generator"
	"ecg-quiz-service/internal/models"
	"ecg-quiz-service/internal/performance"
	"ecg-quiz-service/internal/repository"
	"ecg-quiz-service/internal/selection"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateOptions are the tunables of personalized quiz generation. Zero
// values fall back to the service defaults.
type GenerateOptions struct {
	NumQuestions          int
	ChoicesPerQuestion    int
	PersonalizationWeight float64
	RecencyWeight         float64
}

func (o *GenerateOptions) applyDefaults() {
	if o.NumQuestions <= 0 {
		o.NumQuestions = 5
	}
	if o.ChoicesPerQuestion <= 0 {
		o.ChoicesPerQuestion = generator.DefaultChoicesPerQuestion
	}
	if o.PersonalizationWeight <= 0 {
		o.PersonalizationWeight = 0.7
	}
	if o.RecencyWeight <= 0 {
		o.RecencyWeight = 0.5
	}
}

type QuizService struct {
	Repo        *repository.QuizRepository
	SampleRepo  *repository.SampleRepository
	LabelRepo   *repository.LabelRepository
	AttemptRepo *repository.AttemptRepository

	rand   *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

func NewQuizService(
	repo *repository.QuizRepository,
	sampleRepo *repository.SampleRepository,
	labelRepo *repository.LabelRepository,
	attemptRepo *repository.AttemptRepository,
	logger *zap.Logger,
) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		Repo:        repo,
		SampleRepo:  sampleRepo,
		LabelRepo:   labelRepo,
		AttemptRepo: attemptRepo,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		logger:      logger,
	}
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	quiz, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.Repo.FindAll(ctx)
}

// GeneratePersonalized builds a quiz weighted toward the user's weakest
// diagnostic labels. The whole computation runs against a fresh snapshot of
// the user's history; nothing is cached between calls.
func (s *QuizService) GeneratePersonalized(ctx context.Context, user models.User, opts GenerateOptions) (*models.Quiz, error) {
	opts.applyDefaults()

	eligible, pool, labelsByID, err := s.loadPool(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequirements(eligible, pool, opts.ChoicesPerQuestion); err != nil {
		return nil, err
	}

	completedQuizzes, err := s.AttemptRepo.CountCompletedByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count completed attempts: %w", err)
	}

	accuracyByLabel, err := s.labelAccuracy(ctx, user.ID, opts.RecencyWeight)
	if err != nil {
		return nil, err
	}

	selCfg := selection.DefaultConfig()
	selCfg.MaxPersonalization = opts.PersonalizationWeight
	selector := selection.NewSampleSelector(selCfg, s.rand)
	selected := selector.Select(eligible, accuracyByLabel, opts.NumQuestions, completedQuizzes)

	assembler := generator.NewAssembler(s.rand)
	questions := assembler.BuildQuestions(selected, labelsByID, pool, opts.ChoicesPerQuestion)

	now := s.now()
	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("%s_%s", user.Username, now.Format("20060102_150405")),
		Description: fmt.Sprintf("A personalized quiz for %s", user.Username),
		CreatedAt:   now,
		Questions:   questions,
	}
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("persist quiz: %w", err)
	}

	s.logger.Info("generated personalized quiz",
		zap.String("quiz_id", quiz.ID),
		zap.String("user_id", user.ID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("completed_quizzes", completedQuizzes),
	)
	return quiz, nil
}

// GenerateRandom builds a quiz from uniformly sampled eligible samples,
// ignoring performance history.
func (s *QuizService) GenerateRandom(ctx context.Context, user models.User, numQuestions, choicesPerQuestion int) (*models.Quiz, error) {
	if numQuestions <= 0 {
		numQuestions = 5
	}
	if choicesPerQuestion <= 0 {
		choicesPerQuestion = generator.DefaultChoicesPerQuestion
	}

	eligible, pool, labelsByID, err := s.loadPool(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequirements(eligible, pool, choicesPerQuestion); err != nil {
		return nil, err
	}

	selector := selection.NewSampleSelector(nil, s.rand)
	selected := selector.SelectRandom(eligible, numQuestions)

	assembler := generator.NewAssembler(s.rand)
	questions := assembler.BuildQuestions(selected, labelsByID, pool, choicesPerQuestion)

	now := s.now()
	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("%s_%s", user.Username, now.Format("20060102_150405")),
		Description: fmt.Sprintf("A randomly generated quiz for %s", user.Username),
		CreatedAt:   now,
		Questions:   questions,
	}
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("persist quiz: %w", err)
	}

	s.logger.Info("generated random quiz",
		zap.String("quiz_id", quiz.ID),
		zap.String("user_id", user.ID),
		zap.Int("questions", len(quiz.Questions)),
	)
	return quiz, nil
}

func (s *QuizService) loadPool(ctx context.Context) ([]models.EcgSample, []models.DiagnosticLabel, map[string]models.DiagnosticLabel, error) {
	eligible, err := s.SampleRepo.FindEligible(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load eligible samples: %w", err)
	}
	pool, err := s.LabelRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load label pool: %w", err)
	}
	labelsByID := make(map[string]models.DiagnosticLabel, len(pool))
	for _, l := range pool {
		labelsByID[l.ID] = l
	}
	return eligible, pool, labelsByID, nil
}

// labelAccuracy recomputes the user's time-weighted accuracy per label from
// their completed attempts.
func (s *QuizService) labelAccuracy(ctx context.Context, userID string, recencyWeight float64) (map[string]float64, error) {
	attempts, err := s.AttemptRepo.FindCompletedByUser(ctx, userID, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("load attempt history: %w", err)
	}

	samples, err := s.SampleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	primaryLabelBySample := make(map[string]string, len(samples))
	for i := range samples {
		primaryLabelBySample[samples[i].ID] = samples[i].PrimaryLabelID()
	}

	var records []performance.AttemptRecord
	for _, attempt := range attempts {
		if !attempt.Completed() {
			continue
		}
		for _, qa := range attempt.QuestionAttempts {
			labelID := primaryLabelBySample[qa.SampleID]
			if labelID == "" {
				continue
			}
			records = append(records, performance.AttemptRecord{
				LabelID:     labelID,
				IsCorrect:   qa.IsCorrect,
				CompletedAt: *attempt.CompletedAt,
			})
		}
	}

	cfg := performance.DefaultConfig()
	cfg.RecencyWeight = recencyWeight
	ledger := performance.NewLedger(cfg)
	scores := ledger.BuildLabelScores(s.now(), records)
	return performance.AccuracyByLabel(scores), nil
}

func validateRequirements(eligible []models.EcgSample, pool []models.DiagnosticLabel, choicesPerQuestion int) error {
	if len(eligible) == 0 {
		return ErrNoSamples
	}
	if len(pool) < choicesPerQuestion {
		return ErrNotEnoughLabels
	}
	return nil
}
