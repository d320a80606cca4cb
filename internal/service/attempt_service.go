package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecg-quiz-service/internal/models"
	"ecg-quiz-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AnswerSubmission is one submitted answer in a batch grading request.
type AnswerSubmission struct {
	QuestionID       string `json:"question"`
	SelectedChoiceID string `json:"selected_choice"`
}

// GradeSummary is the grading result. TotalQuestions counts answers that
// were submitted and resolved, not the quiz's full question count.
type GradeSummary struct {
	QuizAttemptID  string  `json:"quiz_attempt_id"`
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
}

// CheckAnswerResult reveals the correctness of a single choice and the
// question's correct choice, for immediate-feedback clients.
type CheckAnswerResult struct {
	IsCorrect         bool   `json:"is_correct"`
	CorrectChoiceID   string `json:"correct_choice_id"`
	CorrectChoiceText string `json:"correct_choice_text"`
}

type AttemptService struct {
	Repo     *repository.AttemptRepository
	QuizRepo *repository.QuizRepository

	now    func() time.Time
	logger *zap.Logger
}

func NewAttemptService(repo *repository.AttemptRepository, quizRepo *repository.QuizRepository, logger *zap.Logger) *AttemptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttemptService{
		Repo:     repo,
		QuizRepo: quizRepo,
		now:      time.Now,
		logger:   logger,
	}
}

// Grade validates a batch of submitted answers against the quiz, persists
// the completed attempt with its question attempts in one write, and returns
// the score summary. Answers that reference an unknown question, or a choice
// from a different question, are silently dropped from scoring.
func (s *AttemptService) Grade(ctx context.Context, userID, quizID string, answers []AnswerSubmission) (*GradeSummary, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	questionAttempts, correct := gradeAnswers(quiz, answers)

	now := s.now()
	attempt := &models.QuizAttempt{
		ID:               uuid.NewString(),
		UserID:           userID,
		QuizID:           quiz.ID,
		StartedAt:        now,
		CompletedAt:      &now,
		QuestionAttempts: questionAttempts,
	}
	if err := s.Repo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}

	total := len(questionAttempts)
	score := computeScore(correct, total)

	s.logger.Info("graded quiz attempt",
		zap.String("attempt_id", attempt.ID),
		zap.String("quiz_id", quiz.ID),
		zap.String("user_id", userID),
		zap.Int("submitted", len(answers)),
		zap.Int("resolved", total),
		zap.Float64("score", score),
	)

	return &GradeSummary{
		QuizAttemptID:  attempt.ID,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
	}, nil
}

// gradeAnswers resolves each submitted answer against the quiz. An answer
// whose question is not in the quiz, or whose choice is not in that
// question, is skipped rather than failing the batch.
func gradeAnswers(quiz *models.Quiz, answers []AnswerSubmission) ([]models.QuestionAttempt, int) {
	attempts := make([]models.QuestionAttempt, 0, len(answers))
	correct := 0

	for _, answer := range answers {
		question := quiz.FindQuestion(answer.QuestionID)
		if question == nil {
			continue
		}
		choice := question.FindChoice(answer.SelectedChoiceID)
		if choice == nil {
			continue
		}

		if choice.IsCorrect {
			correct++
		}
		attempts = append(attempts, models.QuestionAttempt{
			QuestionID:       question.ID,
			SampleID:         question.SampleID,
			SelectedChoiceID: choice.ID,
			IsCorrect:        choice.IsCorrect,
		})
	}

	return attempts, correct
}

// computeScore is the percentage of resolved answers that were correct,
// defined as 0 when nothing resolved.
func computeScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// CheckAnswer resolves a single question/choice pair and reveals the correct
// choice.
func (s *AttemptService) CheckAnswer(ctx context.Context, questionID, choiceID string) (*CheckAnswerResult, error) {
	quiz, err := s.QuizRepo.FindByQuestionID(ctx, questionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve question: %w", err)
	}

	question := quiz.FindQuestion(questionID)
	if question == nil {
		return nil, ErrNotFound
	}
	choice := question.FindChoice(choiceID)
	if choice == nil {
		return nil, ErrNotFound
	}
	correctChoice := question.CorrectChoice()
	if correctChoice == nil {
		return nil, ErrNotFound
	}

	return &CheckAnswerResult{
		IsCorrect:         choice.IsCorrect,
		CorrectChoiceID:   correctChoice.ID,
		CorrectChoiceText: correctChoice.Text,
	}, nil
}

// ListForUser returns attempt history. Teachers and admins see every
// attempt; students see only their own.
func (s *AttemptService) ListForUser(ctx context.Context, user models.User) ([]models.QuizAttempt, error) {
	if user.Role.CanViewOthers() {
		return s.Repo.FindAll(ctx)
	}
	return s.Repo.FindByUser(ctx, user.ID)
}
