package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// DuplicateWindow is the minimum age of the previous submission for the same
// (user, quiz) pair before a new one is accepted.
const DuplicateWindow = 2 * time.Minute

type SubmissionService interface {
	Submit(userID, quizID uint, req dto.QuizSubmitDTO) (*dto.SubmitResultDTO, error)
}

type submissionService struct {
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	now          func() time.Time
}

func NewSubmissionService(questionRepo repository.QuestionRepository, resultRepo repository.ResultRepository) SubmissionService {
	return &submissionService{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		now:          time.Now,
	}
}

// Submit grades a user's answers against the quiz's questions and records the
// result. A repeat submission for the same quiz inside DuplicateWindow is
// rejected with a DuplicateSubmissionError instead of being inserted.
func (s *submissionService) Submit(userID, quizID uint, req dto.QuizSubmitDTO) (*dto.SubmitResultDTO, error) {
	previous, err := s.resultRepo.FindLatestByUserAndQuiz(userID, quizID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("Submit: failed to check for prior submission")
		return nil, fmt.Errorf("error checking prior submissions: %w", err)
	}
	if previous != nil {
		if age := s.now().Sub(previous.CreatedAt); age < DuplicateWindow {
			log.Warn().
				Uint("userID", userID).
				Uint("quizID", quizID).
				Dur("age", age).
				Msg("Submit: duplicate submission prevented")
			return nil, &DuplicateSubmissionError{LastSubmission: previous.CreatedAt}
		}
	}

	questions, err := s.questionRepo.FindByQuizID(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Submit: failed to load questions")
		return nil, fmt.Errorf("error loading quiz questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz %d has no questions: %w", quizID, gorm.ErrRecordNotFound)
	}

	score := 0
	for _, q := range questions {
		if answer, ok := req.Answers[q.ID]; ok && answer == q.CorrectAnswer {
			score++
		}
	}

	result := model.Result{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: len(questions),
		TimeTaken:      req.TimeTaken,
	}
	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("Submit: failed to save result")
		return nil, fmt.Errorf("error saving quiz result: %w", err)
	}

	log.Info().
		Uint("userID", userID).
		Uint("quizID", quizID).
		Int("score", score).
		Int("total", len(questions)).
		Msg("Quiz submitted")

	return &dto.SubmitResultDTO{
		Message:         "Quiz submitted successfully",
		Score:           score,
		TotalQuestions:  len(questions),
		Percentage:      math.Round(float64(score)/float64(len(questions))*100*100) / 100,
		ResultID:        result.ID,
		FirstSubmission: previous == nil,
	}, nil
}
