package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

type QuizService interface {
	CreateManualQuiz(req dto.QuizCreateDTO, userID uint) (*dto.QuizCreatedDTO, error)
	GetPublishedQuizzes() ([]dto.QuizSummaryDTO, error)
	GetUserQuizzes(userID uint) ([]dto.QuizSummaryDTO, error)
	GetPendingQuizzes() ([]dto.QuizSummaryDTO, error)
	GetQuizWithQuestions(quizID uint) (*dto.QuizDetailDTO, error)
	UpdateStatus(quizID uint, status string) error
	Delete(quizID uint) error
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

func (s *quizService) CreateManualQuiz(req dto.QuizCreateDTO, userID uint) (*dto.QuizCreatedDTO, error) {
	for i, q := range req.Questions {
		if !containsOption(q.Options, q.CorrectAnswer) {
			return nil, &InvalidQuestionError{Index: i + 1, Reason: "correct answer must match one of the options"}
		}
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	quiz := model.Quiz{
		Title:      req.Title,
		Topic:      req.Topic,
		Difficulty: difficulty,
		CreatedBy:  userID,
		IsPublic:   true,
		Source:     model.QuizSourceManual,
		Status:     model.QuizStatusPublished,
	}
	for _, q := range req.Questions {
		quiz.Questions = append(quiz.Questions, model.Question{
			QuestionText:  q.QuestionText,
			Options:       model.OptionList(q.Options),
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateManualQuiz: failed to create quiz")
		return nil, fmt.Errorf("database error creating quiz: %w", err)
	}

	return &dto.QuizCreatedDTO{
		Message:        "Quiz created successfully",
		QuizID:         quiz.ID,
		QuestionsCount: len(quiz.Questions),
		Status:         quiz.Status,
	}, nil
}

func (s *quizService) GetPublishedQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindPublished()
	if err != nil {
		log.Error().Err(err).Msg("GetPublishedQuizzes: repository error")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}
	return toQuizSummaries(quizzes), nil
}

func (s *quizService) GetUserQuizzes(userID uint) ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindByCreator(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserQuizzes: repository error")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}
	return toQuizSummaries(quizzes), nil
}

func (s *quizService) GetPendingQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindByStatus(model.QuizStatusPending)
	if err != nil {
		log.Error().Err(err).Msg("GetPendingQuizzes: repository error")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}
	return toQuizSummaries(quizzes), nil
}

func (s *quizService) GetQuizWithQuestions(quizID uint) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}

	detail := dto.QuizDetailDTO{
		QuizSummaryDTO: dto.QuizSummaryDTO{
			ID:          quiz.ID,
			Title:       quiz.Title,
			Topic:       quiz.Topic,
			Difficulty:  quiz.Difficulty,
			Source:      quiz.Source,
			Status:      quiz.Status,
			IsPublic:    quiz.IsPublic,
			CreatorName: quiz.Creator.Name,
			CreatedAt:   quiz.CreatedAt,
		},
		Questions: make([]dto.QuestionDTO, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		detail.Questions = append(detail.Questions, dto.QuestionDTO{
			ID:           q.ID,
			QuizID:       q.QuizID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		})
	}
	return &detail, nil
}

func (s *quizService) UpdateStatus(quizID uint, status string) error {
	isPublic := status == model.QuizStatusPublished
	if err := s.quizRepo.UpdateStatus(quizID, status, isPublic); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Str("status", status).Msg("UpdateStatus: repository error")
		return fmt.Errorf("error updating quiz status: %w", err)
	}
	return nil
}

func (s *quizService) Delete(quizID uint) error {
	if err := s.quizRepo.Delete(quizID); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Delete: repository error")
		return fmt.Errorf("error deleting quiz: %w", err)
	}
	return nil
}

func toQuizSummaries(quizzes []repository.QuizWithCreator) []dto.QuizSummaryDTO {
	summaries := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, dto.QuizSummaryDTO{
			ID:          q.ID,
			Title:       q.Title,
			Topic:       q.Topic,
			Difficulty:  q.Difficulty,
			Source:      q.Source,
			Status:      q.Status,
			IsPublic:    q.IsPublic,
			CreatorName: q.CreatorName,
			CreatedAt:   q.CreatedAt,
		})
	}
	return summaries
}

func containsOption(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}
