package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// GenerationService orchestrates AI quiz generation: it asks Gemini first and
// falls back to the local template generator when Gemini is unavailable or
// returns an unusable response, so the endpoint always produces a quiz.
type GenerationService interface {
	GenerateQuiz(ctx context.Context, userID uint, role string, input dto.QuizGenerateDTO) (*dto.QuizCreatedDTO, error)
}

type generationService struct {
	quizRepo  repository.QuizRepository
	gemini    GeminiService
	templates TemplateGenerator
}

func NewGenerationService(quizRepo repository.QuizRepository, gemini GeminiService, templates TemplateGenerator) GenerationService {
	return &generationService{quizRepo: quizRepo, gemini: gemini, templates: templates}
}

func (s *generationService) GenerateQuiz(ctx context.Context, userID uint, role string, input dto.QuizGenerateDTO) (*dto.QuizCreatedDTO, error) {
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	count := input.QuestionCount
	if count <= 0 {
		count = 5
	}

	questions, err := s.gemini.GenerateQuestions(ctx, input.Topic, difficulty, count)
	fallback := false
	if err != nil {
		log.Warn().Err(err).Str("topic", input.Topic).Msg("Gemini generation failed, using template fallback")
		questions = s.templates.Generate(input.Topic, count)
		fallback = true
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions could be generated for topic %q", input.Topic)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = fmt.Sprintf("%s Quiz (AI Generated)", input.Topic)
	}

	// Admin-generated quizzes publish immediately; user-generated ones wait
	// for admin approval.
	status := model.QuizStatusPending
	if role == model.RoleAdmin {
		status = model.QuizStatusPublished
	}

	quiz := &model.Quiz{
		Title:      title,
		Topic:      input.Topic,
		Difficulty: difficulty,
		CreatedBy:  userID,
		IsPublic:   status == model.QuizStatusPublished,
		Source:     model.QuizSourceAI,
		Status:     status,
	}
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, model.Question{
			QuestionText:  q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		log.Error().Err(err).Msg("Failed to persist generated quiz")
		return nil, fmt.Errorf("failed to save generated quiz: %w", err)
	}

	message := "Quiz generated successfully"
	if fallback {
		message = "Quiz generated successfully (template mode)"
	}
	log.Info().
		Uint("quiz_id", quiz.ID).
		Str("topic", input.Topic).
		Bool("fallback", fallback).
		Msg("Generated quiz")

	return &dto.QuizCreatedDTO{
		Message:          message,
		QuizID:           quiz.ID,
		QuestionsCount:   len(quiz.Questions),
		Status:           status,
		RequiresApproval: status == model.QuizStatusPending,
		AIUsed:           !fallback,
		Fallback:         fallback,
	}, nil
}
