package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizforge/internal/dto"
	"quizforge/internal/model"
)

type fakeGemini struct {
	questions []GeneratedQuestion
	err       error
}

func (f *fakeGemini) GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]GeneratedQuestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func aiQuestions() []GeneratedQuestion {
	return []GeneratedQuestion{
		{Question: "What is H2O?", Options: []string{"Water", "Salt", "Sugar", "Air"}, CorrectAnswer: "Water"},
		{Question: "What planet is red?", Options: []string{"Venus", "Mars", "Pluto", "Saturn"}, CorrectAnswer: "Mars"},
	}
}

func TestGenerateQuizWithGemini(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	svc := NewGenerationService(quizRepo, &fakeGemini{questions: aiQuestions()}, NewTemplateGenerator())

	created, err := svc.GenerateQuiz(context.Background(), 7, model.RoleUser, dto.QuizGenerateDTO{
		Topic:         "science",
		QuestionCount: 2,
	})
	require.NoError(t, err)

	assert.True(t, created.AIUsed)
	assert.False(t, created.Fallback)
	assert.Equal(t, 2, created.QuestionsCount)
	assert.Equal(t, model.QuizStatusPending, created.Status)
	assert.True(t, created.RequiresApproval)

	quiz := quizRepo.quizzes[created.QuizID]
	require.NotNil(t, quiz)
	assert.Equal(t, model.QuizSourceAI, quiz.Source)
	assert.Equal(t, "science Quiz (AI Generated)", quiz.Title)
	assert.False(t, quiz.IsPublic)
	assert.Equal(t, uint(7), quiz.CreatedBy)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "Water", quiz.Questions[0].CorrectAnswer)
}

func TestGenerateQuizFallsBackToTemplates(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	gemini := &fakeGemini{err: errors.New("gemini API request failed")}
	svc := NewGenerationService(quizRepo, gemini, NewTemplateGenerator())

	created, err := svc.GenerateQuiz(context.Background(), 7, model.RoleUser, dto.QuizGenerateDTO{
		Topic:         "history",
		QuestionCount: 4,
	})
	require.NoError(t, err)

	assert.True(t, created.Fallback)
	assert.False(t, created.AIUsed)
	assert.Equal(t, 4, created.QuestionsCount)

	quiz := quizRepo.quizzes[created.QuizID]
	require.NotNil(t, quiz)
	assert.Equal(t, model.QuizSourceAI, quiz.Source)
	assert.Len(t, quiz.Questions, 4)
}

func TestGenerateQuizAdminPublishesImmediately(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	svc := NewGenerationService(quizRepo, &fakeGemini{questions: aiQuestions()}, NewTemplateGenerator())

	created, err := svc.GenerateQuiz(context.Background(), 1, model.RoleAdmin, dto.QuizGenerateDTO{
		Topic: "science",
		Title: "Chemistry Warmup",
	})
	require.NoError(t, err)

	assert.Equal(t, model.QuizStatusPublished, created.Status)
	assert.False(t, created.RequiresApproval)

	quiz := quizRepo.quizzes[created.QuizID]
	require.NotNil(t, quiz)
	assert.True(t, quiz.IsPublic)
	assert.Equal(t, "Chemistry Warmup", quiz.Title)
}

func TestGenerateQuizDefaults(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	gemini := &fakeGemini{err: errors.New("unavailable")}
	svc := NewGenerationService(quizRepo, gemini, NewTemplateGenerator())

	created, err := svc.GenerateQuiz(context.Background(), 7, model.RoleUser, dto.QuizGenerateDTO{Topic: "art"})
	require.NoError(t, err)

	// Five questions at medium difficulty when the request leaves them unset.
	assert.Equal(t, 5, created.QuestionsCount)
	assert.Equal(t, "medium", quizRepo.quizzes[created.QuizID].Difficulty)
}

func TestGenerateQuizPersistFailure(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	quizRepo.createErr = errors.New("insert failed")
	svc := NewGenerationService(quizRepo, &fakeGemini{questions: aiQuestions()}, NewTemplateGenerator())

	created, err := svc.GenerateQuiz(context.Background(), 7, model.RoleUser, dto.QuizGenerateDTO{Topic: "science"})
	assert.Error(t, err)
	assert.Nil(t, created)
}
