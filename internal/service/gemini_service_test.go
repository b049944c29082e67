package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuizJSON = `[
    {
        "question": "What is the capital of France?",
        "options": ["London", "Berlin", "Paris", "Madrid"],
        "correct_answer": "Paris"
    },
    {
        "question": "What is 2+2?",
        "options": ["3", "4", "5", "6"],
        "correct_answer": "4"
    }
]`

func TestParseQuizResponse(t *testing.T) {
	questions, err := parseQuizResponse(validQuizJSON)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is the capital of France?", questions[0].Question)
	assert.Equal(t, "Paris", questions[0].CorrectAnswer)
	assert.Len(t, questions[0].Options, 4)
}

func TestParseQuizResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	questions, err := parseQuizResponse(fenced)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuizResponseRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "not JSON",
			text: "Here are your questions: 1) What is...",
		},
		{
			name: "wrong option count",
			text: `[{"question": "Q?", "options": ["A", "B"], "correct_answer": "A"}]`,
		},
		{
			name: "correct answer not among options",
			text: `[{"question": "Q?", "options": ["A", "B", "C", "D"], "correct_answer": "E"}]`,
		},
		{
			name: "missing question text",
			text: `[{"question": "", "options": ["A", "B", "C", "D"], "correct_answer": "A"}]`,
		},
		{
			name: "missing correct answer",
			text: `[{"question": "Q?", "options": ["A", "B", "C", "D"], "correct_answer": ""}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := parseQuizResponse(tt.text)
			assert.Error(t, err)
			assert.Nil(t, questions)
		})
	}
}

func TestGeminiServiceWithoutAPIKeyReturnsError(t *testing.T) {
	svc := &geminiService{client: nil}
	questions, err := svc.GenerateQuestions(context.Background(), "math", "easy", 5)
	assert.Error(t, err)
	assert.Nil(t, questions)
}
