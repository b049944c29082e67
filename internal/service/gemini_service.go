package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"quizforge/config"
)

// GeneratedQuestion is one multiple-choice question produced by a generator,
// either the Gemini API or the local template fallback.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// GeminiService produces quiz questions from the Gemini API. Errors are
// returned to the caller, which decides whether to substitute the local
// template generator; no error ever escapes as a panic.
type GeminiService interface {
	GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]GeneratedQuestion, error)
}

type geminiService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiService(cfg *config.Config) (GeminiService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiService will be non-functional.")
		return &geminiService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-2.0-flash")
	return &geminiService{client: model, cfg: cfg}, nil
}

func (s *geminiService) GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]GeneratedQuestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	prompt := buildQuizPrompt(topic, difficulty, count)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Gemini API error during quiz generation")
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}
	if raw.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	questions, err := parseQuizResponse(raw.String())
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("Failed to parse Gemini quiz response")
		return nil, err
	}

	log.Info().Int("count", len(questions)).Str("topic", topic).Msg("Parsed questions from Gemini")
	return questions, nil
}

func buildQuizPrompt(topic, difficulty string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d multiple-choice questions about %s with %s difficulty level.\n\n", count, topic, difficulty)
	b.WriteString("IMPORTANT FORMATTING RULES:\n")
	b.WriteString("- Return ONLY a valid JSON array, no additional text\n")
	b.WriteString("- Each question must be an object with exactly these fields:\n")
	b.WriteString("  - \"question\": \"The question text\"\n")
	b.WriteString("  - \"options\": [\"Option A\", \"Option B\", \"Option C\", \"Option D\"]\n")
	b.WriteString("  - \"correct_answer\": \"The exact text of the correct option\"\n\n")
	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- Questions should be educational and accurate\n")
	b.WriteString("- Make options plausible but distinct\n")
	b.WriteString("- Ensure the correct answer is factually accurate\n")
	b.WriteString("- Vary the position of the correct answer randomly\n")
	b.WriteString("- Questions should match the difficulty level:\n")
	b.WriteString("  - Easy: Basic facts and definitions\n")
	b.WriteString("  - Medium: Application and understanding\n")
	b.WriteString("  - Hard: Analysis, synthesis, or complex concepts\n\n")
	b.WriteString("Example format:\n")
	b.WriteString(`[
    {
        "question": "What is the capital of France?",
        "options": ["London", "Berlin", "Paris", "Madrid"],
        "correct_answer": "Paris"
    }
]`)
	fmt.Fprintf(&b, "\n\nNow generate %d questions about %s at %s level:", count, topic, difficulty)
	return b.String()
}

// parseQuizResponse strips markdown code fences, decodes the JSON array and
// validates every question before anything is persisted.
func parseQuizResponse(text string) ([]GeneratedQuestion, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse AI response as valid JSON: %w", err)
	}

	for i, q := range questions {
		if q.Question == "" || q.CorrectAnswer == "" || len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d missing required fields", i+1)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d must have exactly 4 options", i+1)
		}
		if !containsOption(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("question %d correct answer must match one of the options", i+1)
		}
	}
	return questions, nil
}
