package service

import (
	"fmt"
	"math/rand"
	"strings"
)

// TemplateGenerator produces placeholder questions from a fixed template pool.
// It backs the AI generation flow whenever Gemini is unavailable so the
// feature always returns a usable quiz.
type TemplateGenerator interface {
	Generate(topic string, count int) []GeneratedQuestion
}

type templateGenerator struct {
	shuffle func(n int, swap func(i, j int))
}

func NewTemplateGenerator() TemplateGenerator {
	return &templateGenerator{shuffle: rand.Shuffle}
}

type questionTemplate struct {
	question      string
	options       []string
	correctAnswer string
}

var genericTemplates = []questionTemplate{
	{
		question:      "What is a fundamental concept in {topic}?",
		options:       []string{"Basic principles", "Advanced techniques", "Historical context", "Practical applications"},
		correctAnswer: "Basic principles",
	},
	{
		question:      "Which of the following is most associated with {topic}?",
		options:       []string{"Core methodology", "Peripheral ideas", "Unrelated concepts", "Alternative approaches"},
		correctAnswer: "Core methodology",
	},
	{
		question:      "In the context of {topic}, what is considered best practice?",
		options:       []string{"Following established guidelines", "Ignoring conventions", "Random experimentation", "Avoiding documentation"},
		correctAnswer: "Following established guidelines",
	},
	{
		question:      "What skill is most important when studying {topic}?",
		options:       []string{"Critical thinking", "Memorization only", "Speed reading", "Guessing"},
		correctAnswer: "Critical thinking",
	},
	{
		question:      "How should beginners approach learning {topic}?",
		options:       []string{"Start with fundamentals", "Jump to advanced topics", "Skip theory entirely", "Avoid practice"},
		correctAnswer: "Start with fundamentals",
	},
}

var topicTemplates = map[string][]questionTemplate{
	"programming": {
		{
			question:      "What does a variable store in programming?",
			options:       []string{"Data values", "Physical objects", "Sound waves", "Light particles"},
			correctAnswer: "Data values",
		},
		{
			question:      "What is the purpose of a loop in programming?",
			options:       []string{"Repeat code execution", "Delete files", "Change colors", "Play music"},
			correctAnswer: "Repeat code execution",
		},
	},
	"science": {
		{
			question:      "What is the scientific method primarily used for?",
			options:       []string{"Testing hypotheses", "Writing poetry", "Cooking food", "Playing games"},
			correctAnswer: "Testing hypotheses",
		},
		{
			question:      "What do scientists use to make observations more precise?",
			options:       []string{"Instruments and measurements", "Guesswork", "Opinions", "Superstitions"},
			correctAnswer: "Instruments and measurements",
		},
	},
	"history": {
		{
			question:      "What do historians primarily study?",
			options:       []string{"Past events and their causes", "Future predictions", "Chemical reactions", "Mathematical equations"},
			correctAnswer: "Past events and their causes",
		},
		{
			question:      "What is a primary source in historical research?",
			options:       []string{"Firsthand accounts from the period", "Modern textbooks", "Fictional novels", "Internet rumors"},
			correctAnswer: "Firsthand accounts from the period",
		},
	},
}

func (g *templateGenerator) Generate(topic string, count int) []GeneratedQuestion {
	pool := make([]questionTemplate, 0, len(genericTemplates)+2)
	if specific, ok := topicTemplates[strings.ToLower(strings.TrimSpace(topic))]; ok {
		pool = append(pool, specific...)
	}
	pool = append(pool, genericTemplates...)

	questions := make([]GeneratedQuestion, 0, count)
	for i := 0; i < count; i++ {
		tpl := pool[i%len(pool)]

		question := strings.ReplaceAll(tpl.question, "{topic}", topic)
		if i >= len(pool) {
			// Repeat pass over the pool; disambiguate the question text so a
			// quiz never contains two identical questions.
			question = fmt.Sprintf("%s (Part %d)", question, i/len(pool)+1)
		}

		options := make([]string, len(tpl.options))
		copy(options, tpl.options)
		g.shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		questions = append(questions, GeneratedQuestion{
			Question:      question,
			Options:       options,
			CorrectAnswer: tpl.correctAnswer,
		})
	}
	return questions
}
