package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponseDTO struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}

// QuestionDTO is the user-facing question shape. The correct answer stays
// server-side; grading happens on submission.
type QuestionDTO struct {
	ID           uint     `json:"id"`
	QuizID       uint     `json:"quiz_id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

// QuizSummaryDTO is used for quiz listings.
type QuizSummaryDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Topic       string    `json:"topic"`
	Difficulty  string    `json:"difficulty"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	IsPublic    bool      `json:"is_public"`
	CreatorName string    `json:"creator_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuizDetailDTO is a quiz together with its questions, for taking an attempt.
type QuizDetailDTO struct {
	QuizSummaryDTO
	Questions []QuestionDTO `json:"questions"`
}

// QuizCreatedDTO reports the outcome of manual or AI quiz creation.
type QuizCreatedDTO struct {
	Message          string `json:"message"`
	QuizID           uint   `json:"quiz_id"`
	QuestionsCount   int    `json:"questions_count"`
	Status           string `json:"status,omitempty"`
	RequiresApproval bool   `json:"requires_approval,omitempty"`
	AIUsed           bool   `json:"ai_used,omitempty"`
	Fallback         bool   `json:"fallback,omitempty"`
}

// SubmitResultDTO reports a graded submission.
type SubmitResultDTO struct {
	Message         string  `json:"message"`
	Score           int     `json:"score"`
	TotalQuestions  int     `json:"total_questions"`
	Percentage      float64 `json:"percentage"`
	ResultID        uint    `json:"result_id"`
	FirstSubmission bool    `json:"first_submission"`
}

// DuplicateSubmissionDTO is returned when the duplicate-submission window
// rejects a repeat attempt.
type DuplicateSubmissionDTO struct {
	Message             string    `json:"message"`
	DuplicatePrevention bool      `json:"duplicate_prevention"`
	LastSubmission      time.Time `json:"last_submission"`
}
