package model

import "time"

// Result is one recorded quiz attempt. Rows are append-only: nothing in the
// serving path updates or deletes them (cmd/dedupe is the out-of-band repair).
type Result struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	QuizID         uint      `json:"quiz_id" gorm:"not null;index"`
	Quiz           Quiz      `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	TimeTaken      int       `json:"time_taken" gorm:"not null"` // seconds
	CreatedAt      time.Time `json:"created_at"`
}

// Percentage returns the score as a percentage, or 0 when the attempt has no
// questions (excluded from average/best calculations).
func (r Result) Percentage() float64 {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return float64(r.Score) * 100.0 / float64(r.TotalQuestions)
}
