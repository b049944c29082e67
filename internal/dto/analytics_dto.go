package dto

import "time"

// UserStatsDTO is the scalar summary section of user analytics.
// Percentages are rounded to 1 decimal place.
type UserStatsDTO struct {
	TotalQuizzesTaken int        `json:"total_quizzes_taken"`
	TotalAttempts     int        `json:"total_attempts"`
	AverageScore      float64    `json:"average_score"`
	TotalTimeSpent    int        `json:"total_time_spent"`
	LastAttempt       *time.Time `json:"last_attempt"`
	BestScore         float64    `json:"best_score"`
	QuizzesThisWeek   int        `json:"quizzes_this_week"`
}

// TopicPerformanceDTO is one per-topic aggregate row, ordered by avg_score desc.
type TopicPerformanceDTO struct {
	Topic         string  `json:"topic"`
	UniqueQuizzes int     `json:"unique_quizzes"`
	TotalAttempts int     `json:"total_attempts"`
	AvgScore      float64 `json:"avg_score"`
	BestScore     float64 `json:"best_score"`
	TotalTime     int     `json:"total_time"`
}

type RecentResultDTO struct {
	ID             uint      `json:"id"`
	QuizTitle      string    `json:"quiz_title"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	TimeTaken      int       `json:"time_taken"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProgressPointDTO is one calendar day in the progress-over-time series.
type ProgressPointDTO struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	AverageScore  float64 `json:"average_score"`
	UniqueQuizzes int     `json:"unique_quizzes"`
	Attempts      int     `json:"attempts"`
}

type StreakDataDTO struct {
	CurrentStreak   int `json:"current_streak"`
	LongestStreak   int `json:"longest_streak"`
	TotalActiveDays int `json:"total_active_days"`
}

// UserAnalyticsDTO is the full analytics payload. Either every section is
// populated or the request fails as a whole; there is no partial response.
type UserAnalyticsDTO struct {
	Stats            UserStatsDTO          `json:"stats"`
	TopicPerformance []TopicPerformanceDTO `json:"topic_performance"`
	RecentResults    []RecentResultDTO     `json:"recent_results"`
	ProgressOverTime []ProgressPointDTO    `json:"progress_over_time"`
	StreakData       StreakDataDTO         `json:"streak_data"`
	Success          bool                  `json:"success"`
}
