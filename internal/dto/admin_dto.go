package dto

import "time"

// Platform-wide analytics, admin only.

type AdminUserCountsDTO struct {
	TotalUsers   int `json:"total_users"`
	ActiveUsers  int `json:"active_users"` // at least one attempt in last 30 days
	NewUsersWeek int `json:"new_users_week"`
}

type AdminQuizCountsDTO struct {
	TotalQuizzes     int `json:"total_quizzes"`
	AIQuizzes        int `json:"ai_quizzes"`
	ManualQuizzes    int `json:"manual_quizzes"`
	PendingQuizzes   int `json:"pending_quizzes"`
	PublishedQuizzes int `json:"published_quizzes"`
	RejectedQuizzes  int `json:"rejected_quizzes"`
}

type AdminAttemptStatsDTO struct {
	TotalAttempts          int     `json:"total_attempts"`
	UniqueQuizzesTaken     int     `json:"unique_quizzes_taken"`
	UniqueUsers            int     `json:"unique_users"`
	PlatformAvgScore       float64 `json:"platform_avg_score"`
	TotalTimeSpent         int     `json:"total_time_spent"`
	TotalCorrectAnswers    int     `json:"total_correct_answers"`
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
	AccuracyRate           float64 `json:"accuracy_rate"`
}

type PopularTopicDTO struct {
	Topic         string  `json:"topic"`
	UniqueQuizzes int     `json:"unique_quizzes"`
	AttemptCount  int     `json:"attempt_count"`
	AvgScore      float64 `json:"avg_score"`
}

type DailyActivityDTO struct {
	Date          string `json:"date"`
	Attempts      int    `json:"attempts"`
	UniqueUsers   int    `json:"unique_users"`
	UniqueQuizzes int    `json:"unique_quizzes"`
}

type UserGrowthPointDTO struct {
	Date     string `json:"date"`
	NewUsers int    `json:"new_users"`
}

type TopUserDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	TotalAttempts int     `json:"total_attempts"`
	AvgScore      float64 `json:"avg_score"`
	BestScore     float64 `json:"best_score"`
	TotalTime     int     `json:"total_time"`
}

type AdminAnalyticsDTO struct {
	Users          AdminUserCountsDTO   `json:"users"`
	Quizzes        AdminQuizCountsDTO   `json:"quizzes"`
	Attempts       AdminAttemptStatsDTO `json:"attempts"`
	PopularTopics  []PopularTopicDTO    `json:"popular_topics"`
	RecentActivity []DailyActivityDTO   `json:"recent_activity"`
	UserGrowth     []UserGrowthPointDTO `json:"user_growth"`
	TopUsers       []TopUserDTO         `json:"top_users"`
	Success        bool                 `json:"success"`
}

// AdminUserRowDTO is one row of the admin users listing.
type AdminUserRowDTO struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	TotalAttempts int        `json:"total_attempts"`
	LastActivity  *time.Time `json:"last_activity"`
	AvgScore      float64    `json:"avg_score"`
	Status        string     `json:"status"` // "Active" once any attempt exists
}

type AdminUserListDTO struct {
	Users      []AdminUserRowDTO `json:"users"`
	TotalCount int               `json:"total_count"`
	Success    bool              `json:"success"`
}

// UserActivityStatsDTO summarizes a single user's history for the admin detail view.
type UserActivityStatsDTO struct {
	TotalAttempts int        `json:"total_attempts"`
	UniqueQuizzes int        `json:"unique_quizzes"`
	AvgScore      float64    `json:"avg_score"`
	BestScore     float64    `json:"best_score"`
	TotalTime     int        `json:"total_time"`
	FirstActivity *time.Time `json:"first_activity"`
	LastActivity  *time.Time `json:"last_activity"`
}

type UserActivityDTO struct {
	User     UserDTO              `json:"user"`
	Stats    UserActivityStatsDTO `json:"stats"`
	Attempts []RecentResultDTO    `json:"attempts"`
	Topics   []TopicAttemptsDTO   `json:"topics"`
	Success  bool                 `json:"success"`
}

// TopicAttemptsDTO is a per-topic attempt count, ordered by attempts desc.
type TopicAttemptsDTO struct {
	Topic    string  `json:"topic"`
	Attempts int     `json:"attempts"`
	AvgScore float64 `json:"avg_score"`
}
