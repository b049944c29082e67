package repository

import (
	"time"

	"gorm.io/gorm"

	"quizforge/internal/model"
)

type ResultRepository interface {
	Create(result *model.Result) error
	FindLatestByUserAndQuiz(userID, quizID uint) (*model.Result, error)
	FindByUserWithQuiz(userID uint) ([]model.Result, error)
	FindByUserWithQuizLimit(userID uint, limit int) ([]model.Result, error)

	AttemptStats() (AttemptStats, error)
	PopularTopics(limit int) ([]TopicPopularity, error)
	ActivityPerDaySince(since time.Time) ([]ActivityDay, error)
	CountActiveUsersSince(since time.Time) (int64, error)
	TopUsers(limit int) ([]TopUserRow, error)

	RemoveDuplicates() (int64, error)
}

// AttemptStats aggregates the whole results table for the admin overview.
type AttemptStats struct {
	TotalAttempts          int
	UniqueQuizzesTaken     int
	UniqueUsers            int
	PlatformAvgScore       *float64
	TotalTimeSpent         int
	TotalCorrectAnswers    int
	TotalQuestionsAnswered int
}

type TopicPopularity struct {
	Topic         string
	UniqueQuizzes int
	AttemptCount  int
	AvgScore      *float64
}

type ActivityDay struct {
	ActivityDate  time.Time
	DailyAttempts int
	DailyUsers    int
	DailyQuizzes  int
}

type TopUserRow struct {
	ID            uint
	Name          string
	Email         string
	TotalAttempts int
	AvgScore      *float64
	BestScore     *float64
	TotalTime     int
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) FindLatestByUserAndQuiz(userID, quizID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByUserWithQuiz(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) FindByUserWithQuizLimit(userID uint, limit int) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

func (r *resultRepository) AttemptStats() (AttemptStats, error) {
	var stats AttemptStats
	err := r.db.Model(&model.Result{}).
		Select(`COUNT(*) as total_attempts,
			COUNT(DISTINCT quiz_id) as unique_quizzes_taken,
			COUNT(DISTINCT user_id) as unique_users,
			AVG(score * 100.0 / total_questions) as platform_avg_score,
			COALESCE(SUM(time_taken), 0) as total_time_spent,
			COALESCE(SUM(score), 0) as total_correct_answers,
			COALESCE(SUM(total_questions), 0) as total_questions_answered`).
		Where("total_questions > 0").
		Scan(&stats).Error
	return stats, err
}

func (r *resultRepository) PopularTopics(limit int) ([]TopicPopularity, error) {
	var rows []TopicPopularity
	err := r.db.Model(&model.Result{}).
		Select(`quizzes.topic,
			COUNT(DISTINCT results.quiz_id) as unique_quizzes,
			COUNT(results.id) as attempt_count,
			AVG(results.score * 100.0 / results.total_questions) as avg_score`).
		Joins("JOIN quizzes ON results.quiz_id = quizzes.id").
		Where("results.total_questions > 0").
		Group("quizzes.topic").
		Order("attempt_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) ActivityPerDaySince(since time.Time) ([]ActivityDay, error) {
	var rows []ActivityDay
	err := r.db.Model(&model.Result{}).
		Select(`DATE(created_at) as activity_date,
			COUNT(*) as daily_attempts,
			COUNT(DISTINCT user_id) as daily_users,
			COUNT(DISTINCT quiz_id) as daily_quizzes`).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("activity_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) CountActiveUsersSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Result{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *resultRepository) TopUsers(limit int) ([]TopUserRow, error) {
	var rows []TopUserRow
	err := r.db.Model(&model.User{}).
		Select(`users.id, users.name, users.email,
			COUNT(results.id) as total_attempts,
			AVG(results.score * 100.0 / results.total_questions) as avg_score,
			MAX(results.score * 100.0 / results.total_questions) as best_score,
			COALESCE(SUM(results.time_taken), 0) as total_time`).
		Joins("JOIN results ON users.id = results.user_id AND results.total_questions > 0").
		Where("users.role = ?", model.RoleUser).
		Group("users.id, users.name, users.email").
		Order("avg_score DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// RemoveDuplicates deletes every result that has a newer sibling for the same
// (user_id, quiz_id) pair, keeping only the most recent submission. Used by
// cmd/dedupe as an out-of-band repair for double submissions.
func (r *resultRepository) RemoveDuplicates() (int64, error) {
	res := r.db.Exec(`DELETE FROM results older
		USING results newer
		WHERE older.user_id = newer.user_id
		  AND older.quiz_id = newer.quiz_id
		  AND (older.created_at < newer.created_at
		       OR (older.created_at = newer.created_at AND older.id < newer.id))`)
	return res.RowsAffected, res.Error
}
