package repository

import (
	"time"

	"gorm.io/gorm"

	"quizforge/internal/model"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	EmailExists(email string) (bool, error)
	CountByRole(role string) (int64, error)
	CountNewSince(role string, since time.Time) (int64, error)
	SignupsPerDay(role string, since time.Time) ([]SignupDay, error)
	ListWithActivity(role string) ([]UserActivityRow, error)
}

// SignupDay is one day of the user-growth series.
type SignupDay struct {
	SignupDate time.Time
	NewUsers   int
}

// UserActivityRow joins a user with their attempt aggregates for the admin listing.
type UserActivityRow struct {
	ID            uint
	Name          string
	Email         string
	Role          string
	CreatedAt     time.Time
	TotalAttempts int
	LastActivity  *time.Time
	AvgScore      *float64
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) CountByRole(role string) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *userRepository) CountNewSince(role string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("role = ? AND created_at >= ?", role, since).
		Count(&count).Error
	return count, err
}

func (r *userRepository) SignupsPerDay(role string, since time.Time) ([]SignupDay, error) {
	var rows []SignupDay
	err := r.db.Model(&model.User{}).
		Select("DATE(created_at) as signup_date, COUNT(*) as new_users").
		Where("role = ? AND created_at >= ?", role, since).
		Group("DATE(created_at)").
		Order("signup_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *userRepository) ListWithActivity(role string) ([]UserActivityRow, error) {
	var rows []UserActivityRow
	err := r.db.Model(&model.User{}).
		Select(`users.id, users.name, users.email, users.role, users.created_at,
			COUNT(results.id) as total_attempts,
			MAX(results.created_at) as last_activity,
			AVG(results.score * 100.0 / results.total_questions) as avg_score`).
		Joins("LEFT JOIN results ON users.id = results.user_id AND results.total_questions > 0").
		Where("users.role = ? AND users.deleted_at IS NULL", role).
		Group("users.id, users.name, users.email, users.role, users.created_at").
		Order("users.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
