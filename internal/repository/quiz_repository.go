package repository

import (
	"gorm.io/gorm"

	"quizforge/internal/model"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindPublished() ([]QuizWithCreator, error)
	FindByCreator(userID uint) ([]QuizWithCreator, error)
	FindByStatus(status string) ([]QuizWithCreator, error)
	UpdateStatus(id uint, status string, isPublic bool) error
	Delete(id uint) error
	CountsBySourceAndStatus() (QuizCounts, error)
}

// QuizWithCreator carries a quiz row plus the creator's display name.
type QuizWithCreator struct {
	model.Quiz
	CreatorName string
}

type QuizCounts struct {
	TotalQuizzes     int
	AIQuizzes        int
	ManualQuizzes    int
	PendingQuizzes   int
	PublishedQuizzes int
	RejectedQuizzes  int
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// GORM creates associated questions when quiz.Questions is populated.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.Preload("Creator").First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Preload("Creator").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindPublished() ([]QuizWithCreator, error) {
	return r.findWithCreator("quizzes.is_public = ? AND quizzes.status = ?", true, model.QuizStatusPublished)
}

func (r *quizRepository) FindByCreator(userID uint) ([]QuizWithCreator, error) {
	return r.findWithCreator("quizzes.created_by = ?", userID)
}

func (r *quizRepository) FindByStatus(status string) ([]QuizWithCreator, error) {
	return r.findWithCreator("quizzes.status = ?", status)
}

func (r *quizRepository) findWithCreator(query string, args ...interface{}) ([]QuizWithCreator, error) {
	var results []QuizWithCreator
	err := r.db.Model(&model.Quiz{}).
		Select("quizzes.*, users.name as creator_name").
		Joins("LEFT JOIN users ON quizzes.created_by = users.id").
		Where(query, args...).
		Order("quizzes.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *quizRepository) UpdateStatus(id uint, status string, isPublic bool) error {
	result := r.db.Model(&model.Quiz{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "is_public": isPublic})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quizRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quizRepository) CountsBySourceAndStatus() (QuizCounts, error) {
	var counts QuizCounts
	err := r.db.Model(&model.Quiz{}).
		Select(`COUNT(*) as total_quizzes,
			SUM(CASE WHEN source = 'AI' THEN 1 ELSE 0 END) as ai_quizzes,
			SUM(CASE WHEN source = 'manual' THEN 1 ELSE 0 END) as manual_quizzes,
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) as pending_quizzes,
			SUM(CASE WHEN status = 'published' THEN 1 ELSE 0 END) as published_quizzes,
			SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END) as rejected_quizzes`).
		Scan(&counts).Error
	return counts, err
}
