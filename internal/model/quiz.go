package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuizSourceManual = "manual"
	QuizSourceAI     = "AI"

	QuizStatusPending   = "pending"
	QuizStatusPublished = "published"
	QuizStatusRejected  = "rejected"
)

type Quiz struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Title      string         `json:"title" gorm:"not null"`
	Topic      string         `json:"topic" gorm:"not null;index"`
	Difficulty string         `json:"difficulty" gorm:"default:'medium'"` // "easy", "medium", "hard"
	CreatedBy  uint           `json:"created_by" gorm:"not null;index"`
	Creator    User           `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	IsPublic   bool           `json:"is_public" gorm:"default:false"`
	Source     string         `json:"source" gorm:"not null;default:'manual'"` // "manual", "AI"
	Status     string         `json:"status" gorm:"not null;default:'pending'"`
	Questions  []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
