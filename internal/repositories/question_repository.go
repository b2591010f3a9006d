package repositories

import (
	"context"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"gorm.io/gorm"
)

// QuestionRepository interface for reference question operations
type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *models.Question) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error // Soft delete
	// DeleteByExam soft deletes every question of an exam and returns their ids.
	DeleteByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]uint, error)

	ListByExam(ctx context.Context, tx *gorm.DB, examID uint, filters QuestionFilters) ([]*models.Question, int64, error)
	NextOrder(ctx context.Context, tx *gorm.DB, examID uint) (int, error)
}
