package repositories

import (
	"context"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"gorm.io/gorm"
)

// GradedResponseRepository stores graded responses. Records are append-only.
type GradedResponseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, response *models.GradedResponse) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.GradedResponse, error)
	List(ctx context.Context, tx *gorm.DB, filters GradedResponseFilters) ([]*models.GradedResponse, int64, error)
	ListByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.GradedResponse, error)
	GetExamStats(ctx context.Context, tx *gorm.DB, examID uint) (*ExamResultStats, error)
}
