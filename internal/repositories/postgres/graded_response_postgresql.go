package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type GradedResponsePostgreSQL struct {
	helpers *SharedHelpers
}

func NewGradedResponsePostgreSQL(db *gorm.DB) repositories.GradedResponseRepository {
	return &GradedResponsePostgreSQL{
		helpers: NewSharedHelpers(db),
	}
}

var gradedResponseSortColumns = map[string]bool{"graded_at": true, "correct": true, "id": true}

func (g *GradedResponsePostgreSQL) Create(ctx context.Context, tx *gorm.DB, response *models.GradedResponse) error {
	if err := g.helpers.getDB(tx).WithContext(ctx).Omit("Question").Create(response).Error; err != nil {
		return fmt.Errorf("failed to store graded response: %w", err)
	}
	return nil
}

func (g *GradedResponsePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.GradedResponse, error) {
	var response models.GradedResponse
	if err := g.helpers.getDB(tx).WithContext(ctx).First(&response, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &response, nil
}

func (g *GradedResponsePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.GradedResponseFilters) ([]*models.GradedResponse, int64, error) {
	query := g.applyFilters(g.helpers.getDB(tx).WithContext(ctx).Model(&models.GradedResponse{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = g.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset, gradedResponseSortColumns, "graded_at")

	var responses []*models.GradedResponse
	if err := query.Find(&responses).Error; err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListByExam returns every graded response of an exam, oldest first, for export
func (g *GradedResponsePostgreSQL) ListByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.GradedResponse, error) {
	var responses []*models.GradedResponse
	err := g.helpers.getDB(tx).WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("graded_at ASC, id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (g *GradedResponsePostgreSQL) GetExamStats(ctx context.Context, tx *gorm.DB, examID uint) (*repositories.ExamResultStats, error) {
	var row struct {
		Total   int
		Passed  int
		Correct float64
	}
	err := g.helpers.getDB(tx).WithContext(ctx).
		Model(&models.GradedResponse{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE passed) AS passed, COALESCE(AVG(correct), 0) AS correct").
		Where("exam_id = ?", examID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &repositories.ExamResultStats{
		TotalResponses:  row.Total,
		PassedResponses: row.Passed,
		AverageCorrect:  row.Correct,
	}
	if row.Total > 0 {
		stats.PassRate = float64(row.Passed) / float64(row.Total) * 100
	}
	return stats, nil
}

func (g *GradedResponsePostgreSQL) applyFilters(query *gorm.DB, filters repositories.GradedResponseFilters) *gorm.DB {
	if filters.ExamID != nil {
		query = query.Where("exam_id = ?", *filters.ExamID)
	}
	if filters.QuestionID != nil {
		query = query.Where("question_id = ?", *filters.QuestionID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Passed != nil {
		query = query.Where("passed = ?", *filters.Passed)
	}
	if filters.DateFrom != nil {
		query = query.Where("graded_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("graded_at <= ?", *filters.DateTo)
	}
	return query
}
