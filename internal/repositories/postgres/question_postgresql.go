package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	helpers *SharedHelpers
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		helpers: NewSharedHelpers(db),
	}
}

var questionSortColumns = map[string]bool{`"order"`: true, "created_at": true}

func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if err := q.helpers.getDB(tx).WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// GetByID loads a question together with its exam
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	var question models.Question
	err := q.helpers.getDB(tx).WithContext(ctx).
		Preload("Exam").
		First(&question, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	return q.helpers.getDB(tx).WithContext(ctx).
		Omit("Exam").
		Save(question).Error
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := q.helpers.getDB(tx).WithContext(ctx).Delete(&models.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (q *QuestionPostgreSQL) DeleteByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]uint, error) {
	db := q.helpers.getDB(tx).WithContext(ctx)

	var ids []uint
	if err := db.Model(&models.Question{}).Where("exam_id = ?", examID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list exam questions: %w", err)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	if err := db.Where("id IN ?", ids).Delete(&models.Question{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete exam questions: %w", err)
	}
	return ids, nil
}

func (q *QuestionPostgreSQL) ListByExam(ctx context.Context, tx *gorm.DB, examID uint, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	query := q.helpers.getDB(tx).WithContext(ctx).
		Model(&models.Question{}).
		Where("exam_id = ?", examID)
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = q.helpers.ApplyPaginationAndSort(query, `"order"`, "asc", filters.Limit, filters.Offset, questionSortColumns, `"order"`)

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// NextOrder returns the position for a question appended to the exam
func (q *QuestionPostgreSQL) NextOrder(ctx context.Context, tx *gorm.DB, examID uint) (int, error) {
	var maxOrder *int
	err := q.helpers.getDB(tx).WithContext(ctx).
		Model(&models.Question{}).
		Where("exam_id = ?", examID).
		Select(`MAX("order")`).
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 1, nil
	}
	return *maxOrder + 1, nil
}
