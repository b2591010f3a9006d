package postgres

import (
	"context"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db             *gorm.DB
	exam           repositories.ExamRepository
	question       repositories.QuestionRepository
	gradedResponse repositories.GradedResponseRepository
}

// NewRepository builds the PostgreSQL-backed repository set
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:             db,
		exam:           NewExamPostgreSQL(db),
		question:       NewQuestionPostgreSQL(db),
		gradedResponse: NewGradedResponsePostgreSQL(db),
	}
}

func (r *repository) Exam() repositories.ExamRepository                     { return r.exam }
func (r *repository) Question() repositories.QuestionRepository             { return r.question }
func (r *repository) GradedResponse() repositories.GradedResponseRepository { return r.gradedResponse }

func (r *repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the tables owned by this service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Exam{},
		&models.Question{},
		&models.GradedResponse{},
	)
}
