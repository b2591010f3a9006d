package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/cache"
	"github.com/SAP-F-2025/grading-service/internal/events"
	"github.com/SAP-F-2025/grading-service/internal/grading"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"github.com/SAP-F-2025/grading-service/internal/validator"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

// GradingService grades responses and keeps the graded record of each one
type GradingService interface {
	Grade(ctx context.Context, req *GradeRequest) (*GradeResponse, error)
	GradeQuestion(ctx context.Context, questionID uint, req *SubmitResponseRequest, studentID string) (*GradeResponse, error)

	GetGradedResponse(ctx context.Context, id uint) (*models.GradedResponse, error)
	ListGradedResponses(ctx context.Context, filters repositories.GradedResponseFilters) (*GradedResponseListResponse, error)

	ExportExamResults(ctx context.Context, examID uint) (*ExamResultsExport, error)
}

type GradingServiceConfig struct {
	CacheTTL time.Duration
}

type gradingService struct {
	repo           repositories.Repository
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	serviceLogger  *ServiceLogger
	validator      *validator.Validator
	config         GradingServiceConfig
	now            func() time.Time
}

func NewGradingService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validate *validator.Validator,
	config GradingServiceConfig,
) GradingService {
	if cacheService == nil {
		cacheService = cache.NewNoopCache()
	}
	return &gradingService{
		repo:           repo,
		cache:          cacheService,
		eventPublisher: eventPublisher,
		logger:         logger,
		serviceLogger:  NewServiceLogger(logger, LogConfig{Service: "grading", Component: "grading_service"}),
		validator:      validate,
		config:         config,
		now:            time.Now,
	}
}

// ===== GRADING =====

func (s *gradingService) Grade(ctx context.Context, req *GradeRequest) (resp *GradeResponse, err error) {
	op := s.serviceLogger.WithOperation(ctx, "grade_inline", "")
	defer func() { op.LogResult(0, "grading", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	result, err := grading.Grade(req.question(), req.response())
	if err != nil {
		return nil, err
	}

	return &GradeResponse{Result: result, GradedAt: s.now().UTC()}, nil
}

func (s *gradingService) GradeQuestion(ctx context.Context, questionID uint, req *SubmitResponseRequest, studentID string) (resp *GradeResponse, err error) {
	op := s.serviceLogger.WithOperation(ctx, "grade_question", studentID)
	defer func() { op.LogResult(questionID, "question", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	question, err := s.repo.Question().GetByID(ctx, nil, questionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	response := req.response()
	hash := cache.ResponseHash(response)

	result, cached, err := s.gradeCached(ctx, question, response, hash)
	if err != nil {
		return nil, err
	}

	record, err := s.newGradedResponse(question, response, result, hash, studentID)
	if err != nil {
		return nil, err
	}
	if err = s.repo.GradedResponse().Create(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("failed to save graded response: %w", err)
	}

	s.publishGraded(ctx, record)

	return &GradeResponse{
		GradedResponseID: record.ID,
		QuestionID:       question.ID,
		Result:           result,
		Cached:           cached,
		GradedAt:         record.GradedAt,
	}, nil
}

// gradeCached returns the cached result for an identical response to the
// same question, grading and caching it on a miss. Cache failures are logged
// and otherwise ignored.
func (s *gradingService) gradeCached(ctx context.Context, question *models.Question, response grading.UserResponse, hash string) (grading.Result, bool, error) {
	key := cache.GradingResultKey(question.ID, question.UpdatedAt.UnixNano(), hash)

	var result grading.Result
	err := s.cache.Get(ctx, key, &result)
	if err == nil {
		return result, true, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Failed to read grading cache", "key", key, "error", err)
	}

	reference, err := question.Reference()
	if err != nil {
		return grading.Result{}, false, err
	}
	result, err = grading.Grade(reference, response)
	if err != nil {
		return grading.Result{}, false, err
	}

	if err := s.cache.Set(ctx, key, result, s.config.CacheTTL); err != nil {
		s.logger.Warn("Failed to cache grading result", "key", key, "error", err)
	}
	return result, false, nil
}

func (s *gradingService) newGradedResponse(question *models.Question, response grading.UserResponse, result grading.Result, hash, studentID string) (*models.GradedResponse, error) {
	rawResponse, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	rawResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return &models.GradedResponse{
		QuestionID:   question.ID,
		ExamID:       question.ExamID,
		StudentID:    studentID,
		Type:         question.Type,
		Response:     datatypes.JSON(rawResponse),
		Result:       datatypes.JSON(rawResult),
		Correct:      result.Summary.Correct,
		Total:        result.Summary.Total,
		Passed:       result.Summary.Passed,
		ResponseHash: hash,
		GradedAt:     s.now().UTC(),
	}, nil
}

func (s *gradingService) publishGraded(ctx context.Context, record *models.GradedResponse) {
	if s.eventPublisher == nil {
		return
	}

	event := events.NewResponseGradedEvent(events.ResponseGradedEvent{
		GradedResponseID: record.ID,
		QuestionID:       record.QuestionID,
		ExamID:           record.ExamID,
		StudentID:        record.StudentID,
		Type:             record.Type,
		Correct:          record.Correct,
		Total:            record.Total,
		Passed:           record.Passed,
		GradedAt:         record.GradedAt,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish response graded event",
			"graded_response_id", record.ID,
			"error", err)
	}
}

// ===== GRADED RESPONSES =====

func (s *gradingService) GetGradedResponse(ctx context.Context, id uint) (*models.GradedResponse, error) {
	record, err := s.repo.GradedResponse().GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGradedResponseNotFound
		}
		return nil, fmt.Errorf("failed to get graded response: %w", err)
	}
	return record, nil
}

func (s *gradingService) ListGradedResponses(ctx context.Context, filters repositories.GradedResponseFilters) (*GradedResponseListResponse, error) {
	records, total, err := s.repo.GradedResponse().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list graded responses: %w", err)
	}

	return &GradedResponseListResponse{
		Responses: records,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

// ===== EXPORT =====

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

var resultsHeaders = []string{
	"Response ID", "Question ID", "Student ID", "Question Type", "Correct", "Total", "Passed", "Graded At",
}

func (s *gradingService) ExportExamResults(ctx context.Context, examID uint) (export *ExamResultsExport, err error) {
	op := s.serviceLogger.WithOperation(ctx, "export_exam_results", "")
	defer func() { op.LogResult(examID, "exam", err) }()

	exam, err := s.repo.Exam().GetByID(ctx, nil, examID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to load exam: %w", err)
	}

	records, err := s.repo.GradedResponse().ListByExam(ctx, nil, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to load graded responses: %w", err)
	}
	stats, err := s.repo.GradedResponse().GetExamStats(ctx, nil, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam statistics: %w", err)
	}

	data, err := buildResultsWorkbook(exam, records, stats)
	if err != nil {
		return nil, err
	}

	return &ExamResultsExport{
		FileName: fmt.Sprintf("exam_%d_results.xlsx", exam.ID),
		Data:     data,
		Stats:    stats,
	}, nil
}

func buildResultsWorkbook(exam *models.Exam, records []*models.GradedResponse, stats *repositories.ExamResultStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the results sheet so the workbook opens on it
	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	for i, header := range resultsHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(resultsSheet, cell, header)
	}

	for rowIndex, r := range records {
		row := []interface{}{
			r.ID, r.QuestionID, r.StudentID, string(r.Type), r.Correct, r.Total, r.Passed,
			r.GradedAt.UTC().Format(time.RFC3339),
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIndex+2)
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write result row: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Exam", exam.Title},
		{"Starts At", exam.StartsAt.UTC().Format(time.RFC3339)},
		{"Total Responses", stats.TotalResponses},
		{"Passed Responses", stats.PassedResponses},
		{"Pass Rate (%)", stats.PassRate},
		{"Average Correct", stats.AverageCorrect},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
