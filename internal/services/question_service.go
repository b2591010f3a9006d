package services

import (
	"context"
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
)

// QuestionService manages exams and the reference questions graded against.
type QuestionService interface {
	CreateExam(ctx context.Context, req *CreateExamRequest, creatorID string) (*ExamResponse, error)
	GetExam(ctx context.Context, id uint) (*ExamResponse, error)
	UpdateExam(ctx context.Context, id uint, req *UpdateExamRequest, userID string) (*ExamResponse, error)
	DeleteExam(ctx context.Context, id uint, userID string) error

	CreateQuestion(ctx context.Context, examID uint, req *CreateQuestionRequest, creatorID string) (*models.Question, error)
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id uint, req *UpdateQuestionRequest, userID string) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id uint, userID string) error
	ListQuestions(ctx context.Context, examID uint, filters repositories.QuestionFilters) (*QuestionListResponse, error)
}

type questionService struct {
	repo           repositories.Repository
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	serviceLogger  *ServiceLogger
	validator      *validator.Validator
	now            func() time.Time
}

func NewQuestionService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validate *validator.Validator,
) QuestionService {
	if cacheService == nil {
		cacheService = cache.NewNoopCache()
	}
	return &questionService{
		repo:           repo,
		cache:          cacheService,
		eventPublisher: eventPublisher,
		logger:         logger,
		serviceLogger:  NewServiceLogger(logger, LogConfig{Service: "grading", Component: "question_service"}),
		validator:      validate,
		now:            time.Now,
	}
}

// ===== EXAMS =====

func (s *questionService) CreateExam(ctx context.Context, req *CreateExamRequest, creatorID string) (resp *ExamResponse, err error) {
	op := s.serviceLogger.WithOperation(ctx, "create_exam", creatorID)
	defer func() {
		var id uint
		if resp != nil {
			id = resp.ID
		}
		op.LogResult(id, "exam", err)
	}()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err = s.checkStartTime(req.StartsAt); err != nil {
		return nil, err
	}

	exam := &models.Exam{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt.UTC(),
		CreatedBy:   creatorID,
	}
	if err = s.repo.Exam().Create(ctx, nil, exam); err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	return s.examResponse(exam), nil
}

func (s *questionService) GetExam(ctx context.Context, id uint) (*ExamResponse, error) {
	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, nil, id)
	if err != nil {
		return nil, examError(err)
	}
	return s.examResponse(exam), nil
}

// UpdateExam changes an exam while its questions are still editable.
func (s *questionService) UpdateExam(ctx context.Context, id uint, req *UpdateExamRequest, userID string) (resp *ExamResponse, err error) {
	op := s.serviceLogger.WithOperation(ctx, "update_exam", userID)
	defer func() { op.LogResult(id, "exam", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	var exam *models.Exam
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		exam, err = s.editableExam(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			exam.Title = *req.Title
		}
		if req.Description != nil {
			exam.Description = req.Description
		}
		if req.StartsAt != nil {
			if err := s.checkStartTime(*req.StartsAt); err != nil {
				return err
			}
			exam.StartsAt = req.StartsAt.UTC()
		}

		return tx.Exam().Update(ctx, nil, exam)
	})
	if err != nil {
		return nil, err
	}

	return s.examResponse(exam), nil
}

// DeleteExam removes an exam and its questions under the same freeze rule as
// question edits. Graded responses are kept.
func (s *questionService) DeleteExam(ctx context.Context, id uint, userID string) (err error) {
	op := s.serviceLogger.WithOperation(ctx, "delete_exam", userID)
	defer func() { op.LogResult(id, "exam", err) }()

	var questionIDs []uint
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if _, err := s.editableExam(ctx, tx, id); err != nil {
			return err
		}

		var err error
		questionIDs, err = tx.Question().DeleteByExam(ctx, nil, id)
		if err != nil {
			return err
		}
		if err := tx.Exam().Delete(ctx, nil, id); err != nil {
			return examError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, questionID := range questionIDs {
		s.invalidateResults(ctx, questionID)
		s.publishChanged(ctx, events.NewQuestionDeletedEvent, &models.Question{ID: questionID, ExamID: id}, userID)
	}

	return nil
}

// editableExam loads an exam and checks its questions have not frozen.
func (s *questionService) editableExam(ctx context.Context, tx repositories.Repository, id uint) (*models.Exam, error) {
	exam, err := tx.Exam().GetByID(ctx, nil, id)
	if err != nil {
		return nil, examError(err)
	}
	if !exam.QuestionsEditable(s.now()) {
		return nil, fmt.Errorf("%w: exam %d starts at %s", ErrExamNotEditable, exam.ID, exam.StartsAt.Format(time.RFC3339))
	}
	return exam, nil
}

// checkStartTime rejects a start time whose edit window has already closed.
func (s *questionService) checkStartTime(startsAt time.Time) error {
	exam := models.Exam{StartsAt: startsAt}
	if exam.QuestionsEditable(s.now()) {
		return nil
	}
	return NewBusinessRuleError(RuleExamStartTooSoon,
		fmt.Sprintf("exam must start more than %s from now", models.QuestionEditCutoff),
		map[string]interface{}{
			"starts_at":   startsAt.UTC().Format(time.RFC3339),
			"edit_cutoff": startsAt.Add(-models.QuestionEditCutoff).UTC().Format(time.RFC3339),
		})
}

func (s *questionService) examResponse(exam *models.Exam) *ExamResponse {
	return &ExamResponse{
		Exam:              exam,
		QuestionsEditable: exam.QuestionsEditable(s.now()),
	}
}

// ===== QUESTIONS =====

func (s *questionService) CreateQuestion(ctx context.Context, examID uint, req *CreateQuestionRequest, creatorID string) (question *models.Question, err error) {
	op := s.serviceLogger.WithOperation(ctx, "create_question", creatorID)
	defer func() { op.LogResult(examID, "exam", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err = s.validator.Question().ValidateQuestion(grading.ReferenceQuestion{
		Type:             req.Type,
		Content:          req.Content,
		ReferenceAnswers: req.ReferenceAnswers,
	}); err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		exam, err := tx.Exam().GetByID(ctx, nil, examID)
		if err != nil {
			return examError(err)
		}
		if !exam.QuestionsEditable(s.now()) {
			return fmt.Errorf("%w: exam %d starts at %s", ErrQuestionNotEditable, exam.ID, exam.StartsAt.Format(time.RFC3339))
		}

		question = &models.Question{
			ExamID:    exam.ID,
			Type:      req.Type,
			Content:   req.Content,
			CreatedBy: creatorID,
		}
		if err := question.SetAnswers(req.ReferenceAnswers); err != nil {
			return err
		}

		if req.Order != nil {
			question.Order = *req.Order
		} else {
			order, err := tx.Question().NextOrder(ctx, nil, exam.ID)
			if err != nil {
				return fmt.Errorf("failed to compute question order: %w", err)
			}
			question.Order = order
		}

		return tx.Question().Create(ctx, nil, question)
	})
	if err != nil {
		return nil, err
	}

	return question, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		return nil, questionError(err)
	}
	return question, nil
}

// UpdateQuestion replaces the content of a question. Cached grading results
// for the question are dropped since they were computed from the old content.
func (s *questionService) UpdateQuestion(ctx context.Context, id uint, req *UpdateQuestionRequest, userID string) (question *models.Question, err error) {
	op := s.serviceLogger.WithOperation(ctx, "update_question", userID)
	defer func() { op.LogResult(id, "question", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		question, err = s.editableQuestion(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Content != nil {
			question.Content = *req.Content
		}
		if req.ReferenceAnswers != nil {
			if err := question.SetAnswers(req.ReferenceAnswers); err != nil {
				return err
			}
		}
		if req.Order != nil {
			question.Order = *req.Order
		}

		reference, err := question.Reference()
		if err != nil {
			return err
		}
		if err := s.validator.Question().ValidateQuestion(reference); err != nil {
			return err
		}

		return tx.Question().Update(ctx, nil, question)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateResults(ctx, question.ID)
	s.publishChanged(ctx, events.NewQuestionUpdatedEvent, question, userID)

	return question, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id uint, userID string) (err error) {
	op := s.serviceLogger.WithOperation(ctx, "delete_question", userID)
	defer func() { op.LogResult(id, "question", err) }()

	var question *models.Question
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		question, err = s.editableQuestion(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Question().Delete(ctx, nil, id); err != nil {
			return questionError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateResults(ctx, id)
	s.publishChanged(ctx, events.NewQuestionDeletedEvent, question, userID)

	return nil
}

func (s *questionService) ListQuestions(ctx context.Context, examID uint, filters repositories.QuestionFilters) (*QuestionListResponse, error) {
	if _, err := s.repo.Exam().GetByID(ctx, nil, examID); err != nil {
		return nil, examError(err)
	}

	questions, total, err := s.repo.Question().ListByExam(ctx, nil, examID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return &QuestionListResponse{
		Questions: questions,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

// editableQuestion loads a question and checks its exam has not frozen.
func (s *questionService) editableQuestion(ctx context.Context, tx repositories.Repository, id uint) (*models.Question, error) {
	question, err := tx.Question().GetByID(ctx, nil, id)
	if err != nil {
		return nil, questionError(err)
	}

	exam := question.Exam
	if exam == nil {
		exam, err = tx.Exam().GetByID(ctx, nil, question.ExamID)
		if err != nil {
			return nil, examError(err)
		}
	}
	if !exam.QuestionsEditable(s.now()) {
		return nil, fmt.Errorf("%w: exam %d starts at %s", ErrQuestionNotEditable, exam.ID, exam.StartsAt.Format(time.RFC3339))
	}
	return question, nil
}

func (s *questionService) invalidateResults(ctx context.Context, questionID uint) {
	if err := s.cache.DeletePattern(ctx, cache.GradingResultPattern(questionID)); err != nil {
		s.logger.Warn("Failed to invalidate cached grading results", "question_id", questionID, "error", err)
	}
}

func (s *questionService) publishChanged(ctx context.Context, newEvent func(events.QuestionChangedEvent) *events.GradingEvent, question *models.Question, userID string) {
	if s.eventPublisher == nil {
		return
	}

	event := newEvent(events.QuestionChangedEvent{
		QuestionID: question.ID,
		ExamID:     question.ExamID,
		Type:       question.Type,
		ChangedBy:  userID,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish question event",
			"question_id", question.ID,
			"event_type", event.Type,
			"error", err)
	}
}

func examError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrExamNotFound
	}
	return fmt.Errorf("failed to load exam: %w", err)
}

func questionError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrQuestionNotFound
	}
	return fmt.Errorf("failed to load question: %w", err)
}
