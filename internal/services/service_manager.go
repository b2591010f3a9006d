package services

import (
	"log/slog"

	"github.com/SAP-F-2025/grading-service/internal/cache"
	"github.com/SAP-F-2025/grading-service/internal/events"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"github.com/SAP-F-2025/grading-service/internal/validator"
)

// ServiceManager exposes every service behind one handle for the handlers
type ServiceManager interface {
	Grading() GradingService
	Question() QuestionService
}

type serviceManager struct {
	grading  GradingService
	question QuestionService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validate *validator.Validator,
	gradingConfig GradingServiceConfig,
) ServiceManager {
	return &serviceManager{
		grading:  NewGradingService(repo, cacheService, eventPublisher, logger, validate, gradingConfig),
		question: NewQuestionService(repo, cacheService, eventPublisher, logger, validate),
	}
}

func (m *serviceManager) Grading() GradingService {
	return m.grading
}

func (m *serviceManager) Question() QuestionService {
	return m.question
}
