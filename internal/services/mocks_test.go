package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/cache"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRepository hands out the per-entity mocks and runs transactions inline
type MockRepository struct {
	exams     *MockExamRepository
	questions *MockQuestionRepository
	responses *MockGradedResponseRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		exams:     new(MockExamRepository),
		questions: new(MockQuestionRepository),
		responses: new(MockGradedResponseRepository),
	}
}

func (m *MockRepository) Exam() repositories.ExamRepository                     { return m.exams }
func (m *MockRepository) Question() repositories.QuestionRepository             { return m.questions }
func (m *MockRepository) GradedResponse() repositories.GradedResponseRepository { return m.responses }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.exams.AssertExpectations(t)
	m.questions.AssertExpectations(t)
	m.responses.AssertExpectations(t)
}

// MockExamRepository is a mock implementation of ExamRepository
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) Create(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	args := m.Called(ctx, tx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	args := m.Called(ctx, tx, id)
	exam, _ := args.Get(0).(*models.Exam)
	return exam, args.Error(1)
}

func (m *MockExamRepository) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	args := m.Called(ctx, tx, id)
	exam, _ := args.Get(0).(*models.Exam)
	return exam, args.Error(1)
}

func (m *MockExamRepository) Update(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	args := m.Called(ctx, tx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	args := m.Called(ctx, tx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	args := m.Called(ctx, tx, id)
	question, _ := args.Get(0).(*models.Question)
	return question, args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	args := m.Called(ctx, tx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]uint, error) {
	args := m.Called(ctx, tx, examID)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

func (m *MockQuestionRepository) ListByExam(ctx context.Context, tx *gorm.DB, examID uint, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, tx, examID, filters)
	questions, _ := args.Get(0).([]*models.Question)
	return questions, args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) NextOrder(ctx context.Context, tx *gorm.DB, examID uint) (int, error) {
	args := m.Called(ctx, tx, examID)
	return args.Int(0), args.Error(1)
}

// MockGradedResponseRepository is a mock implementation of GradedResponseRepository
type MockGradedResponseRepository struct {
	mock.Mock
}

func (m *MockGradedResponseRepository) Create(ctx context.Context, tx *gorm.DB, response *models.GradedResponse) error {
	args := m.Called(ctx, tx, response)
	return args.Error(0)
}

func (m *MockGradedResponseRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.GradedResponse, error) {
	args := m.Called(ctx, tx, id)
	response, _ := args.Get(0).(*models.GradedResponse)
	return response, args.Error(1)
}

func (m *MockGradedResponseRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.GradedResponseFilters) ([]*models.GradedResponse, int64, error) {
	args := m.Called(ctx, tx, filters)
	responses, _ := args.Get(0).([]*models.GradedResponse)
	return responses, args.Get(1).(int64), args.Error(2)
}

func (m *MockGradedResponseRepository) ListByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.GradedResponse, error) {
	args := m.Called(ctx, tx, examID)
	responses, _ := args.Get(0).([]*models.GradedResponse)
	return responses, args.Error(1)
}

func (m *MockGradedResponseRepository) GetExamStats(ctx context.Context, tx *gorm.DB, examID uint) (*repositories.ExamResultStats, error) {
	args := m.Called(ctx, tx, examID)
	stats, _ := args.Get(0).(*repositories.ExamResultStats)
	return stats, args.Error(1)
}

// memoryCache is an in-process CacheService that stores JSON like the redis one
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
