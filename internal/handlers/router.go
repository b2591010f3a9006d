package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/services"
	"github.com/SAP-F-2025/grading-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerManager struct {
	gradingHandler  *GradingHandler
	questionHandler *QuestionHandler
	database        Pinger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, database Pinger) *HandlerManager {
	return &HandlerManager{
		gradingHandler:  NewGradingHandler(serviceManager.Grading(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
		database:        database,
	}
}

// NewRouter builds the gin engine with the middleware every route shares
func NewRouter(logger utils.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader, UserIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		gradingGroup := v1.Group("/grading")
		{
			gradingGroup.POST("/grade", hm.gradingHandler.Grade)
			gradingGroup.POST("/questions/:question_id/responses", hm.gradingHandler.GradeQuestion)
			gradingGroup.GET("/responses", hm.gradingHandler.ListGradedResponses)
			gradingGroup.GET("/responses/:id", hm.gradingHandler.GetGradedResponse)
			gradingGroup.GET("/exams/:exam_id/export", hm.gradingHandler.ExportExamResults)
		}

		exams := v1.Group("/exams")
		{
			exams.POST("", hm.questionHandler.CreateExam)
			exams.GET("/:id", hm.questionHandler.GetExam)
			exams.PUT("/:id", hm.questionHandler.UpdateExam)
			exams.DELETE("/:id", hm.questionHandler.DeleteExam)
			exams.POST("/:id/questions", hm.questionHandler.CreateQuestion)
			exams.GET("/:id/questions", hm.questionHandler.ListQuestions)
		}

		questions := v1.Group("/questions")
		{
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}
	}
}

// HealthCheck reports service liveness and database reachability
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status := gin.H{
		"status":  "healthy",
		"service": "grading-service",
	}

	if hm.database != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := hm.database.Ping(ctx); err != nil {
			status["status"] = "unhealthy"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}

	c.JSON(http.StatusOK, status)
}

// RequestID tags each request with an id, reusing the caller's when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, id)
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), services.RequestIDKey, id))
		c.Next()
	}
}
