package handlers

import (
	"net/http"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/grading"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"github.com/SAP-F-2025/grading-service/internal/services"
	"github.com/SAP-F-2025/grading-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GradingHandler struct {
	BaseHandler
	gradingService services.GradingService
}

func NewGradingHandler(gradingService services.GradingService, logger utils.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
	}
}

// Grade grades a response against a question sent in the same request
// @Summary Grade inline
// @Description Grades a response against an inline reference question without storing it
// @Tags grading
// @Accept json
// @Produce json
// @Param request body services.GradeRequest true "Question and response"
// @Success 200 {object} services.GradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /grading/grade [post]
func (h *GradingHandler) Grade(c *gin.Context) {
	var req services.GradeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Grading inline response", "question_type", req.Type)

	result, err := h.gradingService.Grade(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GradeQuestion grades a student's response to a stored question
// @Summary Grade stored question
// @Description Grades a response against a stored question and records the result
// @Tags grading
// @Accept json
// @Produce json
// @Param question_id path uint true "Question ID"
// @Param request body services.SubmitResponseRequest true "Response"
// @Success 201 {object} services.GradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /grading/questions/{question_id}/responses [post]
func (h *GradingHandler) GradeQuestion(c *gin.Context) {
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}

	var req services.SubmitResponseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Grading response", "question_id", questionID)

	result, err := h.gradingService.GradeQuestion(c.Request.Context(), questionID, &req, c.GetHeader(UserIDHeader))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetGradedResponse retrieves a graded response by ID
// @Summary Get graded response
// @Tags grading
// @Produce json
// @Param id path uint true "Graded response ID"
// @Success 200 {object} models.GradedResponse
// @Failure 404 {object} ErrorResponse
// @Router /grading/responses/{id} [get]
func (h *GradingHandler) GetGradedResponse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	record, err := h.gradingService.GetGradedResponse(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListGradedResponses lists graded responses
// @Summary List graded responses
// @Tags grading
// @Produce json
// @Param exam_id query uint false "Exam ID"
// @Param question_id query uint false "Question ID"
// @Param student_id query string false "Student ID"
// @Param type query string false "Question type"
// @Param passed query bool false "Passed"
// @Param date_from query string false "RFC3339 lower bound on graded_at"
// @Param date_to query string false "RFC3339 upper bound on graded_at"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Param sort_by query string false "graded_at, correct or id"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} services.GradedResponseListResponse
// @Failure 400 {object} ErrorResponse
// @Router /grading/responses [get]
func (h *GradingHandler) ListGradedResponses(c *gin.Context) {
	filters, ok := h.parseGradedResponseFilters(c)
	if !ok {
		return
	}

	list, err := h.gradingService.ListGradedResponses(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ExportExamResults downloads an exam's graded responses as a workbook
// @Summary Export exam results
// @Tags grading
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param exam_id path uint true "Exam ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /grading/exams/{exam_id}/export [get]
func (h *GradingHandler) ExportExamResults(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	h.LogRequest(c, "Exporting exam results", "exam_id", examID)

	export, err := h.gradingService.ExportExamResults(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, export.Data)
}

func (h *GradingHandler) parseGradedResponseFilters(c *gin.Context) (repositories.GradedResponseFilters, bool) {
	filters := repositories.GradedResponseFilters{
		ExamID:     parseUintQueryPtr(c, "exam_id"),
		QuestionID: parseUintQueryPtr(c, "question_id"),
		Passed:     parseBoolQueryPtr(c, "passed"),
		Limit:      parseIntQuery(c, "limit", 20),
		Offset:     parseIntQuery(c, "offset", 0),
		SortBy:     c.DefaultQuery("sort_by", "graded_at"),
		SortOrder:  c.DefaultQuery("sort_order", "desc"),
	}

	if studentID := c.Query("student_id"); studentID != "" {
		filters.StudentID = &studentID
	}

	if raw := c.Query("type"); raw != "" {
		qt, err := grading.ParseQuestionType(raw)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid type", err, err.Error())
			return filters, false
		}
		filters.Type = &qt
	}

	for param, dest := range map[string]**time.Time{"date_from": &filters.DateFrom, "date_to": &filters.DateTo} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, err, err.Error())
			return filters, false
		}
		*dest = &t
	}

	return filters, true
}
