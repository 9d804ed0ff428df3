package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/middleware"
	"github.com/noah-isme/course-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
	"github.com/noah-isme/course-enrollment-api/pkg/export"
	"github.com/noah-isme/course-enrollment-api/pkg/response"
)

type courseService interface {
	Register(ctx context.Context, req dto.RegisterCourseRequest) (*dto.RegisteredCourse, error)
	Get(ctx context.Context, id string) (*dto.RegisteredCourse, error)
	ListBetweenDates(ctx context.Context, filter dto.CourseReportFilter) ([]dto.CourseWithStudents, bool, error)
	Export(ctx context.Context, filter dto.CourseReportFilter, format export.Format) (*service.ExportResult, error)
}

// CourseHandler manages course endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(svc courseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Register godoc
// @Summary Register course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.RegisterCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Register(c *gin.Context) {
	var req dto.RegisterCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// List godoc
// @Summary List courses running inside a window with their students
// @Tags Courses
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	courses, cached, err := h.service.ListBetweenDates(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, courses, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export course report
// @Tags Courses
// @Produce text/csv
// @Produce application/pdf
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /courses/export [get]
func (h *CourseHandler) Export(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "format must be csv or pdf"))
		return
	}
	result, err := h.service.Export(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}

func parseReportFilter(c *gin.Context) (dto.CourseReportFilter, error) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return dto.CourseReportFilter{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "from must be an RFC3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return dto.CourseReportFilter{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "to must be an RFC3339 timestamp")
	}
	return dto.CourseReportFilter{From: from, To: to}, nil
}
