package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
	"github.com/noah-isme/course-enrollment-api/pkg/export"
)

const (
	courseReportCachePrefix  = "courses:report"
	courseReportCachePattern = courseReportCachePrefix + ":*"
)

var courseReportHeaders = []string{"Course ID", "Course", "Start Date", "End Date", "Student ID", "Student", "Age"}

type courseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	ListWithEnrollmentsBetween(ctx context.Context, from, to time.Time) ([]*models.CourseRoster, error)
}

type reportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// CourseServiceConfig configures report caching.
type CourseServiceConfig struct {
	ReportCacheTTL time.Duration
}

// ExportResult carries a rendered course report.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// CourseService handles course registration and the course report.
type CourseService struct {
	repo      courseRepository
	cache     reportCache
	renderer  *export.Renderer
	validator *validator.Validate
	logger    *zap.Logger
	config    CourseServiceConfig
}

// NewCourseService constructs the course service. A nil cache disables report caching.
func NewCourseService(repo courseRepository, cache reportCache, validate *validator.Validate, logger *zap.Logger, cfg CourseServiceConfig) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:      repo,
		cache:     cache,
		renderer:  export.NewRenderer(),
		validator: validate,
		logger:    logger,
		config:    cfg,
	}
}

// Register validates and persists a new course.
func (s *CourseService) Register(ctx context.Context, req dto.RegisterCourseRequest) (*dto.RegisteredCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := models.NewCourse(req.Name, req.RegistrationFee, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info("course registered", zap.String("course_id", course.ID()), zap.String("fee", course.RegistrationFee().String()))
	invalidateReports(ctx, s.cache, s.logger)
	registered := dto.ToRegisteredCourse(course)
	return &registered, nil
}

// Get returns a stored course.
func (s *CourseService) Get(ctx context.Context, id string) (*dto.RegisteredCourse, error) {
	if err := ensureEntityID("Course", id); err != nil {
		return nil, err
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("Course", id, err)
	}
	registered := dto.ToRegisteredCourse(course)
	return &registered, nil
}

// ListBetweenDates returns courses running strictly inside the window with their enrolled students.
// The boolean reports whether the result was served from cache.
func (s *CourseService) ListBetweenDates(ctx context.Context, filter dto.CourseReportFilter) ([]dto.CourseWithStudents, bool, error) {
	if filter.From.After(filter.To) {
		return []dto.CourseWithStudents{}, false, nil
	}
	key := reportCacheKey(filter)
	if s.cache != nil {
		var cached []dto.CourseWithStudents
		hit, err := s.cache.Get(ctx, key, &cached)
		if err == nil && hit {
			return cached, true, nil
		}
	}

	rosters, err := s.repo.ListWithEnrollmentsBetween(ctx, filter.From, filter.To)
	if err != nil {
		return nil, false, err
	}
	report := make([]dto.CourseWithStudents, 0, len(rosters))
	for _, roster := range rosters {
		report = append(report, dto.ToCourseWithStudents(roster))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.config.ReportCacheTTL); err != nil {
			s.logger.Debug("course report not cached", zap.String("key", key), zap.Error(err))
		}
	}
	return report, false, nil
}

// Export renders the course report as a downloadable document, one row per enrolled student.
func (s *CourseService) Export(ctx context.Context, filter dto.CourseReportFilter, format export.Format) (*ExportResult, error) {
	report, _, err := s.ListBetweenDates(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   fmt.Sprintf("Courses between %s and %s", filter.From.Format(dto.BirthDateLayout), filter.To.Format(dto.BirthDateLayout)),
		Headers: courseReportHeaders,
	}
	for _, course := range report {
		start := course.StartDate.Format(time.RFC3339)
		end := course.EndDate.Format(time.RFC3339)
		if len(course.Students) == 0 {
			data.Rows = append(data.Rows, []string{course.ID, course.Name, start, end, "", "", ""})
			continue
		}
		for _, student := range course.Students {
			data.Rows = append(data.Rows, []string{course.ID, course.Name, start, end, student.ID, student.Name, strconv.Itoa(student.Age)})
		}
	}
	body, err := s.renderer.Render(format, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render course report")
	}
	return &ExportResult{
		Filename:    format.Filename("courses"),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func reportCacheKey(filter dto.CourseReportFilter) string {
	return fmt.Sprintf("%s:%d:%d", courseReportCachePrefix, filter.From.UTC().Unix(), filter.To.UTC().Unix())
}

func invalidateReports(ctx context.Context, cache reportCache, logger *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, courseReportCachePattern); err != nil {
		logger.Warn("course report cache not invalidated", zap.Error(err))
	}
}
