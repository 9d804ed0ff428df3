package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/service"
)

func newTestRouter(authEnabled bool) (http.Handler, *service.AuthService, *enrollmentServiceMock) {
	auth := service.NewAuthService(nil, service.AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: time.Hour})
	enrollments := &enrollmentServiceMock{resp: &dto.EnrollmentSummary{EnrollmentID: "e-1", PaymentStatus: "NotRequired"}}
	router := NewRouter(RouterConfig{
		APIPrefix:   "/api/v1",
		AuthEnabled: authEnabled,
		Auth:        auth,
		Metrics:     service.NewMetricsService(),
		Students:    NewStudentHandler(&studentServiceMock{getResp: &dto.StudentSummary{ID: "s-1"}}),
		Courses:     NewCourseHandler(&courseServiceMock{registerResp: &dto.RegisteredCourse{ID: "c-1"}}),
		Enrollments: NewEnrollmentHandler(enrollments),
		Ops:         NewMetricsHandler(service.NewMetricsService(), nil),
	})
	return router, auth, enrollments
}

func serve(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterWithoutAuth(t *testing.T) {
	router, _, enrollments := newTestRouter(false)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/students/s-1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/v1/courses/c-404", "", "").Code)

	w := serve(router, http.MethodPost, "/api/v1/enrollments", "", `{"courseId":"c-1","studentId":"s-1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "c-1", enrollments.last.CourseID)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	metrics := serve(router, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, metrics.Code)
}

func TestRouterRoleChecks(t *testing.T) {
	router, auth, _ := newTestRouter(true)
	registrar, _, err := auth.IssueToken("reg-1", models.RoleRegistrar)
	require.NoError(t, err)
	admin, _, err := auth.IssueToken("adm-1", models.RoleAdmin)
	require.NoError(t, err)
	course := `{"name":"Algebra","startDate":"2030-01-01T09:00:00Z","endDate":"2030-02-01T09:00:00Z"}`

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/api/v1/students/s-1", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/students/s-1", registrar, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodPost, "/api/v1/courses", registrar, course).Code)
	assert.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/api/v1/courses", admin, course).Code)
	assert.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/api/v1/enrollments", registrar, `{"courseId":"c-1","studentId":"s-1"}`).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "", "").Code)
}
