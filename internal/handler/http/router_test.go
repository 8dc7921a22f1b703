package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "0190a0d6-0000-7000-8000-000000000002"
	testAdminID = "0190a0d6-0000-7000-8000-000000000001"
	testEntryID = "0190a0d6-0000-7000-8000-0000000000aa"
)

type stubAuthService struct {
	lastLogin auth.LoginRequest
}

func (s *stubAuthService) Register(_ context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	return user.UserResponse{ID: testUserID, Email: req.Email, Username: req.Username, IsActive: true}, nil
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	s.lastLogin = req
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return auth.TokenResponse{AccessToken: "token", TokenType: "bearer"}, nil
}

type stubUserService struct {
	user.UserService
}

func (s *stubUserService) GetMe(ctx context.Context) (user.UserResponse, error) {
	p, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.UserResponse{ID: p.UserID, Email: p.Email}, nil
}

func (s *stubUserService) List(_ context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	return user.ListUserResponse{Page: filter.Page, Limit: filter.Limit}, nil
}

type stubEmployeeService struct {
	employee.EmployeeService
}

type stubDepartmentService struct {
	department.DepartmentService
}

type stubTimeEntryService struct {
	timeentry.TimeEntryService
}

func (s *stubTimeEntryService) ClockIn(_ context.Context, _ timeentry.ClockInRequest) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, timeentry.ErrAlreadyClockedIn
}

func (s *stubTimeEntryService) GetEntry(_ context.Context, id string) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{ID: id, Status: "completed"}, nil
}

type stubPayrollService struct {
	payroll.PayrollService
}

func (s *stubPayrollService) ProcessPeriod(_ context.Context, req payroll.ProcessPeriodRequest) (payroll.ProcessPeriodResponse, error) {
	if !req.Start.Before(req.End) {
		return payroll.ProcessPeriodResponse{}, payroll.ErrInvalidPeriod
	}
	return payroll.ProcessPeriodResponse{Message: "Processed payroll for 0 employees"}, nil
}

type testServer struct {
	handler http.Handler
	tokens  *jwt.JWTService
	auth    *stubAuthService
}

func newTestServer() testServer {
	tokens := jwt.NewJWTService("test-secret-key-for-jwt", time.Hour)
	authService := &stubAuthService{}
	router := NewRouter(
		config.AppConfig{Name: "payroll-api", Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		tokens,
		NewAuthHandler(authService),
		NewUserHandler(&stubUserService{}, &stubEmployeeService{}),
		NewEmployeeHandler(&stubEmployeeService{}),
		NewDepartmentHandler(&stubDepartmentService{}),
		NewTimeEntryHandler(&stubTimeEntryService{}),
		NewPayrollHandler(&stubPayrollService{}),
	)
	return testServer{handler: router, tokens: tokens, auth: authService}
}

func (s testServer) token(t *testing.T, userID string, admin bool) string {
	t.Helper()
	token, _, err := s.tokens.GenerateAccessToken(userID, "someone@example.com", admin, nil)
	require.NoError(t, err)
	return token
}

func (s testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var envelope response.Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer()
	rec, _ := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Register(t *testing.T) {
	s := newTestServer()

	rec, body := s.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"John@Example.com","username":"john","password":"password123","full_name":"John Doe"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Contains(t, rec.Body.String(), "john@example.com")

	rec, body = s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"email":"bad","username":"jo","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "email")
	assert.Contains(t, body.Error.Details, "password")

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LoginFormAndJSON(t *testing.T) {
	s := newTestServer()

	form := url.Values{"username": {"john"}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "john", s.auth.lastLogin.Username)

	rec, body := s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"username":"john","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestRouter_Authentication(t *testing.T) {
	s := newTestServer()

	rec, _ := s.do(t, http.MethodGet, "/api/v1/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := s.do(t, http.MethodGet, "/api/v1/users/me", s.token(t, testUserID, false), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Contains(t, rec.Body.String(), testUserID)
}

func TestRouter_AdminRoutes(t *testing.T) {
	s := newTestServer()
	userToken := s.token(t, testUserID, false)
	adminToken := s.token(t, testAdminID, true)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/employees"},
		{http.MethodPost, "/api/v1/departments"},
		{http.MethodGet, "/api/v1/time/entries"},
		{http.MethodDelete, "/api/v1/time/entries/" + testEntryID},
		{http.MethodPost, "/api/v1/payroll/process-period"},
		{http.MethodGet, "/api/v1/payroll/summary"},
	} {
		rec, _ := s.do(t, route.method, route.path, userToken, "{}")
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.path)
	}

	rec, _ := s.do(t, http.MethodGet, "/api/v1/users?page=2&limit=5", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"page":2`)
}

func TestRouter_OwnedRoutesReachService(t *testing.T) {
	s := newTestServer()

	rec, _ := s.do(t, http.MethodGet, "/api/v1/time/entries/"+testEntryID, s.token(t, testUserID, false), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := s.do(t, http.MethodGet, "/api/v1/time/entries/not-a-uuid", s.token(t, testUserID, false), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestRouter_ErrorKinds(t *testing.T) {
	s := newTestServer()

	rec, body := s.do(t, http.MethodPost, "/api/v1/time/entries", s.token(t, testUserID, false), `{"clock_in":"2024-03-04T09:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", body.Error.Code)

	rec, body = s.do(t, http.MethodPost, "/api/v1/payroll/process-period", s.token(t, testAdminID, true),
		`{"start_date":"2024-01-31","end_date":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_RANGE", body.Error.Code)

	rec, body = s.do(t, http.MethodPost, "/api/v1/payroll/process-period", s.token(t, testAdminID, true),
		`{"start_date":"2024-01-01","end_date":"2024-01-31"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Processed payroll for 0 employees", body.Message)
}
