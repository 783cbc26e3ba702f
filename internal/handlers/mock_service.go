package handlers

import (
	"context"
	"net/http"

	"datahub_sim/internal/models"
	"datahub_sim/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSimulations struct {
	runResp    models.Run
	runErr     error
	cmpResp    service.Comparison
	cmpErr     error
	getResp    models.Run
	getErr     error
	listResp   []models.Run
	listErr    error
	lastParams service.RunParams
	lastGetID  string
	lastLimit  int
	runCalls   int
}

func (m *mockSimulations) Run(ctx context.Context, p service.RunParams) (models.Run, error) {
	m.runCalls++
	m.lastParams = p
	return m.runResp, m.runErr
}
func (m *mockSimulations) Compare(ctx context.Context, p service.RunParams) (service.Comparison, error) {
	m.lastParams = p
	return m.cmpResp, m.cmpErr
}
func (m *mockSimulations) Get(ctx context.Context, id string) (models.Run, error) {
	m.lastGetID = id
	return m.getResp, m.getErr
}
func (m *mockSimulations) List(ctx context.Context, limit int) ([]models.Run, error) {
	m.lastLimit = limit
	return m.listResp, m.listErr
}

type mockSeries struct {
	uploadErr  error
	statusResp []service.SeriesStatus
	statusErr  error
	deleteErr  error

	lastUploadKind   models.SeriesKind
	lastUploadPoints []models.SeriesPoint
	lastDeleteKind   models.SeriesKind
}

func (m *mockSeries) Upload(ctx context.Context, kind models.SeriesKind, points []models.SeriesPoint) error {
	m.lastUploadKind = kind
	m.lastUploadPoints = points
	return m.uploadErr
}
func (m *mockSeries) Status(ctx context.Context) ([]service.SeriesStatus, error) {
	return m.statusResp, m.statusErr
}
func (m *mockSeries) Delete(ctx context.Context, kind models.SeriesKind) error {
	m.lastDeleteKind = kind
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
