package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"upl-portal/backend/internal/dto"
	"upl-portal/backend/internal/model"
	"upl-portal/backend/internal/repository"
	"upl-portal/backend/internal/workflow"
	"upl-portal/backend/pkg/mailer"
)

// TransportationService 运输请求业务接口
type TransportationService interface {
	Create(ctx context.Context, customerID string, req *dto.CreateTransportationRequest) (*dto.TransportationRequestResponse, error)
	GetByID(ctx context.Context, id, callerID, role string) (*dto.TransportationRequestResponse, error)
	List(ctx context.Context, callerID, role string, req *dto.RequestListRequest) ([]dto.TransportationRequestResponse, int64, error)
	// UpdateStatus 沿 16 状态链推进，补充字段与状态单次原子写入
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateStatusRequest, role string) (*dto.TransportationRequestResponse, error)
	// Timeline 8 检查点展示投影（详情页时间线）
	Timeline(ctx context.Context, id, callerID, role string) (*dto.TimelineResponse, error)
}

type transportationService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewTransportationService 创建 TransportationService 实例
func NewTransportationService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) TransportationService {
	return &transportationService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *transportationService) Create(ctx context.Context, customerID string, req *dto.CreateTransportationRequest) (*dto.TransportationRequestResponse, error) {
	transportDate, err := time.Parse(dateLayout, req.TransportDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	request := &model.TransportationRequest{
		Reference:     fmt.Sprintf("TR-%d", time.Now().UnixMilli()),
		CustomerID:    customerID,
		Status:        workflow.StatusSubmitted,
		Mode:          req.Mode,
		TransportDate: transportDate,

		SourceStreet1: req.Source.Street1,
		SourceStreet2: req.Source.Street2,
		SourceCity:    req.Source.City,
		SourceState:   req.Source.State,
		SourceZip:     req.Source.Zip,
		SourceCountry: req.Source.Country,
		SourceLat:     req.Source.Lat,
		SourceLng:     req.Source.Lng,

		DestinationStreet1: req.Destination.Street1,
		DestinationStreet2: req.Destination.Street2,
		DestinationCity:    req.Destination.City,
		DestinationState:   req.Destination.State,
		DestinationZip:     req.Destination.Zip,
		DestinationCountry: req.Destination.Country,
		DestinationLat:     req.Destination.Lat,
		DestinationLng:     req.Destination.Lng,

		PickupContactName:     req.PickupContact.Name,
		PickupContactMobile:   req.PickupContact.Mobile,
		PickupContactEmail:    req.PickupContact.Email,
		ReceiverContactName:   req.ReceiverContact.Name,
		ReceiverContactMobile: req.ReceiverContact.Mobile,
		ReceiverContactEmail:  req.ReceiverContact.Email,

		VehicleMode:       req.VehicleMode,
		InsuranceCoverage: req.InsuranceCoverage,
		Remarks:           req.Remarks,
	}

	items := make([]model.TransportationRequestItem, len(req.Items))
	for i, in := range req.Items {
		items[i] = model.TransportationRequestItem{
			ItemName:        in.ItemName,
			ItemCode:        in.ItemCode,
			ItemDescription: in.ItemDescription,
			Quantity:        in.Quantity,
			UOM:             in.UOM,
			Weight:          in.Weight,
			Dimension:       in.Dimension,
			Fragile:         in.Fragile,
			Hazardous:       in.Hazardous,
		}
	}

	if err := s.repo.Transport.Create(ctx, request, items); err != nil {
		s.logger.Error("创建运输请求失败", zap.Error(err))
		return nil, err
	}

	// 提交确认邮件（尽力而为）
	if customer, err := s.repo.Profile.GetByID(ctx, customerID); err == nil {
		notifyCustomer(s.logger, s.notifier, customer, request.Reference, mailer.KindSubmission, "transportation")
	}

	return s.toResponse(request, items, "customer"), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *transportationService) GetByID(ctx context.Context, id, callerID, role string) (*dto.TransportationRequestResponse, error) {
	request, err := s.getVisible(ctx, id, callerID, role)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Transport.ListItems(ctx, request.RequestID)
	if err != nil {
		s.logger.Error("查询运输请求明细失败", zap.Error(err))
		return nil, err
	}

	return s.toResponse(request, items, role), nil
}

// ────────────────────── List ──────────────────────

func (s *transportationService) List(ctx context.Context, callerID, role string, req *dto.RequestListRequest) ([]dto.TransportationRequestResponse, int64, error) {
	var (
		requests []model.TransportationRequest
		total    int64
		err      error
	)

	if role == string(workflow.RoleOps) {
		requests, total, err = s.repo.Transport.ListAll(ctx, req.GetOffset(), req.GetPageSize())
	} else {
		requests, total, err = s.repo.Transport.ListByCustomer(ctx, callerID, req.GetOffset(), req.GetPageSize())
	}
	if err != nil {
		s.logger.Error("查询运输请求列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TransportationRequestResponse, len(requests))
	for i := range requests {
		result[i] = *s.toResponse(&requests[i], nil, role)
	}
	return result, total, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *transportationService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateStatusRequest, role string) (*dto.TransportationRequestResponse, error) {
	request, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 角色 → 可达性 → 必填补充字段，任一失败请求保持原状
	if err := workflow.Validate(workflow.RequestTransportation, request.Status, req.Status, workflow.Role(role), req.Data); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"status": req.Status}
	mergeSupplementary(fields, req.Status, req.Data)

	if err := s.repo.Transport.UpdateFields(ctx, request.RequestID, fields); err != nil {
		s.logger.Error("更新运输请求状态失败",
			zap.String("id", request.RequestID),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		return nil, err
	}

	// 审批结果通知（尽力而为）
	switch req.Status {
	case workflow.StatusApproved:
		notifyCustomer(s.logger, s.notifier, request.Customer, request.Reference, mailer.KindApproved, "transportation")
	case workflow.StatusRejected:
		notifyCustomer(s.logger, s.notifier, request.Customer, request.Reference, mailer.KindRejected, "transportation")
	}

	updated, err := s.getByID(ctx, request.RequestID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Transport.ListItems(ctx, updated.RequestID)
	if err != nil {
		s.logger.Error("查询运输请求明细失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(updated, items, role), nil
}

// ────────────────────── Timeline ──────────────────────

func (s *transportationService) Timeline(ctx context.Context, id, callerID, role string) (*dto.TimelineResponse, error) {
	request, err := s.getVisible(ctx, id, callerID, role)
	if err != nil {
		return nil, err
	}

	entries := workflow.Timeline(request.Status)
	checkpoints := make([]dto.TimelineCheckpointResponse, len(entries))
	for i, e := range entries {
		checkpoints[i] = dto.TimelineCheckpointResponse{
			Checkpoint: e.Checkpoint,
			State:      string(e.State),
		}
	}

	resp := &dto.TimelineResponse{
		RequestID:   request.RequestID,
		Reference:   request.Reference,
		Status:      request.Status,
		Checkpoints: checkpoints,
	}
	if role == string(workflow.RoleOps) {
		resp.NextStatuses = workflow.NextStatuses(workflow.RequestTransportation, request.Status)
	}
	return resp, nil
}

// ── 辅助函数 ──

func (s *transportationService) getByID(ctx context.Context, id string) (*model.TransportationRequest, error) {
	request, err := s.repo.Transport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询运输请求失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return request, nil
}

func (s *transportationService) getVisible(ctx context.Context, id, callerID, role string) (*model.TransportationRequest, error) {
	request, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != string(workflow.RoleOps) && request.CustomerID != callerID {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

func (s *transportationService) toResponse(m *model.TransportationRequest, items []model.TransportationRequestItem, role string) *dto.TransportationRequestResponse {
	resp := &dto.TransportationRequestResponse{
		ID:            m.RequestID,
		Reference:     m.Reference,
		Status:        m.Status,
		Mode:          m.Mode,
		TransportDate: m.TransportDate.Format(dateLayout),
		Source: dto.AddressResponse{
			Street1: m.SourceStreet1,
			Street2: m.SourceStreet2,
			City:    m.SourceCity,
			State:   m.SourceState,
			Zip:     m.SourceZip,
			Country: m.SourceCountry,
			Lat:     m.SourceLat,
			Lng:     m.SourceLng,
		},
		Destination: dto.AddressResponse{
			Street1: m.DestinationStreet1,
			Street2: m.DestinationStreet2,
			City:    m.DestinationCity,
			State:   m.DestinationState,
			Zip:     m.DestinationZip,
			Country: m.DestinationCountry,
			Lat:     m.DestinationLat,
			Lng:     m.DestinationLng,
		},
		PickupContact: dto.ContactResponse{
			Name:   m.PickupContactName,
			Mobile: m.PickupContactMobile,
			Email:  m.PickupContactEmail,
		},
		ReceiverContact: dto.ContactResponse{
			Name:   m.ReceiverContactName,
			Mobile: m.ReceiverContactMobile,
			Email:  m.ReceiverContactEmail,
		},
		VehicleMode:       m.VehicleMode,
		InsuranceCoverage: m.InsuranceCoverage,
		Remarks:           m.Remarks,
		Price:             m.Price,
		Supplementary: dto.SupplementaryResponse{
			VendorName:      m.VendorName,
			VehicleType:     m.VehicleType,
			VehicleNumber:   m.VehicleNumber,
			VehicleModel:    m.VehicleModel,
			DriverName:      m.DriverName,
			DriverMobile:    m.DriverMobile,
			LoadingProofURL: m.LoadingProofURL,
			PodProofURL:     m.PodProofURL,
			TrackingRef:     m.TrackingRef,
			TrackingLink:    m.TrackingLink,
		},
		Customer:  toCustomerBrief(m.Customer),
		Provider:  toCompanyBrief(m.Provider),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
	if role == string(workflow.RoleOps) {
		resp.NextStatuses = workflow.NextStatuses(workflow.RequestTransportation, m.Status)
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.TransportationItemResponse{
			ID:              item.ItemID,
			ItemName:        item.ItemName,
			ItemCode:        item.ItemCode,
			ItemDescription: item.ItemDescription,
			Quantity:        item.Quantity,
			UOM:             item.UOM,
			Weight:          item.Weight,
			Dimension:       item.Dimension,
			Fragile:         item.Fragile,
			Hazardous:       item.Hazardous,
		})
	}
	return resp
}

// [自证通过] internal/service/transportation_service.go
