package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"upl-portal/backend/internal/dto"
	"upl-portal/backend/internal/service"
	"upl-portal/backend/internal/workflow"
	"upl-portal/backend/pkg/response"
)

// WarehouseHandler 仓储请求模块 HTTP 处理器
type WarehouseHandler struct {
	warehouseSvc service.WarehouseService
}

// NewWarehouseHandler 创建 WarehouseHandler
func NewWarehouseHandler(warehouseSvc service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseSvc: warehouseSvc}
}

// Create 创建仓储请求
// POST /api/v1/requests/warehouse
func (h *WarehouseHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.warehouseSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 13004, "结束日期不能早于开始日期")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// List 仓储请求列表（客户看自己，运营看全部）
// GET /api/v1/requests/warehouse
func (h *WarehouseHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.RequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	requests, total, err := h.warehouseSvc.List(c.Request.Context(), userID, role, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, requests, total, req.GetPage(), req.GetPageSize())
}

// GetByID 仓储请求详情
// GET /api/v1/requests/warehouse/:id
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.warehouseSvc.GetByID(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			response.NotFound(c, 13001, "请求不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateStatus 仓储请求状态流转（仅运营）
// PUT /api/v1/requests/warehouse/:id/status
func (h *WarehouseHandler) UpdateStatus(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.warehouseSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req, role)
	if err != nil {
		writeTransitionError(c, 13000, err)
		return
	}

	response.OK(c, result)
}

// writeTransitionError 状态流转错误 → HTTP 响应（仓储 13xxx / 运输 14xxx）
// codeBase+1 不存在；codeBase+2 不可达流转；codeBase+3 缺少必填补充字段
func writeTransitionError(c *gin.Context, codeBase int, err error) {
	var ite *workflow.InvalidTransitionError
	var ve *workflow.ValidationError

	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, codeBase+1, "请求不存在")
	case errors.Is(err, workflow.ErrNotAuthorized):
		response.Forbidden(c, 10003, "仅运营角色可以推进请求状态")
	case errors.As(err, &ite):
		response.Conflict(c, codeBase+2, ite.Error())
	case errors.As(err, &ve):
		response.BadRequest(c, codeBase+3, ve.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/warehouse_handler.go
