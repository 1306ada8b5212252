package dto

// ── 仓储请求模块 DTO ──

// CreateWarehouseRequest 创建仓储请求
type CreateWarehouseRequest struct {
	FromDate     string               `json:"from_date"     binding:"required,datetime=2006-01-02"`
	ToDate       string               `json:"to_date"       binding:"required,datetime=2006-01-02"`
	AreaRequired *float64             `json:"area_required" binding:"omitempty,gt=0"`
	Dimensions   *string              `json:"dimensions"    binding:"omitempty,max=100"`
	Items        []WarehouseItemInput `json:"items"         binding:"required,min=1,dive"`
}

// WarehouseItemInput 仓储请求明细输入
type WarehouseItemInput struct {
	ItemName string `json:"item_name" binding:"required,max=200"`
	Quantity int    `json:"quantity"  binding:"required,gt=0"`
	UOM      string `json:"uom"       binding:"required,max=30"`
}

// RequestListRequest 请求列表查询参数
type RequestListRequest struct {
	PaginationRequest
}

// ── 响应 ──

// WarehouseRequestResponse 仓储请求响应
type WarehouseRequestResponse struct {
	ID           string                  `json:"id"`
	Reference    string                  `json:"reference"`
	Status       string                  `json:"status"`
	FromDate     string                  `json:"from_date"`
	ToDate       string                  `json:"to_date"`
	AreaRequired *float64                `json:"area_required,omitempty"`
	Dimensions   *string                 `json:"dimensions,omitempty"`
	Price        *float64                `json:"price,omitempty"`
	Customer     *CustomerBrief          `json:"customer,omitempty"`
	Provider     *CompanyBrief           `json:"provider,omitempty"`
	Items        []WarehouseItemResponse `json:"items,omitempty"`
	NextStatuses []string                `json:"next_statuses,omitempty"` // 运营角色可执行的流转
	CreatedAt    string                  `json:"created_at"`
	UpdatedAt    string                  `json:"updated_at"`
}

// WarehouseItemResponse 仓储请求明细响应
type WarehouseItemResponse struct {
	ID       string `json:"id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	UOM      string `json:"uom"`
}
