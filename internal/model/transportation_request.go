package model

import "time"

// TransportationRequest 运输服务请求表 — 对应 transportation_requests
// 状态流转由 internal/workflow 统一校验，禁止绕过工作流直接改写 status
type TransportationRequest struct {
	RequestID  string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Reference  string  `gorm:"type:varchar(40);not null;uniqueIndex"                    json:"reference"`
	CustomerID string  `gorm:"type:uuid;not null"                                       json:"customer_id"`
	ProviderID *string `gorm:"type:uuid"                                                json:"provider_id,omitempty"`
	Status     string  `gorm:"type:varchar(30);not null;default:'submitted'"            json:"status"`
	Mode       string  `gorm:"type:varchar(10);not null"                                json:"mode"` // air | road | water

	TransportDate time.Time `gorm:"type:date;not null" json:"transport_date"`

	// 起点地址块
	SourceStreet1 *string  `gorm:"type:varchar(200)" json:"source_street1,omitempty"`
	SourceStreet2 *string  `gorm:"type:varchar(200)" json:"source_street2,omitempty"`
	SourceCity    *string  `gorm:"type:varchar(100)" json:"source_city,omitempty"`
	SourceState   *string  `gorm:"type:varchar(100)" json:"source_state,omitempty"`
	SourceZip     *string  `gorm:"type:varchar(20)"  json:"source_zip,omitempty"`
	SourceCountry *string  `gorm:"type:varchar(100)" json:"source_country,omitempty"`
	SourceLat     *float64 `json:"source_lat,omitempty"`
	SourceLng     *float64 `json:"source_lng,omitempty"`

	// 终点地址块
	DestinationStreet1 *string  `gorm:"type:varchar(200)" json:"destination_street1,omitempty"`
	DestinationStreet2 *string  `gorm:"type:varchar(200)" json:"destination_street2,omitempty"`
	DestinationCity    *string  `gorm:"type:varchar(100)" json:"destination_city,omitempty"`
	DestinationState   *string  `gorm:"type:varchar(100)" json:"destination_state,omitempty"`
	DestinationZip     *string  `gorm:"type:varchar(20)"  json:"destination_zip,omitempty"`
	DestinationCountry *string  `gorm:"type:varchar(100)" json:"destination_country,omitempty"`
	DestinationLat     *float64 `json:"destination_lat,omitempty"`
	DestinationLng     *float64 `json:"destination_lng,omitempty"`

	// 取货 / 收货联系人
	PickupContactName     *string `gorm:"type:varchar(100)" json:"pickup_contact_name,omitempty"`
	PickupContactMobile   *string `gorm:"type:varchar(30)"  json:"pickup_contact_mobile,omitempty"`
	PickupContactEmail    *string `gorm:"type:varchar(255)" json:"pickup_contact_email,omitempty"`
	ReceiverContactName   *string `gorm:"type:varchar(100)" json:"receiver_contact_name,omitempty"`
	ReceiverContactMobile *string `gorm:"type:varchar(30)"  json:"receiver_contact_mobile,omitempty"`
	ReceiverContactEmail  *string `gorm:"type:varchar(255)" json:"receiver_contact_email,omitempty"`

	VehicleMode       *string  `gorm:"type:varchar(10)"   json:"vehicle_mode,omitempty"` // own | vendor
	InsuranceCoverage *bool    `gorm:"default:false"      json:"insurance_coverage,omitempty"`
	Remarks           *string  `gorm:"type:text"          json:"remarks,omitempty"`
	Price             *float64 `gorm:"type:numeric(12,2)" json:"price,omitempty"`

	// 工作流补充字段（随特定状态流转写入）
	DriverName      *string `gorm:"type:varchar(100)" json:"driver_name,omitempty"`
	DriverMobile    *string `gorm:"type:varchar(30)"  json:"driver_mobile,omitempty"`
	VehicleNumber   *string `gorm:"type:varchar(30)"  json:"vehicle_number,omitempty"`
	VehicleModel    *string `gorm:"type:varchar(100)" json:"vehicle_model,omitempty"`
	VendorName      *string `gorm:"type:varchar(200)" json:"vendor_name,omitempty"`
	VehicleType     *string `gorm:"type:varchar(50)"  json:"vehicle_type,omitempty"`
	LoadingProofURL *string `gorm:"type:text"         json:"loading_proof_url,omitempty"`
	PodProofURL     *string `gorm:"type:text"         json:"pod_proof_url,omitempty"`
	TrackingRef     *string `gorm:"type:varchar(100)" json:"tracking_ref,omitempty"`
	TrackingLink    *string `gorm:"type:text"         json:"tracking_link,omitempty"`
	BaseModel

	// 关联
	Customer *Profile                    `gorm:"foreignKey:CustomerID;references:ProfileID" json:"customer,omitempty"`
	Provider *Company                    `gorm:"foreignKey:ProviderID;references:CompanyID" json:"provider,omitempty"`
	Items    []TransportationRequestItem `gorm:"foreignKey:TransportationRequestID"         json:"items,omitempty"`
}

// TableName 指定表名
func (TransportationRequest) TableName() string { return "transportation_requests" }

// TransportationRequestItem 运输请求明细表 — 对应 transportation_request_items
type TransportationRequestItem struct {
	ItemID                  string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TransportationRequestID string    `gorm:"type:uuid;not null"                                       json:"transportation_request_id"`
	ItemName                string    `gorm:"type:varchar(200);not null"                               json:"item_name"`
	ItemCode                *string   `gorm:"type:varchar(100)"                                        json:"item_code,omitempty"`
	ItemDescription         *string   `gorm:"type:text"                                                json:"item_description,omitempty"`
	Quantity                int       `gorm:"not null"                                                 json:"quantity"`
	UOM                     string    `gorm:"column:uom;type:varchar(30);not null"                     json:"uom"`
	Weight                  *float64  `gorm:"type:numeric(12,3)"                                       json:"weight,omitempty"`
	Dimension               *string   `gorm:"type:varchar(100)"                                        json:"dimension,omitempty"`
	Fragile                 *bool     `gorm:"default:false"                                            json:"fragile,omitempty"`
	Hazardous               *bool     `gorm:"default:false"                                            json:"hazardous,omitempty"`
	CreatedAt               time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (TransportationRequestItem) TableName() string { return "transportation_request_items" }

// [自证通过] internal/model/transportation_request.go
