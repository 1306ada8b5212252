package dto

// ── 运输请求模块 DTO ──

// AddressInput 地址块输入（起点 / 终点共用）
type AddressInput struct {
	Street1 *string  `json:"street1" binding:"omitempty,max=200"`
	Street2 *string  `json:"street2" binding:"omitempty,max=200"`
	City    *string  `json:"city"    binding:"omitempty,max=100"`
	State   *string  `json:"state"   binding:"omitempty,max=100"`
	Zip     *string  `json:"zip"     binding:"omitempty,max=20"`
	Country *string  `json:"country" binding:"omitempty,max=100"`
	Lat     *float64 `json:"lat"     binding:"omitempty,min=-90,max=90"`
	Lng     *float64 `json:"lng"     binding:"omitempty,min=-180,max=180"`
}

// ContactInput 联系人输入（取货 / 收货共用）
type ContactInput struct {
	Name   *string `json:"name"   binding:"omitempty,max=100"`
	Mobile *string `json:"mobile" binding:"omitempty,max=30"`
	Email  *string `json:"email"  binding:"omitempty,email"`
}

// CreateTransportationRequest 创建运输请求
type CreateTransportationRequest struct {
	Mode              string                    `json:"mode"           binding:"required,oneof=air road water"`
	TransportDate     string                    `json:"transport_date" binding:"required,datetime=2006-01-02"`
	Source            AddressInput              `json:"source"`
	Destination       AddressInput              `json:"destination"`
	PickupContact     ContactInput              `json:"pickup_contact"`
	ReceiverContact   ContactInput              `json:"receiver_contact"`
	VehicleMode       *string                   `json:"vehicle_mode"   binding:"omitempty,oneof=own vendor"`
	InsuranceCoverage *bool                     `json:"insurance_coverage"`
	Remarks           *string                   `json:"remarks"        binding:"omitempty,max=2000"`
	Items             []TransportationItemInput `json:"items"          binding:"required,min=1,dive"`
}

// TransportationItemInput 运输请求明细输入
type TransportationItemInput struct {
	ItemName        string   `json:"item_name"        binding:"required,max=200"`
	ItemCode        *string  `json:"item_code"        binding:"omitempty,max=100"`
	ItemDescription *string  `json:"item_description" binding:"omitempty,max=2000"`
	Quantity        int      `json:"quantity"         binding:"required,gt=0"`
	UOM             string   `json:"uom"              binding:"required,max=30"`
	Weight          *float64 `json:"weight"           binding:"omitempty,gt=0"`
	Dimension       *string  `json:"dimension"        binding:"omitempty,max=100"`
	Fragile         *bool    `json:"fragile"`
	Hazardous       *bool    `json:"hazardous"`
}

// ── 响应 ──

// AddressResponse 地址块响应
type AddressResponse struct {
	Street1 *string  `json:"street1,omitempty"`
	Street2 *string  `json:"street2,omitempty"`
	City    *string  `json:"city,omitempty"`
	State   *string  `json:"state,omitempty"`
	Zip     *string  `json:"zip,omitempty"`
	Country *string  `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// ContactResponse 联系人响应
type ContactResponse struct {
	Name   *string `json:"name,omitempty"`
	Mobile *string `json:"mobile,omitempty"`
	Email  *string `json:"email,omitempty"`
}

// SupplementaryResponse 流转补充字段响应（随状态推进逐步填充）
type SupplementaryResponse struct {
	VendorName      *string `json:"vendor_name,omitempty"`
	VehicleType     *string `json:"vehicle_type,omitempty"`
	VehicleNumber   *string `json:"vehicle_number,omitempty"`
	VehicleModel    *string `json:"vehicle_model,omitempty"`
	DriverName      *string `json:"driver_name,omitempty"`
	DriverMobile    *string `json:"driver_mobile,omitempty"`
	LoadingProofURL *string `json:"loading_proof_url,omitempty"`
	PodProofURL     *string `json:"pod_proof_url,omitempty"`
	TrackingRef     *string `json:"tracking_ref,omitempty"`
	TrackingLink    *string `json:"tracking_link,omitempty"`
}

// TransportationRequestResponse 运输请求响应
type TransportationRequestResponse struct {
	ID                string                       `json:"id"`
	Reference         string                       `json:"reference"`
	Status            string                       `json:"status"`
	Mode              string                       `json:"mode"`
	TransportDate     string                       `json:"transport_date"`
	Source            AddressResponse              `json:"source"`
	Destination       AddressResponse              `json:"destination"`
	PickupContact     ContactResponse              `json:"pickup_contact"`
	ReceiverContact   ContactResponse              `json:"receiver_contact"`
	VehicleMode       *string                      `json:"vehicle_mode,omitempty"`
	InsuranceCoverage *bool                        `json:"insurance_coverage,omitempty"`
	Remarks           *string                      `json:"remarks,omitempty"`
	Price             *float64                     `json:"price,omitempty"`
	Supplementary     SupplementaryResponse        `json:"supplementary"`
	Customer          *CustomerBrief               `json:"customer,omitempty"`
	Provider          *CompanyBrief                `json:"provider,omitempty"`
	Items             []TransportationItemResponse `json:"items,omitempty"`
	NextStatuses      []string                     `json:"next_statuses,omitempty"`
	CreatedAt         string                       `json:"created_at"`
	UpdatedAt         string                       `json:"updated_at"`
}

// TransportationItemResponse 运输请求明细响应
type TransportationItemResponse struct {
	ID              string   `json:"id"`
	ItemName        string   `json:"item_name"`
	ItemCode        *string  `json:"item_code,omitempty"`
	ItemDescription *string  `json:"item_description,omitempty"`
	Quantity        int      `json:"quantity"`
	UOM             string   `json:"uom"`
	Weight          *float64 `json:"weight,omitempty"`
	Dimension       *string  `json:"dimension,omitempty"`
	Fragile         *bool    `json:"fragile,omitempty"`
	Hazardous       *bool    `json:"hazardous,omitempty"`
}

// [自证通过] internal/dto/transportation.go
