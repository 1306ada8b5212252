package dto

// ── 状态流转 DTO（仓储 / 运输共用）──

// UpdateStatusRequest 状态流转请求
// Data 携带目标状态要求的补充字段（字段名 → 值），按目标状态的声明表校验
type UpdateStatusRequest struct {
	Status string            `json:"status" binding:"required"`
	Data   map[string]string `json:"data"`
}

// TimelineCheckpointResponse 时间线检查点响应
type TimelineCheckpointResponse struct {
	Checkpoint string `json:"checkpoint"`
	State      string `json:"state"` // completed | current | pending
}

// TimelineResponse 运输请求时间线响应
type TimelineResponse struct {
	RequestID    string                       `json:"request_id"`
	Reference    string                       `json:"reference"`
	Status       string                       `json:"status"`
	Checkpoints  []TimelineCheckpointResponse `json:"checkpoints"`
	NextStatuses []string                     `json:"next_statuses,omitempty"`
}

// [自证通过] internal/dto/request_status.go
