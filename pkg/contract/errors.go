package contract

import "github.com/cockroachdb/errors"

// 最小错误分级（哨兵）。
var (
	// ErrOrderViolation: 输入破坏"按页分片且有序"前置条件（页面标识在组关闭后重现）。
	// 静默错分组会产出错误 diff，必须大声失败。
	ErrOrderViolation = errors.New("page order violation")
	// ErrInvalidInput: 输入记录无法解析或字段非法。
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation: 领域不变量违例（通用哨兵）。
	ErrInvariantViolation = errors.New("invariant violation")
)
