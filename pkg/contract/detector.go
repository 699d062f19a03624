package contract

import "context"

// Detector: 外部差分能力（编辑操作检测）。
// 约束：
// 1) 返回按序编辑操作，区间索引基于 a/b 两个序列；不回填 Tokens（由输出装配完成）；
// 2) 代价下界为两序列总长的平方级（外部能力契约），调用方以截止时间约束单次调用；
// 3) 能感知 ctx 的实现应在取消/超时后尽快返回 ctx.Err()；
// 4) 除截止时间外的错误视为致命。
type Detector interface {
	Diff(ctx context.Context, a, b TokenSequence) ([]EditOp, error)
}
