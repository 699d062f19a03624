package engine

// Action: 对单条记录的处理决定。
type Action int

const (
	// ActionDiffEmpty: 当前词元与空序列求差（"无先前修订"的定义）。
	ActionDiffEmpty Action = iota
	// ActionDiffPrev: 与同组前一条记录的词元求差。
	ActionDiffPrev
	// ActionDiffPending: 与挂起前驱的词元求差并清除挂起（Reducer 缝合）。
	ActionDiffPending
	// ActionEmitBare: 不求差，原样发出（流首记录的前驱不可知）。
	ActionEmitBare
	// ActionPassthrough: 已携带 diff，原样发出；不词元化，其词元不得充当后续前驱。
	ActionPassthrough
	// ActionDefer: 记为挂起前驱，diff 留空发出（交接记录留作审计）。
	ActionDefer
)

// Decide 纯决策函数：输入为模式与四个布尔事实，输出处理动作与新的挂起状态。
// 不触碰词元器与差分器，可独立测试。
func Decide(mode Mode, streamFirst, groupStart, hasDiff, pending bool) (Action, bool) {
	switch mode {
	case Reducer:
		if groupStart {
			// 组首即页起点假设；已被上游 mapper 定稿的 diff 原样保留。
			if hasDiff {
				return ActionPassthrough, false
			}
			return ActionDiffEmpty, false
		}
		if hasDiff {
			return ActionPassthrough, pending
		}
		if pending {
			return ActionDiffPending, false
		}
		return ActionDefer, true
	case Mapper:
		if streamFirst {
			return ActionEmitBare, false
		}
		fallthrough
	default: // Standalone
		if groupStart {
			return ActionDiffEmpty, false
		}
		return ActionDiffPrev, false
	}
}
