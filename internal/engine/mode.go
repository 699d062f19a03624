package engine

// Mode: 运行模式，决定组边界策略。三者互斥，多选为致命配置错误（启动前拦截）。
type Mode int

const (
	// Standalone: 单趟处理完整数据集。每组首条与空词元序列求差。
	Standalone Mode = iota
	// Mapper: 与 Standalone 相同，但整个输入流的第一条记录不求差
	// （其真实前驱可能位于其他上游分片），且流末尾追加一条交接记录。
	Mapper
	// Reducer: 消费若干 Mapper 输出按页拼接后的流，缝合分片边界。
	Reducer
)

func (m Mode) String() string {
	switch m {
	case Mapper:
		return "mapper"
	case Reducer:
		return "reducer"
	default:
		return "standalone"
	}
}
