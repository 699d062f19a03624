package contract

import "context"

// Tokenizer: 外部词元化能力（算法内部不在本仓库范围内）。
// 约束：
// 1) 同步实现、无内部并发、幂等；
// 2) 空文本返回空序列（nil 或零长均可），不是错误；
// 3) 错误直接上抛，视为致命（配置或数据问题，引擎不绕行）。
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) (TokenSequence, error)
}
