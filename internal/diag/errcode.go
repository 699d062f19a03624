package diag

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"revdiff/pkg/contract"
)

// Code: 最小错误分类代码，仅用于日志/指标汇总与退出码映射。
type Code string

const (
	CodeUnknown   Code = "unknown"
	CodeInvariant Code = "invariant"
	CodeConfig    Code = "config"
	CodeCancel    Code = "cancel"
	CodeIO        Code = "io"
)

// ErrConfig: 配置/装配阶段错误的哨兵（启动前失败，退出码 3）。
var ErrConfig = errors.New("config error")

// Classify 将错误归为最小分类。仅依赖哨兵与标准库错误类型，不做字符串匹配。
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return CodeCancel
	case errors.Is(err, ErrConfig):
		return CodeConfig
	case errors.Is(err, contract.ErrOrderViolation),
		errors.Is(err, contract.ErrInvalidInput),
		errors.Is(err, contract.ErrInvariantViolation):
		return CodeInvariant
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

// 退出码：0 成功；1 运行期错误；3 配置错误（任何记录处理前失败）。
const (
	ExitOK      = 0
	ExitRuntime = 1
	ExitConfig  = 3
)

// ExitCode 将错误映射为进程退出码。
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if Classify(err) == CodeConfig {
		return ExitConfig
	}
	return ExitRuntime
}
