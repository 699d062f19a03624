package engine

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"revdiff/pkg/contract"
)

type diffResult struct {
	ops []contract.EditOp
	err error
}

// boundedDiff 在独立 goroutine 中执行 Detector.Diff，并施加单次调用截止时间。
// 差分代价保证至少是两序列总长的平方级；截止时间恰为此而设。
// - 超时：timedOut=true，放弃该次调用（病态比较不得阻塞整条流）；
// - 外层 ctx 取消：上抛 ctx 错误；
// - 其余错误：致命上抛。
func boundedDiff(ctx context.Context, det contract.Detector, a, b contract.TokenSequence, timeout time.Duration) (ops []contract.EditOp, elapsed time.Duration, timedOut bool, err error) {
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan diffResult, 1)
	start := time.Now()
	go func() {
		ops, derr := det.Diff(dctx, a, b)
		ch <- diffResult{ops: ops, err: derr}
	}()

	select {
	case r := <-ch:
		elapsed = time.Since(start)
		if r.err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return nil, elapsed, false, cerr
			}
			if errors.Is(r.err, context.DeadlineExceeded) {
				return nil, elapsed, true, nil
			}
			return nil, elapsed, false, r.err
		}
		return r.ops, elapsed, false, nil
	case <-dctx.Done():
		// 放弃仍在执行的比较（goroutine 自行结束）；不等待。
		elapsed = time.Since(start)
		if cerr := ctx.Err(); cerr != nil {
			return nil, elapsed, false, cerr
		}
		return nil, elapsed, true, nil
	}
}
