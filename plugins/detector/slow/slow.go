package slow

import (
	"context"
	"time"

	"revdiff/pkg/contract"
)

// Options: 人为延迟配置。
type Options struct {
	// DelayMS: 每次调用固定延迟（毫秒）。用于超时路径演练。
	DelayMS int `yaml:"delay_ms"`
}

// Detector 固定延迟后返回平凡结果的差分器。
// 仅用于测试/演练超时隔离（对应生产差分器的病态输入场景），不用于真实差分。
type Detector struct {
	delay time.Duration
}

func New(opts *Options) *Detector {
	d := &Detector{}
	if opts != nil && opts.DelayMS > 0 {
		d.delay = time.Duration(opts.DelayMS) * time.Millisecond
	}
	return d
}

// Diff 实现 contract.Detector：睡满延迟（可被 ctx 打断）后返回整段替换。
func (d *Detector) Diff(ctx context.Context, a, b contract.TokenSequence) ([]contract.EditOp, error) {
	if d.delay > 0 {
		t := time.NewTimer(d.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	var ops []contract.EditOp
	if len(a) > 0 {
		ops = append(ops, contract.EditOp{Name: contract.OpDelete, A1: 0, A2: len(a)})
	}
	if len(b) > 0 {
		ops = append(ops, contract.EditOp{Name: contract.OpInsert, A1: len(a), A2: len(a), B1: 0, B2: len(b)})
	}
	return ops, nil
}
