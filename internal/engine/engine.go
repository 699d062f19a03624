package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"revdiff/internal/diag"
	"revdiff/pkg/contract"
)

// - 单实例严格串行：一进一出流式处理，无内部并发（受限 diff 调用除外）；
// - 内存有界：任一时刻至多保留一组的"前一词元序列"与（Reducer）一个挂起前驱；
// - 跨实例协调只经由数据流中的交接记录，无任何旁路通道。

// DefaultTimeout: 单次 diff 调用的默认截止时间。
const DefaultTimeout = time.Hour

// Components 聚合两个外部能力适配器。
type Components struct {
	Tokenizer contract.Tokenizer
	Detector  contract.Detector
}

// Settings 运行期配置（最小必要）。
type Settings struct {
	Mode Mode
	// Timeout: 单次 diff 调用截止时间；<=0 采用 DefaultTimeout。
	Timeout time.Duration
	// DropText: 仅从成功携带 diff 的记录上移除 text；
	// 无 diff 记录必须保留 text（下游 Reducer 还需词元化）。
	DropText bool
}

// Source: 有序记录流（逐条回调，不缓冲）。
type Source interface {
	Iterate(ctx context.Context, yield func(*contract.Record) error) error
}

// Sink: 流式发出（一进一出；Mapper 模式流末尾多一条交接记录）。
type Sink interface {
	Emit(rec *contract.Record) error
}

// pendingState: Reducer 的挂起前驱（显式标记值，而非隐式 nil 判断）。
type pendingState struct {
	Set    bool
	Tokens contract.TokenSequence
}

type run struct {
	comp   Components
	set    Settings
	sink   Sink
	logger *diag.Logger
	prog   *diag.Progress
	met    *diag.Metrics

	groups      *Grouper
	streamFirst bool
	sawGroup    bool
	// prev: 当前组内前一条已词元化记录的词元（非拥有型回引，组切换时重置）。
	prev    contract.TokenSequence
	pending pendingState
	// last/lastText: Mapper 交接记录素材（最后一条已发出记录 + 最近携带文本的记录文本）。
	last     *contract.Record
	lastText string
	emitted  int64
}

// Run 执行完整流水线：Source → 分组 →（词元化/受限 diff）→ 输出装配 → Sink。
func Run(ctx context.Context, comp Components, set Settings, src Source, sink Sink, logger *diag.Logger, prog *diag.Progress, met *diag.Metrics) error {
	if comp.Tokenizer == nil || comp.Detector == nil {
		return errors.New("engine: missing components")
	}
	if src == nil || sink == nil {
		return errors.New("engine: missing source or sink")
	}
	if set.Timeout <= 0 {
		set.Timeout = DefaultTimeout
	}
	e := &run{
		comp: comp, set: set, sink: sink,
		logger: logger, prog: prog, met: met,
		groups: NewGrouper(), streamFirst: true,
	}
	t := logger.Start("engine", "run "+set.Mode.String())
	if err := src.Iterate(ctx, func(rec *contract.Record) error {
		return e.process(ctx, rec)
	}); err != nil {
		logger.Error("engine", diag.Classify(err), "stream failed", err)
		return err
	}
	if err := e.finish(); err != nil {
		logger.Error("engine", diag.Classify(err), "finish failed", err)
		return err
	}
	t.Finish("run", e.emitted)
	return nil
}

func (e *run) process(ctx context.Context, rec *contract.Record) error {
	e.met.RecordIn()
	start, err := e.groups.Next(rec.Page.Title)
	if err != nil {
		return err
	}
	if start {
		if e.sawGroup {
			e.prog.GroupEnd()
			e.met.PageDone()
		}
		e.sawGroup = true
		e.prog.GroupStart(rec.Page.Title)
		e.prev = nil
		e.pending = pendingState{}
	}
	e.prog.Tick()

	action, newPending := Decide(e.set.Mode, e.streamFirst, start, rec.Diff != nil, e.pending.Set)

	// 词元化：本趟需要求差（或充当前驱/挂起）的记录都要词元化；
	// 已携带 diff 的直通记录跳过，其词元不得充当后续前驱。
	var toks contract.TokenSequence
	if action != ActionPassthrough {
		t0 := time.Now()
		toks, err = e.comp.Tokenizer.Tokenize(ctx, textOf(rec))
		secs := time.Since(t0).Seconds()
		rec.TokenizeTime = &secs
		if err != nil {
			return errors.Wrapf(err, "tokenize page %q rev %d", rec.Page.Title, rec.RevID())
		}
	}

	switch action {
	case ActionDiffEmpty:
		err = e.diffInto(ctx, rec, nil, toks)
	case ActionDiffPrev:
		err = e.diffInto(ctx, rec, e.prev, toks)
	case ActionDiffPending:
		err = e.diffInto(ctx, rec, e.pending.Tokens, toks)
	case ActionEmitBare, ActionPassthrough, ActionDefer:
		// 本趟不求差
	}
	if err != nil {
		return err
	}

	// 挂起状态：移交即覆盖，直通保持不变，其余清空
	switch {
	case !newPending:
		e.pending = pendingState{}
	case action == ActionDefer:
		e.pending = pendingState{Set: true, Tokens: toks}
	}
	if action != ActionPassthrough {
		e.prev = toks
	}
	if rec.Text != nil {
		e.lastText = *rec.Text
	}

	// 输出装配：可选文本裁剪仅作用于成功携带 diff 的记录。
	if e.set.DropText && rec.Diff != nil {
		rec.Text = nil
	}
	if err := e.sink.Emit(rec); err != nil {
		return err
	}
	e.met.RecordOut()
	e.emitted++
	if e.set.Mode == Mapper {
		cp := *rec
		e.last = &cp
	}
	e.streamFirst = false
	return nil
}

// finish 收尾：关闭最后一组；Mapper 模式再造交接记录并二次发出。
func (e *run) finish() error {
	if e.sawGroup {
		e.prog.GroupEnd()
		e.met.PageDone()
	}
	if e.set.Mode == Mapper && e.last != nil {
		e.last.Diff = nil
		text := e.lastText
		e.last.Text = &text
		if err := e.sink.Emit(e.last); err != nil {
			return err
		}
		e.met.RecordOut()
		e.emitted++
	}
	return nil
}

// diffInto 执行受限 diff 并装配结果字段。
// 超时可恢复：diff_time 置哨兵 -1，diff 不设置，继续处理下一条。
func (e *run) diffInto(ctx context.Context, rec *contract.Record, a, b contract.TokenSequence) error {
	rec.Diff = nil
	ops, elapsed, timedOut, err := boundedDiff(ctx, e.comp.Detector, a, b, e.set.Timeout)
	if err != nil {
		return errors.Wrapf(err, "diff page %q rev %d", rec.Page.Title, rec.RevID())
	}
	if timedOut {
		sentinel := contract.TimedOutSentinel
		rec.DiffTime = &sentinel
		e.met.DiffTimeout()
		e.logger.Warn("engine", "diff timed out", map[string]string{
			"page": rec.Page.Title,
			"rev":  fmt.Sprintf("%d", rec.RevID()),
		})
		return nil
	}
	secs := elapsed.Seconds()
	rec.DiffTime = &secs
	d, err := renderOps(ops, a, b)
	if err != nil {
		return errors.Wrapf(err, "render diff page %q rev %d", rec.Page.Title, rec.RevID())
	}
	rec.Diff = d
	e.met.DiffOK()
	return nil
}

// renderOps 回填操作携带的词元：insert 取目标区间，delete 取源区间。
func renderOps(ops []contract.EditOp, a, b contract.TokenSequence) (contract.Diff, error) {
	out := make(contract.Diff, 0, len(ops))
	for _, op := range ops {
		if op.A1 < 0 || op.A2 < op.A1 || op.A2 > len(a) || op.B1 < 0 || op.B2 < op.B1 || op.B2 > len(b) {
			return nil, errors.Wrapf(contract.ErrInvariantViolation,
				"edit op %s out of range a[%d:%d] b[%d:%d]", op.Name, op.A1, op.A2, op.B1, op.B2)
		}
		switch op.Name {
		case contract.OpInsert:
			op.Tokens = tokenStrings(b[op.B1:op.B2])
		case contract.OpDelete:
			op.Tokens = tokenStrings(a[op.A1:op.A2])
		}
		out = append(out, op)
	}
	return out, nil
}

func tokenStrings(ts contract.TokenSequence) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}

// textOf: 缺失/null 文本一律按空文本词元化（不是错误）。
func textOf(rec *contract.Record) string {
	if rec.Text == nil {
		return ""
	}
	return *rec.Text
}
