package segment

import (
	"context"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"revdiff/pkg/contract"
)

// Options: 最小必要选项。
type Options struct {
	// Semantic: 对结果做语义清理（合并碎片化操作，diff 更可读但可能更长）。
	// 默认 false：保持最短编辑脚本，保证确定性输出。
	Semantic bool `yaml:"semantic"`
}

// Detector 基于 diff-match-patch 的词元级差分。
// 词元序列先驻留为 rune 串（lines-to-chars 同型技巧），在 rune 域上求差，
// 再展开回带区间索引的编辑操作。
type Detector struct {
	semantic bool
}

func New(opts *Options) *Detector {
	d := &Detector{}
	if opts != nil {
		d.semantic = opts.Semantic
	}
	return d
}

// Diff 实现 contract.Detector。
// 剩余截止时间透传给 dmp（内部到点提前返回合法次优结果）；
// 若调用期间 ctx 已完结则按 ctx.Err() 上抛，由上层归类为超时。
func (d *Detector) Diff(ctx context.Context, a, b contract.TokenSequence) ([]contract.EditOp, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dmp := diffmatchpatch.New()
	if dl, ok := ctx.Deadline(); ok {
		dmp.DiffTimeout = time.Until(dl)
	} else {
		dmp.DiffTimeout = 0
	}

	ra, rb, err := intern(a, b)
	if err != nil {
		return nil, err
	}
	diffs := dmp.DiffMainRunes(ra, rb, false)
	if d.semantic {
		diffs = dmp.DiffCleanupSemantic(diffs)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ops := make([]contract.EditOp, 0, len(diffs))
	ai, bi := 0, 0
	for _, df := range diffs {
		n := utf8.RuneCountInString(df.Text)
		if n == 0 {
			continue
		}
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			ops = append(ops, contract.EditOp{Name: contract.OpEqual, A1: ai, A2: ai + n, B1: bi, B2: bi + n})
			ai += n
			bi += n
		case diffmatchpatch.DiffDelete:
			ops = append(ops, contract.EditOp{Name: contract.OpDelete, A1: ai, A2: ai + n, B1: bi, B2: bi})
			ai += n
		case diffmatchpatch.DiffInsert:
			ops = append(ops, contract.EditOp{Name: contract.OpInsert, A1: ai, A2: ai, B1: bi, B2: bi + n})
			bi += n
		}
	}
	return ops, nil
}

// intern 将两个词元序列映射到共享 rune 词表（一词元一 rune，跳过代理区）。
// 词表上限为合法 rune 空间：超过 unicode.MaxRune 的词元会在 rune→string
// 转换时塌缩为 U+FFFD 并产出错误操作，必须显式报错而非静默失真。
func intern(a, b contract.TokenSequence) ([]rune, []rune, error) {
	vocab := make(map[contract.Token]rune, len(a)+len(b))
	next := rune(1)
	assign := func(t contract.Token) (rune, error) {
		if r, ok := vocab[t]; ok {
			return r, nil
		}
		if next > unicode.MaxRune {
			return 0, errors.Newf("segment: token vocabulary exceeds rune space (%d distinct tokens)", len(vocab))
		}
		r := next
		next++
		if next >= 0xD800 && next <= 0xDFFF {
			next = 0xE000
		}
		vocab[t] = r
		return r, nil
	}
	ra := make([]rune, len(a))
	for i, t := range a {
		r, err := assign(t)
		if err != nil {
			return nil, nil, err
		}
		ra[i] = r
	}
	rb := make([]rune, len(b))
	for i, t := range b {
		r, err := assign(t)
		if err != nil {
			return nil, nil, err
		}
		rb[i] = r
	}
	return ra, rb, nil
}
