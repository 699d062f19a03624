package words

import (
	"context"
	"regexp"

	"revdiff/pkg/contract"
)

// Options: 预留（当前无可配置项；保持工厂签名一致）。
type Options struct{}

// Tokenizer 最小词/空白/标点切分（不理解 wiki 语法）。
type Tokenizer struct{}

func New(opts *Options) *Tokenizer {
	_ = opts
	return &Tokenizer{}
}

var lexicon = regexp.MustCompile(`[\p{L}\p{M}\p{N}]+|\s+|[^\p{L}\p{M}\p{N}\s]+`)

// Tokenize 实现 contract.Tokenizer。词元串接 == 原文本（无损）。
func (t *Tokenizer) Tokenize(ctx context.Context, text string) (contract.TokenSequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	parts := lexicon.FindAllString(text, -1)
	out := make(contract.TokenSequence, len(parts))
	for i, p := range parts {
		out[i] = contract.Token(p)
	}
	return out, nil
}
