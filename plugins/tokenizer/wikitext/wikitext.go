package wikitext

import (
	"context"
	"regexp"

	"revdiff/pkg/contract"
)

// Options: 预留（当前无可配置项；保持工厂签名一致）。
type Options struct{}

// Tokenizer 按 wiki 语法词类切分文本。
// 词类按优先级排列，联合覆盖全部字符：无论输入如何，词元串接 == 原文本（无损）。
type Tokenizer struct{}

func New(opts *Options) *Tokenizer {
	_ = opts
	return &Tokenizer{}
}

// 词类（顺序即优先级）：
// url → 实体 → 注释/标签 → 标题/粗斜体 → 模板/链接/表格标记 → 数字 → 词 →
// CJK 单字 → 日文标点 → 换行段落 → 空白 → 单字符标点 → 兜底。
var lexicon = regexp.MustCompile(`(?s)` +
	`https?://[^\s|\[\]<>"{}]+` +
	"|&[a-zA-Z][a-zA-Z0-9]*;" +
	`|<!--|-->|</?[a-zA-Z][^>\n]*>` +
	`|={2,}|'{2,}` +
	`|\{\{\{|\}\}\}|\{\{|\}\}|\[\[|\]\]` +
	`|\{\||\|\}|\|\-|\|\||!!` +
	`|[0-9]+(?:[.,][0-9]+)*` +
	`|[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]` +
	`|[\p{L}\p{M}][\p{L}\p{M}0-9'’]*` +
	`|[\x{3000}-\x{303F}]` +
	`|\n{2,}` +
	`|[ \t\r\n]+` +
	`|.`)

// Tokenize 实现 contract.Tokenizer。空文本返回空序列。
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
