package sourcecode

import (
	"context"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	"revdiff/pkg/contract"
)

// Options: 语法选择。
type Options struct {
	// Language: go | python | javascript。
	Language string `yaml:"language"`
}

// Tokenizer 基于 tree-sitter 叶节点的源代码词元化。
// 适用于承载源代码文本的页面；叶节点间隙（空白）补为独立词元，保证无损串接。
type Tokenizer struct {
	lang *sitter.Language
}

func New(opts *Options) (*Tokenizer, error) {
	name := "go"
	if opts != nil && opts.Language != "" {
		name = opts.Language
	}
	var lang *sitter.Language
	switch name {
	case "go":
		lang = golang.GetLanguage()
	case "python":
		lang = python.GetLanguage()
	case "javascript":
		lang = javascript.GetLanguage()
	default:
		return nil, errors.Newf("sourcecode: unsupported language %q", name)
	}
	return &Tokenizer{lang: lang}, nil
}

// Tokenize 实现 contract.Tokenizer。
func (t *Tokenizer) Tokenize(ctx context.Context, text string) (contract.TokenSequence, error) {
	if text == "" {
		return nil, nil
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(t.lang)
	src := []byte(text)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "sourcecode: parse")
	}
	defer tree.Close()

	var out contract.TokenSequence
	end := uint32(0)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		count := int(n.ChildCount())
		if count == 0 {
			// 叶节点前的间隙（空白/未覆盖字节）补为词元
			if n.StartByte() > end {
				out = append(out, contract.Token(src[end:n.StartByte()]))
			}
			if n.EndByte() > n.StartByte() {
				out = append(out, contract.Token(src[n.StartByte():n.EndByte()]))
			}
			if n.EndByte() > end {
				end = n.EndByte()
			}
			return
		}
		for i := 0; i < count; i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())
	if int(end) < len(src) {
		out = append(out, contract.Token(src[end:]))
	}
	return out, nil
}
