package registry

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"revdiff/pkg/contract"
	dseg "revdiff/plugins/detector/segment"
	dslow "revdiff/plugins/detector/slow"
	tsrc "revdiff/plugins/tokenizer/sourcecode"
	twiki "revdiff/plugins/tokenizer/wikitext"
	twords "revdiff/plugins/tokenizer/words"
)

// strictDecode: 拒绝未知字段的 YAML options 解码；node 为空保持零值（默认选项）。
func strictDecode(node *yaml.Node, v any) error {
	if node == nil || node.IsZero() {
		return nil
	}
	b, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// NewTokenizer 工厂签名：接收原样 YAML options。
type NewTokenizer func(node *yaml.Node) (contract.Tokenizer, error)

// NewDetector 工厂签名：接收原样 YAML options。
type NewDetector func(node *yaml.Node) (contract.Detector, error)

// Tokenizer 工厂注册表（显式、零反射）。
var Tokenizer = map[string]NewTokenizer{
	// wikitext: wiki 语法词类切分（默认）
	"wikitext": func(node *yaml.Node) (contract.Tokenizer, error) {
		var opts twiki.Options
		if err := strictDecode(node, &opts); err != nil {
			return nil, err
		}
		return twiki.New(&opts), nil
	},
	// words: 最小词/空白/标点切分
	"words": func(node *yaml.Node) (contract.Tokenizer, error) {
		var opts twords.Options
		if err := strictDecode(node, &opts); err != nil {
			return nil, err
		}
		return twords.New(&opts), nil
	},
	// sourcecode: tree-sitter 叶节点切分（源代码页面）
	"sourcecode": func(node *yaml.Node) (contract.Tokenizer, error) {
		var opts tsrc.Options
		if err := strictDecode(node, &opts); err != nil {
			return nil, err
		}
		return tsrc.New(&opts)
	},
}

// Detector 工厂注册表。
var Detector = map[string]NewDetector{
	// segment: diff-match-patch 词元级差分（默认）
	"segment": func(node *yaml.Node) (contract.Detector, error) {
		var opts dseg.Options
		if err := strictDecode(node, &opts); err != nil {
			return nil, err
		}
		return dseg.New(&opts), nil
	},
	// slow: 固定延迟差分器（超时演练）
	"slow": func(node *yaml.Node) (contract.Detector, error) {
		var opts dslow.Options
		if err := strictDecode(node, &opts); err != nil {
			return nil, err
		}
		return dslow.New(&opts), nil
	},
}

// MakeTokenizer 按名称装配词元器。
func MakeTokenizer(name string, node *yaml.Node) (contract.Tokenizer, error) {
	f, ok := Tokenizer[name]
	if !ok {
		return nil, errors.Newf("unknown tokenizer %q", name)
	}
	return f(node)
}

// MakeDetector 按名称装配差分器。
func MakeDetector(name string, node *yaml.Node) (contract.Detector, error) {
	f, ok := Detector[name]
	if !ok {
		return nil, errors.Newf("unknown detector %q", name)
	}
	return f(node)
}
