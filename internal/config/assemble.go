package config

import (
	"github.com/cockroachdb/errors"

	"revdiff/internal/diag"
	"revdiff/internal/engine"
	"revdiff/pkg/registry"
)

// Assemble 从能力配置装配引擎组件；失败归类为配置错误。
func Assemble(caps Capabilities) (engine.Components, error) {
	var comp engine.Components
	tok, err := registry.MakeTokenizer(caps.Tokenizer.Name, &caps.Tokenizer.Options)
	if err != nil {
		return comp, errors.Mark(errors.Wrap(err, "assemble tokenizer"), diag.ErrConfig)
	}
	det, err := registry.MakeDetector(caps.Detector.Name, &caps.Detector.Options)
	if err != nil {
		return comp, errors.Mark(errors.Wrap(err, "assemble detector"), diag.ErrConfig)
	}
	comp.Tokenizer = tok
	comp.Detector = det
	return comp, nil
}

// ParseMode 将模式名映射为 engine.Mode（Validate 已保证合法）。
func ParseMode(s string) (engine.Mode, error) {
	switch s {
	case "", "standalone":
		return engine.Standalone, nil
	case "mapper":
		return engine.Mapper, nil
	case "reducer":
		return engine.Reducer, nil
	}
	return engine.Standalone, errors.Mark(errors.Newf("unknown mode %q", s), diag.ErrConfig)
}
