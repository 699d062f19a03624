package config

import (
	"os"
	"path/filepath"
)

// templateYAML: --init-config 生成的能力配置模板（带注释，不覆盖已存在文件）。
const templateYAML = `# revdiff 能力配置
# tokenizer: wikitext | words | sourcecode
# detector:  segment  | slow
tokenizer:
  name: wikitext
detector:
  name: segment
  options:
    semantic: false
`

// WriteTemplate 在 dir 下生成 config.yaml 模板；已存在则跳过。
func WriteTemplate(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, []byte(templateYAML), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
