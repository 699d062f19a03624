package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultCapabilities 返回默认能力选择（wiki 语法词元化 + 词元级差分）。
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Tokenizer: Component{Name: "wikitext"},
		Detector:  Component{Name: "segment"},
	}
}

// LoadCapabilities 从 YAML 文件解析能力配置（严格拒绝未知字段）。
// path 为空时：若工作目录存在 config.yaml 则读取，否则用默认。
func LoadCapabilities(path string) (Capabilities, error) {
	caps := DefaultCapabilities()
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		} else {
			return caps, nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return caps, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&caps); err != nil {
		return caps, errors.Wrapf(err, "capabilities config %s", path)
	}
	if caps.Tokenizer.Name == "" {
		caps.Tokenizer.Name = "wikitext"
	}
	if caps.Detector.Name == "" {
		caps.Detector.Name = "segment"
	}
	return caps, nil
}

// DefaultRuntime 返回安全默认的运行期配置。
func DefaultRuntime() Runtime {
	return Runtime{
		Mode:     "standalone",
		Timeout:  time.Hour,
		LogLevel: "info",
	}
}

// EnvOverlay 以 REVDIFF_* 环境变量覆盖运行期配置（最小集合）。
func EnvOverlay(rt Runtime) (Runtime, error) {
	if v := os.Getenv("REVDIFF_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return rt, errors.Wrap(err, "REVDIFF_TIMEOUT")
		}
		rt.Timeout = d
	}
	if v := os.Getenv("REVDIFF_LOG_LEVEL"); v != "" {
		rt.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("REVDIFF_LOG_DIR"); v != "" {
		rt.LogDir = v
	}
	if v := os.Getenv("REVDIFF_METRICS_LISTEN"); v != "" {
		rt.MetricsListen = v
	}
	return rt, nil
}

// parseTimeout 接受 Go duration（"30m"）或裸秒数（"3600"，与原始 CLI 习惯兼容）。
func parseTimeout(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}

var validate = validator.New()

// Validate 校验运行期配置；失败为致命配置错误（在任何记录处理前）。
func Validate(rt Runtime) error {
	if err := validate.Struct(rt); err != nil {
		return errors.Wrap(err, "runtime config")
	}
	return nil
}
