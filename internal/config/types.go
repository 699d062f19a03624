package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Component: 能力选择（注册表实现名 + 原样 YAML options）。
type Component struct {
	Name    string    `yaml:"name"`
	Options yaml.Node `yaml:"options"`
}

// Capabilities: 能力配置文件（YAML）。
// 只承载外部能力选择；运行期旗标（模式/超时等）走 CLI/ENV。
type Capabilities struct {
	Tokenizer Component `yaml:"tokenizer"`
	Detector  Component `yaml:"detector"`
}

// Runtime: 运行期只读配置（一次解析，运行期不变）。
// 模式三选一互斥；校验在任何记录处理前完成。
type Runtime struct {
	Inputs []string
	Mode   string `validate:"oneof=standalone mapper reducer"`
	// Timeout: 单次 diff 调用截止时间。
	Timeout  time.Duration `validate:"gt=0"`
	DropText bool
	Verbose  bool
	// LogLevel: debug|info|warn|error。
	LogLevel string `validate:"omitempty,oneof=debug info warn error"`
	// LogDir: 非空时日志写轮转文件而非 stderr。
	LogDir string
	// MetricsListen: 非空时暴露 /metrics 抓取端点（host:port）。
	MetricsListen string `validate:"omitempty,hostname_port"`
}
