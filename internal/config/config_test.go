package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

// TestLoadCapabilitiesDefaults 路径为空且无 config.yaml 时用默认
func TestLoadCapabilitiesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	caps, err := LoadCapabilities("")
	require.NoError(t, err)
	assert.Equal(t, "wikitext", caps.Tokenizer.Name)
	assert.Equal(t, "segment", caps.Detector.Name)
}

// TestLoadCapabilitiesFile 显式文件覆盖默认
func TestLoadCapabilitiesFile(t *testing.T) {
	p := writeFile(t, "caps.yaml", "tokenizer:\n  name: words\ndetector:\n  name: slow\n  options:\n    delay_ms: 10\n")
	caps, err := LoadCapabilities(p)
	require.NoError(t, err)
	assert.Equal(t, "words", caps.Tokenizer.Name)
	assert.Equal(t, "slow", caps.Detector.Name)
	assert.False(t, caps.Detector.Options.IsZero())
}

// TestLoadCapabilitiesUnknownField 未知顶层字段立即失败
func TestLoadCapabilitiesUnknownField(t *testing.T) {
	p := writeFile(t, "caps.yaml", "tokenizer:\n  name: words\nsurprise: 1\n")
	_, err := LoadCapabilities(p)
	require.Error(t, err)
}

// TestLoadCapabilitiesPartial 缺省组件回落默认名
func TestLoadCapabilitiesPartial(t *testing.T) {
	p := writeFile(t, "caps.yaml", "detector:\n  name: slow\n")
	caps, err := LoadCapabilities(p)
	require.NoError(t, err)
	assert.Equal(t, "wikitext", caps.Tokenizer.Name)
	assert.Equal(t, "slow", caps.Detector.Name)
}

// TestValidate 模式/超时/监听地址校验
func TestValidate(t *testing.T) {
	rt := DefaultRuntime()
	require.NoError(t, Validate(rt))

	bad := rt
	bad.Mode = "cluster"
	assert.Error(t, Validate(bad))

	bad = rt
	bad.Timeout = 0
	assert.Error(t, Validate(bad))

	bad = rt
	bad.LogLevel = "loud"
	assert.Error(t, Validate(bad))

	bad = rt
	bad.MetricsListen = "no-port"
	assert.Error(t, Validate(bad))

	ok := rt
	ok.MetricsListen = "127.0.0.1:9321"
	assert.NoError(t, Validate(ok))
}

// TestEnvOverlay 环境变量覆盖；裸秒数与 Go duration 皆可
func TestEnvOverlay(t *testing.T) {
	t.Setenv("REVDIFF_TIMEOUT", "90")
	t.Setenv("REVDIFF_LOG_LEVEL", "DEBUG")
	t.Setenv("REVDIFF_LOG_DIR", "/tmp/revdiff-logs")
	rt, err := EnvOverlay(DefaultRuntime())
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, rt.Timeout)
	assert.Equal(t, "debug", rt.LogLevel)
	assert.Equal(t, "/tmp/revdiff-logs", rt.LogDir)

	t.Setenv("REVDIFF_TIMEOUT", "30m")
	rt, err = EnvOverlay(DefaultRuntime())
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, rt.Timeout)

	t.Setenv("REVDIFF_TIMEOUT", "soon")
	_, err = EnvOverlay(DefaultRuntime())
	require.Error(t, err)
}
