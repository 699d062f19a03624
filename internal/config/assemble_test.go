package config

import (
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revdiff/internal/diag"
	"revdiff/internal/engine"
)

// TestAssembleDefaults 默认能力齐备可装配
func TestAssembleDefaults(t *testing.T) {
	comp, err := Assemble(DefaultCapabilities())
	require.NoError(t, err)
	assert.NotNil(t, comp.Tokenizer)
	assert.NotNil(t, comp.Detector)
}

// TestAssembleUnknownName 未知实现名按配置错误上抛
func TestAssembleUnknownName(t *testing.T) {
	caps := DefaultCapabilities()
	caps.Detector.Name = "oracle"
	_, err := Assemble(caps)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrConfig))
}

// TestAssembleBadOptions options 中未知字段按配置错误上抛
func TestAssembleBadOptions(t *testing.T) {
	p := writeFile(t, "caps.yaml", "detector:\n  name: segment\n  options:\n    depth: 3\n")
	caps, err := LoadCapabilities(p)
	require.NoError(t, err)
	_, err = Assemble(caps)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrConfig))
}

// TestParseMode 三模式映射；空串视作 standalone
func TestParseMode(t *testing.T) {
	for name, want := range map[string]engine.Mode{
		"":           engine.Standalone,
		"standalone": engine.Standalone,
		"mapper":     engine.Mapper,
		"reducer":    engine.Reducer,
	} {
		got, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("cluster")
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrConfig))
}

// TestWriteTemplate 生成模板且不覆盖已有文件
func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()
	p, err := WriteTemplate(dir)
	require.NoError(t, err)
	body, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tokenizer:")

	require.NoError(t, os.WriteFile(p, []byte("tokenizer:\n  name: words\n"), 0o644))
	again, err := WriteTemplate(dir)
	require.NoError(t, err)
	assert.Equal(t, p, again)
	kept, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(kept), "words")
}

// 生成的模板本身必须能被严格解析并装配
func TestTemplateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p, err := WriteTemplate(dir)
	require.NoError(t, err)
	caps, err := LoadCapabilities(p)
	require.NoError(t, err)
	_, err = Assemble(caps)
	require.NoError(t, err)
}
