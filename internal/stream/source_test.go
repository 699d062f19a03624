package stream

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tmp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

// TestOpenInputsConcatenates 多文件按序串接
func TestOpenInputsConcatenates(t *testing.T) {
	a := tmp(t, "a.json", "line1\n")
	b := tmp(t, "b.json", "line2\n")
	rc, err := OpenInputs([]string{a, b})
	require.NoError(t, err)
	defer rc.Close()
	all, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", string(all))
}

// TestOpenInputsStdinMix "-" 与文件混用拒绝
func TestOpenInputsStdinMix(t *testing.T) {
	a := tmp(t, "a.json", "x")
	_, err := OpenInputs([]string{"-", a})
	require.Error(t, err)
}

// TestOpenInputsMissing 缺失文件在打开期即失败
func TestOpenInputsMissing(t *testing.T) {
	_, err := OpenInputs([]string{filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
}

// TestOpenInputsStdin 空参数与单个 "-" 皆为 STDIN
func TestOpenInputsStdin(t *testing.T) {
	rc, err := OpenInputs(nil)
	require.NoError(t, err)
	rc.Close()
	rc, err = OpenInputs([]string{"-"})
	require.NoError(t, err)
	rc.Close()
}
