package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDecideStandalone 组首与空序列求差，后续与前驱求差；挂起恒为假
func TestDecideStandalone(t *testing.T) {
	a, p := Decide(Standalone, true, true, false, false)
	assert.Equal(t, ActionDiffEmpty, a)
	assert.False(t, p)
	a, p = Decide(Standalone, false, false, false, false)
	assert.Equal(t, ActionDiffPrev, a)
	assert.False(t, p)
	// 已携带 diff 在 Standalone 下照常重算（不直通）
	a, _ = Decide(Standalone, false, true, true, false)
	assert.Equal(t, ActionDiffEmpty, a)
}

// TestDecideMapper 流首记录不求差；其余与 Standalone 一致
func TestDecideMapper(t *testing.T) {
	a, p := Decide(Mapper, true, true, false, false)
	assert.Equal(t, ActionEmitBare, a)
	assert.False(t, p)
	a, _ = Decide(Mapper, false, true, false, false)
	assert.Equal(t, ActionDiffEmpty, a)
	a, _ = Decide(Mapper, false, false, false, false)
	assert.Equal(t, ActionDiffPrev, a)
}

// TestDecideReducerGroupStart 组首：无 diff 与空序列求差；有 diff 直通
func TestDecideReducerGroupStart(t *testing.T) {
	a, p := Decide(Reducer, true, true, false, false)
	assert.Equal(t, ActionDiffEmpty, a)
	assert.False(t, p)
	a, p = Decide(Reducer, false, true, true, true)
	assert.Equal(t, ActionPassthrough, a)
	assert.False(t, p, "组切换清除挂起")
}

// TestDecideReducerPendingToggle 无 diff 记录在挂起开/关之间切换
func TestDecideReducerPendingToggle(t *testing.T) {
	a, p := Decide(Reducer, false, false, false, false)
	assert.Equal(t, ActionDefer, a)
	assert.True(t, p)
	a, p = Decide(Reducer, false, false, false, true)
	assert.Equal(t, ActionDiffPending, a)
	assert.False(t, p)
}

// TestDecideReducerPassthroughKeepsPending 直通记录不改变挂起状态
func TestDecideReducerPassthroughKeepsPending(t *testing.T) {
	a, p := Decide(Reducer, false, false, true, true)
	assert.Equal(t, ActionPassthrough, a)
	assert.True(t, p)
	a, p = Decide(Reducer, false, false, true, false)
	assert.Equal(t, ActionPassthrough, a)
	assert.False(t, p)
}
