package slow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revdiff/pkg/contract"
)

// TestWholeReplace 返回整段删除 + 整段插入
func TestWholeReplace(t *testing.T) {
	a := contract.TokenSequence{"x", "y"}
	b := contract.TokenSequence{"z"}
	ops, err := New(nil).Diff(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, contract.OpDelete, ops[0].Name)
	assert.Equal(t, 2, ops[0].A2)
	assert.Equal(t, contract.OpInsert, ops[1].Name)
	assert.Equal(t, 1, ops[1].B2)
}

// TestDelayInterruptible 延迟可被 ctx 打断
func TestDelayInterruptible(t *testing.T) {
	d := New(&Options{DelayMS: 60000})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := d.Diff(ctx, contract.TokenSequence{"a"}, contract.TokenSequence{"b"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
