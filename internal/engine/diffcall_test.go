package engine

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revdiff/pkg/contract"
)

type funcDetector func(ctx context.Context, a, b contract.TokenSequence) ([]contract.EditOp, error)

func (f funcDetector) Diff(ctx context.Context, a, b contract.TokenSequence) ([]contract.EditOp, error) {
	return f(ctx, a, b)
}

// TestBoundedDiffSuccess 正常返回：操作与耗时均在
func TestBoundedDiffSuccess(t *testing.T) {
	det := funcDetector(func(_ context.Context, a, b contract.TokenSequence) ([]contract.EditOp, error) {
		return []contract.EditOp{{Name: contract.OpEqual, A2: len(a), B2: len(b)}}, nil
	})
	ops, elapsed, timedOut, err := boundedDiff(context.Background(), det,
		contract.TokenSequence{"x"}, contract.TokenSequence{"x"}, time.Second)
	require.NoError(t, err)
	assert.False(t, timedOut)
	assert.Len(t, ops, 1)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
}

// TestBoundedDiffTimeout 超时可恢复：timedOut=true，无错误
func TestBoundedDiffTimeout(t *testing.T) {
	det := funcDetector(func(ctx context.Context, _, _ contract.TokenSequence) ([]contract.EditOp, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	ops, _, timedOut, err := boundedDiff(context.Background(), det, nil, nil, 20*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, timedOut)
	assert.Nil(t, ops)
}

// TestBoundedDiffIgnoresCtxDetector 不感知 ctx 的差分器照样被截止时间放弃
func TestBoundedDiffIgnoresCtxDetector(t *testing.T) {
	det := funcDetector(func(_ context.Context, _, _ contract.TokenSequence) ([]contract.EditOp, error) {
		time.Sleep(300 * time.Millisecond)
		return nil, nil
	})
	start := time.Now()
	_, _, timedOut, err := boundedDiff(context.Background(), det, nil, nil, 20*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, timedOut)
	assert.Less(t, time.Since(start), 200*time.Millisecond, "不等待已放弃的调用")
}

// TestBoundedDiffFatalError 截止时间之外的差分器错误致命上抛
func TestBoundedDiffFatalError(t *testing.T) {
	boom := errors.New("boom")
	det := funcDetector(func(_ context.Context, _, _ contract.TokenSequence) ([]contract.EditOp, error) {
		return nil, boom
	})
	_, _, timedOut, err := boundedDiff(context.Background(), det, nil, nil, time.Second)
	assert.False(t, timedOut)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

// TestBoundedDiffOuterCancel 外层取消上抛 ctx 错误，而非按超时吞掉
func TestBoundedDiffOuterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	det := funcDetector(func(ctx context.Context, _, _ contract.TokenSequence) ([]contract.EditOp, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, _, timedOut, err := boundedDiff(ctx, det, nil, nil, time.Second)
	assert.False(t, timedOut)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
