package diag

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger: 运行日志（结构化 JSON，单行一事件）。
// - 数据通道是 stdout，日志永不写 stdout；默认 stderr，可选轮转文件；
// - 事件携带 corr_id 与组件名；start/finish 成对计时；
// - 所有方法对 nil 接收者安全（未启用日志时为 no-op）。
type Logger struct {
	z *zap.Logger
}

// NewLogger 构造 zap 日志器。w 为 nil 时写 stderr。
func NewLogger(level, corrID string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), parseLevel(level))
	return &Logger{z: zap.New(core).With(zap.String("corr_id", corrID))}
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Start 记录 start 事件并返回计时器。
func (l *Logger) Start(comp, msg string) *Timer {
	if l == nil {
		return nil
	}
	l.z.Info(msg, zap.String("comp", comp), zap.String("stage", "start"))
	return &Timer{l: l, comp: comp, t0: time.Now()}
}

// Error 记录 error 事件（含分类代码）。
func (l *Logger) Error(comp string, code Code, msg string, err error) {
	if l == nil {
		return
	}
	l.z.Error(msg, zap.String("comp", comp), zap.String("stage", "error"),
		zap.String("code", string(code)), zap.Error(err))
}

// Warn 记录可恢复事件（例如单条记录的 diff 超时）。
func (l *Logger) Warn(comp, msg string, kv map[string]string) {
	if l == nil {
		return
	}
	fields := []zap.Field{zap.String("comp", comp)}
	for k, v := range kv {
		fields = append(fields, zap.String(k, v))
	}
	l.z.Warn(msg, fields...)
}

// Debug 记录调试事件（仅 level=debug 生效）。
func (l *Logger) Debug(comp, msg string, kv map[string]string) {
	if l == nil {
		return
	}
	fields := []zap.Field{zap.String("comp", comp)}
	for k, v := range kv {
		fields = append(fields, zap.String(k, v))
	}
	l.z.Debug(msg, fields...)
}

// Sync 刷新底层缓冲（进程退出前调用）。
func (l *Logger) Sync() {
	if l == nil {
		return
	}
	_ = l.z.Sync()
}

// Timer: start→finish 计时。
type Timer struct {
	l    *Logger
	comp string
	t0   time.Time
}

// Finish 记录 finish 事件；count 为可选计数（记录数等）。
func (t *Timer) Finish(msg string, count int64) {
	if t == nil || t.l == nil {
		return
	}
	t.l.z.Info(msg, zap.String("comp", t.comp), zap.String("stage", "finish"),
		zap.Int64("dur_ms", time.Since(t.t0).Milliseconds()), zap.Int64("count", count))
}
