package diag

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Progress: 诊断进度通道（非日志、非数据）。
// - 每组开头写 "<标题>: "，每处理一条记录写 "."，组完成写换行；
// - 仅写入独立诊断流（stderr），下游消费者不得解析；
// - 非 TTY（Hadoop streaming 重定向）下行为不变，仅省去逐点刷新；
// - 写失败进入禁用态，之后为 no-op；对 nil 接收者安全。
type Progress struct {
	w       io.Writer
	enabled bool
	isTTY   bool
	mu      sync.Mutex
}

// NewProgress 构造进度提示器；enabled=false 时返回 nil（全 no-op）。
func NewProgress(w io.Writer, enabled bool) *Progress {
	if !enabled {
		return nil
	}
	if w == nil {
		w = os.Stderr
	}
	p := &Progress{w: w, enabled: true}
	if f, ok := w.(*os.File); ok {
		p.isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return p
}

// GroupStart 写组头 "<标题>: "。
func (p *Progress) GroupStart(title string) { p.write(title + ": ") }

// Tick 写单条记录标记 "."。
func (p *Progress) Tick() { p.write(".") }

// GroupEnd 写组完成换行。
func (p *Progress) GroupEnd() { p.write("\n") }

func (p *Progress) write(s string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.enabled = false
	}
}
