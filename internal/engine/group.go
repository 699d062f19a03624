package engine

import (
	"github.com/cockroachdb/errors"

	"revdiff/pkg/contract"
)

// Grouper 将已按页排序的记录流划分为共享页面标识的极大连续段。
// 约束：
// 1) 不缓冲整组；边界由"下一条记录的标识变化"检测（至多一条前瞻）；
// 2) 空输入不产生任何组；
// 3) 已关闭的页面标识重现视为前置条件违例，致命（而非静默错分组）。
type Grouper struct {
	cur  string
	open bool
	// closed 随不同页面标识数线性增长：重现检测要求记住全部已关闭标识。
	// 每页只占一个标题字符串，相对修订文本的常驻占用可忽略。
	closed map[string]struct{}
}

func NewGrouper() *Grouper {
	return &Grouper{closed: make(map[string]struct{})}
}

// Next 观察一条记录的页面标识；返回该记录是否开启新组。
func (g *Grouper) Next(title string) (bool, error) {
	if g.open && title == g.cur {
		return false, nil
	}
	if _, ok := g.closed[title]; ok {
		return false, errors.Wrapf(contract.ErrOrderViolation,
			"page %q reappeared after its group closed", title)
	}
	if g.open {
		g.closed[g.cur] = struct{}{}
	}
	g.cur = title
	g.open = true
	return true, nil
}

// Current 返回当前打开组的页面标识（无组时为空串）。
func (g *Grouper) Current() string {
	if !g.open {
		return ""
	}
	return g.cur
}

// Open 报告是否存在未关闭的组（用于流末尾收尾）。
func (g *Grouper) Open() bool { return g.open }
