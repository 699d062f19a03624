package contract

import "encoding/json"

// Page: 修订所属页面的标识（分组键为 Title）。
type Page struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Namespace int    `json:"namespace"`
}

// Token: 词元的最小表示（比较单位）。
type Token string

// TokenSequence: 单条修订文本经词元化得到的有序序列。
// 生命周期：同一页面组内至多两条相邻记录（当前 + 前一条），不跨组保留。
type TokenSequence []Token

// EditOp: 两个词元序列之间的单步结构变换。
// a1/a2、b1/b2 为源/目标序列上的半开区间索引；
// Tokens 由输出装配阶段回填：insert 取 b[b1:b2]，delete 取 a[a1:a2]，equal 不携带。
type EditOp struct {
	Name   string   `json:"name"`
	A1     int      `json:"a1"`
	A2     int      `json:"a2"`
	B1     int      `json:"b1"`
	B2     int      `json:"b2"`
	Tokens []string `json:"tokens,omitempty"`
}

// 操作名（与线格式一致）。
const (
	OpEqual  = "equal"
	OpDelete = "delete"
	OpInsert = "insert"
)

// Diff: 有序编辑操作序列。nil 表示记录未携带 diff；空切片是合法的空 diff。
type Diff []EditOp

// TimedOutSentinel: diff 超时时写入 diff_time 的哨兵值（秒）。
const TimedOutSentinel = float64(-1)

// Record: 单条修订记录。
// 不变量：输入流按 (页面标识, 排序键) 升序且按页分片（上游前置条件，不在此校验）；
// 除已定义字段外的一切 JSON 字段原样透传（Extra）。
type Record struct {
	Page Page
	// Text: 修订文本。nil 表示缺失/null；词元化时按空文本处理。
	Text *string
	// Diff: nil 表示未设置。
	Diff Diff
	// TokenizeTime/DiffTime: 秒；DiffTime == TimedOutSentinel 表示超时。
	TokenizeTime *float64
	DiffTime     *float64
	// Extra: 未识别字段的原样保留（含 id、timestamp 等排序键）。
	Extra map[string]json.RawMessage

	// pageRaw: page 子文档的原始字节，用于无损回写。
	pageRaw json.RawMessage
}

// RevID 从透传字段中解析修订标识（仅用于诊断；解析失败返回 0）。
func (r *Record) RevID() int64 {
	raw, ok := r.Extra["id"]
	if !ok {
		return 0
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0
	}
	return id
}

// UnmarshalJSON 解析已定义字段并将其余字段原样保留。
func (r *Record) UnmarshalJSON(b []byte) error {
	m := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if raw, ok := m["page"]; ok {
		if err := json.Unmarshal(raw, &r.Page); err != nil {
			return err
		}
		r.pageRaw = raw
		delete(m, "page")
	}
	if raw, ok := m["text"]; ok {
		// null 与缺失同义（按空文本处理）
		if string(raw) != "null" {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			r.Text = &s
		}
		delete(m, "text")
	}
	if raw, ok := m["diff"]; ok {
		if string(raw) != "null" {
			d := Diff{}
			if err := json.Unmarshal(raw, &d); err != nil {
				return err
			}
			r.Diff = d
		}
		delete(m, "diff")
	}
	for _, k := range [...]string{"tokenize_time", "diff_time"} {
		raw, ok := m[k]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if k == "tokenize_time" {
			tv := v
			r.TokenizeTime = &tv
		} else {
			dv := v
			r.DiffTime = &dv
		}
		delete(m, k)
	}
	r.Extra = m
	return nil
}

// MarshalJSON 回写同形 JSON（已定义字段 + 原样透传字段；键按字典序，输出确定）。
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(r.Extra)+5)
	for k, v := range r.Extra {
		m[k] = v
	}
	if r.pageRaw != nil {
		m["page"] = r.pageRaw
	} else {
		b, err := json.Marshal(r.Page)
		if err != nil {
			return nil, err
		}
		m["page"] = b
	}
	if r.Text != nil {
		b, err := json.Marshal(*r.Text)
		if err != nil {
			return nil, err
		}
		m["text"] = b
	}
	if r.Diff != nil {
		b, err := json.Marshal(r.Diff)
		if err != nil {
			return nil, err
		}
		m["diff"] = b
	}
	if r.TokenizeTime != nil {
		b, err := json.Marshal(*r.TokenizeTime)
		if err != nil {
			return nil, err
		}
		m["tokenize_time"] = b
	}
	if r.DiffTime != nil {
		b, err := json.Marshal(*r.DiffTime)
		if err != nil {
			return nil, err
		}
		m["diff_time"] = b
	}
	return json.Marshal(m)
}
