package stream

import (
	"bufio"
	"encoding/json"
	"io"

	"revdiff/pkg/contract"
)

// Writer: JSON-lines 发出端（一条一行，即发即走）。
// 键按字典序序列化（map 语义），同输入在语义上同形；不转义 HTML。
type Writer struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriterSize(w, 1<<20)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &Writer{bw: bw, enc: enc}
}

// Emit 实现 engine.Sink。
func (w *Writer) Emit(rec *contract.Record) error {
	return w.enc.Encode(rec)
}

// Flush 冲刷缓冲（流结束时必须调用）。
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
