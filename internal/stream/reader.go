package stream

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/cockroachdb/errors"

	"revdiff/pkg/contract"
)

// Reader: JSON-lines 修订文档流（一行一条）。
// 约束：
// 1) 流式逐条回调，不缓冲、不重排；
// 2) 空行跳过；
// 3) 行长不设上限（修订文本可达数 MB），按 '\n' 增量读取；
// 4) 解析失败按 ErrInvalidInput 上抛（致命）。
type Reader struct {
	br *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 1<<20)}
}

// Iterate 实现 engine.Source。
func (r *Reader) Iterate(ctx context.Context, yield func(*contract.Record) error) error {
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := readLine(r.br)
		if err == io.EOF && len(raw) == 0 {
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}
		line++
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			if err == io.EOF {
				return nil
			}
			continue
		}
		rec := &contract.Record{}
		if uerr := rec.UnmarshalJSON(trimmed); uerr != nil {
			return errors.Wrapf(contract.ErrInvalidInput, "line %d: %v", line, uerr)
		}
		if yerr := yield(rec); yerr != nil {
			return yerr
		}
		if err == io.EOF {
			return nil
		}
	}
}

// readLine 读取一整行（无长度上限）。
func readLine(br *bufio.Reader) ([]byte, error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		buf = append(buf, chunk...)
		if err == bufio.ErrBufferFull {
			continue
		}
		return buf, err
	}
}
