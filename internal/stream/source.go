package stream

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// OpenInputs 将输入参数归一为单一字节流：
// - 空参数或单个 "-"：STDIN；
// - 其余：按给定顺序依次串接的文件（懒打开，读完即关）。
// "-" 不得与文件路径混用。
func OpenInputs(paths []string) (io.ReadCloser, error) {
	if len(paths) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	stdin := false
	for _, p := range paths {
		if p == "-" {
			stdin = true
		}
	}
	if stdin {
		if len(paths) > 1 {
			return nil, errors.New(`"-" cannot be mixed with file inputs`)
		}
		return io.NopCloser(os.Stdin), nil
	}
	// 路径问题在任何记录处理前暴露
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, err
		}
	}
	return &multiFile{paths: paths}, nil
}

// multiFile: 顺序串接多个文件的 ReadCloser（一次只持有一个文件句柄）。
type multiFile struct {
	paths []string
	idx   int
	cur   *os.File
}

func (m *multiFile) Read(p []byte) (int, error) {
	for {
		if m.cur == nil {
			if m.idx >= len(m.paths) {
				return 0, io.EOF
			}
			f, err := os.Open(m.paths[m.idx])
			if err != nil {
				return 0, err
			}
			m.cur = f
			m.idx++
		}
		n, err := m.cur.Read(p)
		if err == io.EOF {
			_ = m.cur.Close()
			m.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (m *multiFile) Close() error {
	if m.cur == nil {
		return nil
	}
	err := m.cur.Close()
	m.cur = nil
	return err
}
