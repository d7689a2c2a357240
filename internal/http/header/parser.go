package header

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

func splitLine(line []byte) (key, value []byte, ok bool) {
	colonIdx := bytes.IndexByte(line, ':')
	if colonIdx == -1 {
		return nil, nil, false
	}
	return bytes.TrimSpace(line[:colonIdx]), bytes.TrimSpace(line[colonIdx+1:]), true
}

// Parse reads a raw header block. Lines end with CRLF or LF and the block
// ends at the first empty line. Lines without a colon are skipped.
func Parse(block []byte) (*Map, error) {
	m := NewMap()
	remaining := block

	for len(remaining) > 0 {
		lineEnd := bytes.IndexByte(remaining, '\n')
		if lineEnd == -1 {
			lineEnd = len(remaining)
		}

		line := bytes.TrimRight(remaining[:lineEnd], "\r")
		if len(line) == 0 {
			break
		}

		if key, value, ok := splitLine(line); ok {
			if err := m.Add(string(key), string(value)); err != nil {
				return nil, err
			}
		}

		if lineEnd == len(remaining) {
			break
		}
		remaining = remaining[lineEnd+1:]
	}

	return m, nil
}

// Read consumes header lines from br up to and including the empty line.
func Read(br *bufio.Reader) (*Map, error) {
	m := NewMap()

	for {
		lineBytes, err := br.ReadSlice('\n')
		if err != nil {
			return nil, err
		}

		lineBytes = bytes.TrimRight(lineBytes, "\r\n")
		if len(lineBytes) == 0 {
			break
		}

		key, value, ok := splitLine(lineBytes)
		if !ok {
			continue
		}
		if err = m.Add(string(key), string(value)); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Map) lines() []string {
	lines := make([]string, 0, m.Len())
	m.Range(func(name Name, values []string) bool {
		if name == SetCookie {
			for _, v := range values {
				lines = append(lines, string(name)+": "+v)
			}
			return true
		}
		lines = append(lines, string(name)+": "+strings.Join(values, ", "))
		return true
	})
	return lines
}

// Finalize serialises startLine and the headers into a wire header block,
// terminated by the empty line.
func (m *Map) Finalize(startLine string) []byte {
	lines := m.lines()

	size := len(startLine) + 2
	for _, l := range lines {
		size += len(l) + 2
	}
	size += 2

	buf := make([]byte, 0, size)
	buf = append(buf, startLine...)
	buf = append(buf, '\r', '\n')

	for _, l := range lines {
		buf = append(buf, l...)
		buf = append(buf, '\r', '\n')
	}

	buf = append(buf, '\r', '\n')
	return buf
}

// WriteTo writes the header lines and the terminating empty line to w.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, l := range m.lines() {
		n, err := io.WriteString(w, l+"\r\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	n, err := io.WriteString(w, "\r\n")
	return total + int64(n), err
}
