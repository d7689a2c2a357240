package stream

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

var ErrClosed = errors.New("stream closed")

// Stream is a message body. Size reports the length in bytes, or -1 when it
// is not known up front. Clone returns a new handle on the same content.
type Stream interface {
	io.ReadCloser
	Size() int64
	Clone() Stream
}

type memory struct {
	data []byte
	r    *bytes.Reader
}

func FromBytes(b []byte) Stream {
	data := bytes.Clone(b)
	return &memory{data: data, r: bytes.NewReader(data)}
}

func FromString(s string) Stream {
	return FromBytes([]byte(s))
}

func Empty() Stream {
	return FromBytes(nil)
}

func (m *memory) Read(p []byte) (int, error) {
	return m.r.Read(p)
}

func (m *memory) Close() error {
	return nil
}

func (m *memory) Size() int64 {
	return int64(len(m.data))
}

// Clone reads the same bytes from the start, independently of m.
func (m *memory) Clone() Stream {
	return &memory{data: m.data, r: bytes.NewReader(m.data)}
}

type Opener func() (io.ReadCloser, error)

type source struct {
	mu     sync.Mutex
	open   Opener
	rc     io.ReadCloser
	err    error
	opened bool
	closed bool
}

func (s *source) get() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if !s.opened {
		s.opened = true
		s.rc, s.err = s.open()
	}
	return s.rc, s.err
}

func (s *source) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.rc == nil {
		return nil
	}
	return s.rc.Close()
}

type lazy struct {
	src  *source
	size int64
}

// Lazy defers open until the first Read. The underlying source is read at
// most once: clones share it and see each other's progress.
func Lazy(open Opener, sizeHint int64) Stream {
	return &lazy{src: &source{open: open}, size: sizeHint}
}

func (l *lazy) Read(p []byte) (int, error) {
	rc, err := l.src.get()
	if err != nil {
		return 0, err
	}
	return rc.Read(p)
}

func (l *lazy) Close() error {
	return l.src.close()
}

func (l *lazy) Size() int64 {
	return l.size
}

func (l *lazy) Clone() Stream {
	return &lazy{src: l.src, size: l.size}
}

// ReadAll drains s.
func ReadAll(s Stream) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return io.ReadAll(s)
}
