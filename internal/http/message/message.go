package message

import (
	"errors"
	"io"
	"reflect"

	"httpmsg/internal/http/header"
	"httpmsg/internal/http/stream"
)

const DefaultProtocolVersion = "1.1"

var (
	ErrInvalidBodyForMethod = errors.New("request method cannot have a body")
	ErrInvalidStatusCode    = errors.New("invalid status code")
	ErrInvalidMethod        = errors.New("invalid request method")
	ErrInvalidMimeType      = errors.New("invalid mime type")
)

// message is the state shared by requests and responses. Each message owns
// its header map; it is copied on the way in and on the way out.
type message struct {
	headers         *header.Map
	body            stream.Stream
	protocolVersion string
}

func newMessage(headers *header.Map, body stream.Stream, protocolVersion string) message {
	if headers == nil {
		headers = header.NewMap()
	} else {
		headers = headers.DeepClone()
	}
	if body == nil {
		body = stream.Empty()
	}
	if protocolVersion == "" {
		protocolVersion = DefaultProtocolVersion
	}
	return message{headers: headers, body: body, protocolVersion: protocolVersion}
}

func (m *message) clone() message {
	return message{
		headers:         m.headers.DeepClone(),
		body:            m.body.Clone(),
		protocolVersion: m.protocolVersion,
	}
}

// HeaderMap returns a copy of the headers. Changing it does not affect the
// message; pass it to WithHeaderMap to derive a changed one.
func (m *message) HeaderMap() *header.Map {
	return m.headers.DeepClone()
}

// sameHeaders reports whether headers would leave the message unchanged.
func (m *message) sameHeaders(headers *header.Map) bool {
	if headers == nil {
		return m.headers.Len() == 0
	}
	return m.headers.Equal(headers)
}

// sameStream compares body handles without panicking on streams whose
// dynamic type is not comparable; those never count as the same.
func sameStream(a, b stream.Stream) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return a == b
}

func (m *message) Body() stream.Stream {
	return m.body
}

func (m *message) ProtocolVersion() string {
	return m.protocolVersion
}

type Option func(*options)

type options struct {
	protocolVersion string
	inferHost       bool
}

func defaultOptions() options {
	return options{protocolVersion: DefaultProtocolVersion, inferHost: true}
}

// ProtocolVersion sets the HTTP version, e.g. "1.1".
func ProtocolVersion(version string) Option {
	return func(o *options) {
		o.protocolVersion = version
	}
}

// InferHost toggles deriving the Host header from the request URL.
// It has no effect on responses.
func InferHost(enabled bool) Option {
	return func(o *options) {
		o.inferHost = enabled
	}
}

// Snapshot is a fully materialised response handed to a Sender.
type Snapshot struct {
	ProtocolVersion string
	StatusCode      int
	Headers         *header.Map
	Body            io.Reader
}

// Sender writes a response to wherever it has to go.
type Sender interface {
	Send(snapshot Snapshot) error
}
