package message

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"httpmsg/internal/http/cookie"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/stream"
)

const (
	minStatusCode = 100
	maxStatusCode = 599
)

// Response is an immutable HTTP response.
type Response struct {
	message
	status int
}

// NewResponse builds a response from a copy of headers and takes ownership
// of body.
func NewResponse(status int, headers *header.Map, body stream.Stream, opts ...Option) (*Response, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateStatus(status); err != nil {
		return nil, err
	}

	r := &Response{
		message: newMessage(headers, body, o.protocolVersion),
		status:  status,
	}

	if err := r.headers.CheckRole(header.ResponseOnly); err != nil {
		return nil, err
	}

	return r, nil
}

func validateStatus(status int) error {
	if status < minStatusCode || status > maxStatusCode {
		return fmt.Errorf("%w: %d", ErrInvalidStatusCode, status)
	}
	return nil
}

func (r *Response) clone() *Response {
	return &Response{message: r.message.clone(), status: r.status}
}

func (r *Response) StatusCode() int {
	return r.status
}

// ReasonPhrase returns the standard reason phrase for the status code, or
// an empty string for unregistered codes.
func (r *Response) ReasonPhrase() string {
	return http.StatusText(r.status)
}

func (r *Response) MimeType() string {
	return r.headers.Value(string(header.ContentType))
}

// Content reads the body through a clone. In-memory bodies stay readable;
// a lazily opened body is consumed.
func (r *Response) Content() (string, error) {
	data, err := stream.ReadAll(r.body.Clone())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Cookies parses every Set-Cookie header.
func (r *Response) Cookies() ([]*cookie.Cookie, error) {
	if !r.headers.Has(string(header.SetCookie)) {
		return nil, nil
	}
	values, err := r.headers.Get(string(header.SetCookie))
	if err != nil {
		return nil, err
	}

	cookies := make([]*cookie.Cookie, 0, len(values))
	for _, v := range values {
		c, err := cookie.ParseResponse(v)
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}

func (r *Response) WithStatusCode(status int) (*Response, error) {
	if status == r.status {
		return r, nil
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	c := r.clone()
	c.status = status
	return c, nil
}

// WithContent replaces the body with content and writes mimeType to the
// Content-Type header. An empty mimeType is sniffed from content.
func (r *Response) WithContent(content string, mimeType string) (*Response, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType([]byte(content))
	}
	if _, _, err := mime.ParseMediaType(mimeType); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidMimeType, mimeType, err)
	}

	c := r.clone()
	c.body = stream.FromString(content)
	if err := c.headers.Put(string(header.ContentType), mimeType); err != nil {
		return nil, err
	}
	c.headers.Remove(string(header.ContentLength))
	return c, nil
}

// WithCookie appends a Set-Cookie header for ck.
func (r *Response) WithCookie(ck *cookie.Cookie) (*Response, error) {
	if ck == nil {
		return nil, fmt.Errorf("%w: nil cookie", cookie.ErrMalformedCookie)
	}
	c := r.clone()
	if err := c.headers.Add(string(header.SetCookie), ck.String()); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Response) WithProtocolVersion(version string) *Response {
	if version == r.protocolVersion {
		return r
	}
	c := r.clone()
	c.protocolVersion = version
	return c
}

func (r *Response) WithBody(body stream.Stream) *Response {
	if sameStream(body, r.body) {
		return r
	}
	if body == nil {
		body = stream.Empty()
	}
	c := r.clone()
	c.body = body
	return c
}

// WithHeaderMap replaces the headers with a copy of headers. Headers equal
// to the current ones return r.
func (r *Response) WithHeaderMap(headers *header.Map) (*Response, error) {
	if r.sameHeaders(headers) {
		return r, nil
	}
	if headers == nil {
		headers = header.NewMap()
	}
	if err := headers.CheckRole(header.ResponseOnly); err != nil {
		return nil, err
	}
	c := r.clone()
	c.headers = headers.DeepClone()
	return c, nil
}

func bodyAllowed(status int) bool {
	return status >= 200 && status != http.StatusNoContent && status != http.StatusNotModified
}

// Snapshot materialises the response: a private copy of the headers with
// Content-Length filled in when the body size is known.
func (r *Response) Snapshot() (Snapshot, error) {
	headers := r.headers.DeepClone()

	if size := r.body.Size(); size >= 0 && bodyAllowed(r.status) && !headers.Has(string(header.ContentLength)) {
		if err := headers.Put(string(header.ContentLength), strconv.FormatInt(size, 10)); err != nil {
			return Snapshot{}, err
		}
	}

	return Snapshot{
		ProtocolVersion: r.protocolVersion,
		StatusCode:      r.status,
		Headers:         headers,
		Body:            r.body.Clone(),
	}, nil
}

// Send hands the materialised response to s.
func (r *Response) Send(s Sender) error {
	snapshot, err := r.Snapshot()
	if err != nil {
		return err
	}
	return s.Send(snapshot)
}
