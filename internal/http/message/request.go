package message

import (
	"fmt"
	"strings"

	"httpmsg/internal/http/cookie"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/stream"
	"httpmsg/internal/http/uri"
)

// Request is an immutable HTTP request. The With* methods return a new
// request, or the receiver itself when nothing changes.
type Request struct {
	message
	method Method
	url    *uri.URL
}

// NewRequest builds a request from a copy of headers and takes ownership
// of body.
// Nil arguments default to an empty URL, header map and body.
func NewRequest(method Method, u *uri.URL, headers *header.Map, body stream.Stream, opts ...Option) (*Request, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := method.Validate(); err != nil {
		return nil, err
	}
	if u == nil {
		u = &uri.URL{}
	}

	r := &Request{
		message: newMessage(headers, body, o.protocolVersion),
		method:  method,
		url:     u,
	}

	if err := checkBody(r.method, r.body); err != nil {
		return nil, err
	}

	if o.inferHost && !r.headers.Has(string(header.Host)) {
		if err := r.updateHostHeader(); err != nil {
			return nil, err
		}
	}

	if err := r.headers.CheckRole(header.RequestOnly); err != nil {
		return nil, err
	}

	return r, nil
}

func checkBody(method Method, body stream.Stream) error {
	if !method.CanHaveBody() && body.Size() > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBodyForMethod, method)
	}
	return nil
}

func (r *Request) updateHostHeader() error {
	host := r.url.HostWithPort()
	if host == "" {
		return nil
	}
	return r.headers.Put(string(header.Host), host)
}

func (r *Request) clone() *Request {
	return &Request{message: r.message.clone(), method: r.method, url: r.url}
}

func (r *Request) Method() Method {
	return r.method
}

func (r *Request) URL() *uri.URL {
	return r.url
}

// Cookies parses the Cookie header, if any.
func (r *Request) Cookies() ([]*cookie.Cookie, error) {
	if !r.headers.Has(string(header.Cookie)) {
		return nil, nil
	}
	values, err := r.headers.Get(string(header.Cookie))
	if err != nil {
		return nil, err
	}
	return cookie.ParseClient(strings.Join(values, "; "))
}

func (r *Request) WithProtocolVersion(version string) *Request {
	if version == r.protocolVersion {
		return r
	}
	c := r.clone()
	c.protocolVersion = version
	return c
}

func (r *Request) WithBody(body stream.Stream) (*Request, error) {
	if sameStream(body, r.body) {
		return r, nil
	}
	if body == nil {
		body = stream.Empty()
	}
	if err := checkBody(r.method, body); err != nil {
		return nil, err
	}
	c := r.clone()
	c.body = body
	return c, nil
}

// WithHeaderMap replaces the headers with a copy of headers; Host is not
// inferred. Headers equal to the current ones return r.
func (r *Request) WithHeaderMap(headers *header.Map) (*Request, error) {
	if r.sameHeaders(headers) {
		return r, nil
	}
	if headers == nil {
		headers = header.NewMap()
	}
	if err := headers.CheckRole(header.RequestOnly); err != nil {
		return nil, err
	}
	c := r.clone()
	c.headers = headers.DeepClone()
	return c, nil
}

func (r *Request) WithRequestMethod(method Method) (*Request, error) {
	if method == r.method {
		return r, nil
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if err := checkBody(method, r.body); err != nil {
		return nil, err
	}
	c := r.clone()
	c.method = method
	return c, nil
}

// WithURL replaces the URL. The Host header follows the new URL unless
// preserveHost is set and a Host header is already present.
func (r *Request) WithURL(u *uri.URL, preserveHost bool) (*Request, error) {
	if u == r.url {
		return r, nil
	}
	if u == nil {
		u = &uri.URL{}
	}
	c := r.clone()
	c.url = u
	if !preserveHost || !c.headers.Has(string(header.Host)) {
		if err := c.updateHostHeader(); err != nil {
			return nil, err
		}
	}
	return c, nil
}
