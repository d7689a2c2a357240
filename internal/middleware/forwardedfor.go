package middleware

import (
	"net"

	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
)

type ForwardedFor struct {
	addr net.Addr
}

func NewForwardedFor(addr net.Addr) *ForwardedFor {
	return &ForwardedFor{addr: addr}
}

// HandleRequest appends the client address to X-Forwarded-For.
func (ff *ForwardedFor) HandleRequest(req *message.Request) (*message.Request, error) {
	host, _, err := net.SplitHostPort(ff.addr.String())
	if err != nil {
		return nil, err
	}

	headers := req.HeaderMap()
	if prior := headers.Value(string(header.XForwardedFor)); prior != "" {
		host = prior + ", " + host
	}
	if err = headers.Put(string(header.XForwardedFor), host); err != nil {
		return nil, err
	}
	return req.WithHeaderMap(headers)
}
