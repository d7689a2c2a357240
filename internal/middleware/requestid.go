package middleware

import (
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
	"httpmsg/internal/random"
)

// RequestID tags requests that arrive without an X-Request-Id.
type RequestID struct {
	random random.Random
	length int
}

func NewRequestID(r random.Random, length int) *RequestID {
	return &RequestID{random: r, length: length}
}

func (ri *RequestID) HandleRequest(req *message.Request) (*message.Request, error) {
	headers := req.HeaderMap()
	if headers.Has(string(header.XRequestID)) {
		return req, nil
	}

	id, err := ri.random.ID(ri.length)
	if err != nil {
		return nil, err
	}

	if err = headers.Put(string(header.XRequestID), id); err != nil {
		return nil, err
	}
	return req.WithHeaderMap(headers)
}
