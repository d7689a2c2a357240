package middleware

import (
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
)

type Fingerprint struct {
	server string
}

func NewFingerprint(server string) *Fingerprint {
	return &Fingerprint{server: server}
}

func (f *Fingerprint) HandleResponse(resp *message.Response) (*message.Response, error) {
	headers := resp.HeaderMap()
	if headers.Value(string(header.Server)) == f.server {
		return resp, nil
	}
	if err := headers.Put(string(header.Server), f.server); err != nil {
		return nil, err
	}
	return resp.WithHeaderMap(headers)
}
