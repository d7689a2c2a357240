package middleware

import (
	"log"

	"httpmsg/internal/http/message"
)

// RequestMiddleware derives a new request from req. Returning req itself
// means nothing changed.
type RequestMiddleware interface {
	HandleRequest(req *message.Request) (*message.Request, error)
}

type ResponseMiddleware interface {
	HandleResponse(resp *message.Response) (*message.Response, error)
}

func ApplyRequest(req *message.Request, mws ...RequestMiddleware) (*message.Request, error) {
	for _, m := range mws {
		next, err := m.HandleRequest(req)
		if err != nil {
			log.Printf("Error when applying request middleware: %v", err)
			return nil, err
		}
		req = next
	}
	return req, nil
}

func ApplyResponse(resp *message.Response, mws ...ResponseMiddleware) (*message.Response, error) {
	for _, m := range mws {
		next, err := m.HandleResponse(resp)
		if err != nil {
			log.Printf("Error when applying response middleware: %v", err)
			return nil, err
		}
		resp = next
	}
	return resp, nil
}
