package bootstrap

import (
	"fmt"
	"net/url"
	"strings"

	"httpmsg/internal/http/cookie"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
	"httpmsg/internal/http/stream"
)

const lastVisitedCookie = "last_visited"

// Echo describes req back to the client and remembers the visited path in
// a cookie.
func Echo(req *message.Request, contentType string) (*message.Response, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s HTTP/%s\n", req.Method(), req.URL(), req.ProtocolVersion())

	sb.WriteString("\n")
	req.HeaderMap().Range(func(name header.Name, values []string) bool {
		fmt.Fprintf(&sb, "%s: %s\n", name, strings.Join(values, ", "))
		return true
	})

	cookies, err := req.Cookies()
	if err != nil {
		return nil, err
	}
	if len(cookies) > 0 {
		sb.WriteString("\n")
		for _, c := range cookies {
			fmt.Fprintf(&sb, "cookie %s=%s\n", c.Name, c.Value)
		}
	}

	body, err := stream.ReadAll(req.Body())
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		sb.WriteString("\n")
		sb.Write(body)
	}

	headers := header.NewMap()
	if id := req.HeaderMap().Value(string(header.XRequestID)); id != "" {
		if err = headers.Put(string(header.XRequestID), id); err != nil {
			return nil, err
		}
	}

	resp, err := message.NewResponse(200, headers, nil)
	if err != nil {
		return nil, err
	}
	if resp, err = resp.WithContent(sb.String(), contentType); err != nil {
		return nil, err
	}

	path := req.URL().Path()
	if path == "" {
		path = "/"
	}
	visited, err := cookie.New(lastVisitedCookie, url.QueryEscape(path))
	if err != nil {
		return nil, err
	}
	visited.Path = "/"
	visited.HttpOnly = true
	visited.SameSite = cookie.SameSiteLax

	return resp.WithCookie(visited)
}
