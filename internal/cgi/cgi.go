package cgi

import (
	"errors"
	"io"
	"net"
	"slices"
	"strconv"
	"strings"

	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
	"httpmsg/internal/http/uri"
	"httpmsg/internal/transport"
)

var (
	ErrMissingMethod = errors.New("REQUEST_METHOD is not set")
	ErrMissingURI    = errors.New("REQUEST_URI is not set")
)

// Environment is a snapshot of the variables a web server hands a CGI
// responder.
type Environment map[string]string

// ParseEnviron builds an Environment from "KEY=value" pairs as returned by
// os.Environ. Entries without "=" are ignored.
func ParseEnviron(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// RemoteAddr returns the client address, or nil when REMOTE_ADDR is absent
// or not an IP.
func (e Environment) RemoteAddr() net.Addr {
	ip := net.ParseIP(e["REMOTE_ADDR"])
	if ip == nil {
		return nil
	}
	port, _ := strconv.Atoi(e["REMOTE_PORT"])
	return &net.TCPAddr{IP: ip, Port: port}
}

func (e Environment) scheme() uri.Scheme {
	if https := strings.ToLower(e["HTTPS"]); https == "on" || https == "1" {
		return uri.SchemeHTTPS
	}
	return uri.SchemeHTTP
}

func (e Environment) authority() string {
	if host := e["HTTP_HOST"]; host != "" {
		return host
	}
	name := e["SERVER_NAME"]
	if name == "" {
		return ""
	}
	if port := e["SERVER_PORT"]; port != "" {
		return net.JoinHostPort(name, port)
	}
	return name
}

// headers maps HTTP_FOO_BAR to Foo-Bar plus the two unprefixed content
// variables. Keys are visited in sorted order so the result is stable.
func (e Environment) headers() (*header.Map, error) {
	keys := make([]string, 0, len(e))
	for k := range e {
		if strings.HasPrefix(k, "HTTP_") {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	m := header.NewMap()
	for _, k := range keys {
		name := strings.ReplaceAll(strings.TrimPrefix(k, "HTTP_"), "_", "-")
		if err := m.Put(name, e[k]); err != nil {
			return nil, err
		}
	}

	if v, ok := e["CONTENT_TYPE"]; ok && v != "" {
		if err := m.Put(string(header.ContentType), v); err != nil {
			return nil, err
		}
	}
	if v, ok := e["CONTENT_LENGTH"]; ok && v != "" {
		if err := m.Put(string(header.ContentLength), v); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// FromEnvironment builds the request described by env. The body is read
// from input on first use, up to CONTENT_LENGTH bytes.
func FromEnvironment(env Environment, input io.Reader, limit int64, opts ...message.Option) (*message.Request, error) {
	headers, err := env.headers()
	if err != nil {
		return nil, err
	}

	rawMethod := env["REQUEST_METHOD"]
	if rawMethod == "" {
		return nil, ErrMissingMethod
	}
	method, err := message.ParseMethod(rawMethod)
	if err != nil {
		return nil, err
	}

	version := "1.1"
	if protocol, ok := env["SERVER_PROTOCOL"]; ok && protocol != "" {
		version = strings.TrimPrefix(protocol, "HTTP/")
	}

	target, ok := env["REQUEST_URI"]
	if !ok {
		return nil, ErrMissingURI
	}
	u, err := uri.FromTarget(env.scheme(), env.authority(), target)
	if err != nil {
		return nil, err
	}

	body, err := transport.BodyFromLength(input, env["CONTENT_LENGTH"], limit)
	if err != nil {
		return nil, err
	}

	return message.NewRequest(method, u, headers, body, append(opts, message.ProtocolVersion(version))...)
}
