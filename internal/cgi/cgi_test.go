package cgi

import (
	"net"
	"strings"
	"testing"

	"httpmsg/internal/http/message"
	"httpmsg/internal/http/stream"
	"httpmsg/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv() Environment {
	return Environment{
		"REQUEST_METHOD":  "GET",
		"REQUEST_URI":     "/echo?name=ada",
		"SERVER_PROTOCOL": "HTTP/1.0",
		"SERVER_NAME":     "fallback.test",
		"SERVER_PORT":     "8080",
		"HTTP_HOST":       "example.com",
		"HTTP_USER_AGENT": "curl/8.5.0",
		"HTTP_COOKIE":     "last=home; theme=dark",
		"REMOTE_ADDR":     "198.51.100.7",
		"REMOTE_PORT":     "40112",
	}
}

func TestParseEnviron(t *testing.T) {
	env := ParseEnviron([]string{"A=1", "B=x=y", "broken", "C="})

	assert.Equal(t, Environment{"A": "1", "B": "x=y", "C": ""}, env)
}

func TestFromEnvironment(t *testing.T) {
	req, err := FromEnvironment(baseEnv(), strings.NewReader(""), 1024)
	require.NoError(t, err)

	assert.Equal(t, message.MethodGet, req.Method())
	assert.Equal(t, "1.0", req.ProtocolVersion())
	assert.Equal(t, "http://example.com/echo?name=ada", req.URL().String())
	assert.Equal(t, "curl/8.5.0", req.HeaderMap().Value("User-Agent"))
	assert.Equal(t, "example.com", req.HeaderMap().Value("Host"))

	cookies, err := req.Cookies()
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "home", cookies[0].Value)
}

func TestFromEnvironmentServerNameFallback(t *testing.T) {
	env := baseEnv()
	delete(env, "HTTP_HOST")
	env["HTTPS"] = "on"

	req, err := FromEnvironment(env, strings.NewReader(""), 1024)
	require.NoError(t, err)

	assert.Equal(t, "https://fallback.test:8080/echo?name=ada", req.URL().String())
	assert.Equal(t, "fallback.test:8080", req.HeaderMap().Value("Host"))
}

func TestFromEnvironmentBody(t *testing.T) {
	env := baseEnv()
	env["REQUEST_METHOD"] = "POST"
	env["CONTENT_TYPE"] = "application/x-www-form-urlencoded"
	env["CONTENT_LENGTH"] = "7"

	req, err := FromEnvironment(env, strings.NewReader("a=1&b=2 and more"), 1024)
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", req.HeaderMap().Value("Content-Type"))
	assert.Equal(t, "7", req.HeaderMap().Value("Content-Length"))

	body, err := stream.ReadAll(req.Body())
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", string(body))
}

func TestFromEnvironmentErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(Environment)
		limit   int64
		wantErr error
	}{
		{name: "missing method", mutate: func(e Environment) { delete(e, "REQUEST_METHOD") }, limit: 16, wantErr: ErrMissingMethod},
		{name: "empty method", mutate: func(e Environment) { e["REQUEST_METHOD"] = "" }, limit: 16, wantErr: ErrMissingMethod},
		{name: "missing uri", mutate: func(e Environment) { delete(e, "REQUEST_URI") }, limit: 16, wantErr: ErrMissingURI},
		{name: "body on GET", mutate: func(e Environment) { e["CONTENT_LENGTH"] = "3" }, limit: 16, wantErr: message.ErrInvalidBodyForMethod},
		{name: "body too large", mutate: func(e Environment) {
			e["REQUEST_METHOD"] = "PUT"
			e["CONTENT_LENGTH"] = "300"
		}, limit: 16, wantErr: transport.ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.mutate(env)

			_, err := FromEnvironment(env, strings.NewReader("abc"), tt.limit)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoteAddr(t *testing.T) {
	addr := baseEnv().RemoteAddr()
	require.NotNil(t, addr)
	assert.Equal(t, "198.51.100.7:40112", addr.String())

	assert.Nil(t, Environment{}.RemoteAddr())
	assert.Nil(t, Environment{"REMOTE_ADDR": "not-an-ip"}.RemoteAddr())

	v6 := Environment{"REMOTE_ADDR": "2001:db8::1"}.RemoteAddr()
	host, _, err := net.SplitHostPort(v6.String())
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::1", host)
}
