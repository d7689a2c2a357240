package middleware

import (
	"bytes"
	"errors"
	"log"
	"net"
	"testing"

	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
	"httpmsg/internal/http/stream"
	"httpmsg/internal/http/uri"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRandom struct {
	mock.Mock
}

func (m *mockRandom) ID(length int) (string, error) {
	args := m.Called(length)
	return args.String(0), args.Error(1)
}

func newRequest(t *testing.T, pairs ...[2]string) *message.Request {
	t.Helper()
	u, err := uri.Parse("http://example.com/echo")
	require.NoError(t, err)
	headers, err := header.FromPairs(pairs...)
	require.NoError(t, err)
	req, err := message.NewRequest(message.MethodGet, u, headers, stream.Empty())
	require.NoError(t, err)
	return req
}

func newResponse(t *testing.T, pairs ...[2]string) *message.Response {
	t.Helper()
	headers, err := header.FromPairs(pairs...)
	require.NoError(t, err)
	resp, err := message.NewResponse(200, headers, stream.FromString("ok"))
	require.NoError(t, err)
	return resp
}

func TestForwardedFor(t *testing.T) {
	addr := &net.TCPAddr{IP: net.ParseIP("10.0.0.7"), Port: 51234}

	tests := []struct {
		name     string
		existing [][2]string
		expected string
	}{
		{name: "no prior hop", expected: "10.0.0.7"},
		{name: "appends to prior hop", existing: [][2]string{{"X-Forwarded-For", "203.0.113.5"}}, expected: "203.0.113.5, 10.0.0.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, tt.existing...)

			out, err := NewForwardedFor(addr).HandleRequest(req)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, out.HeaderMap().Value("x-forwarded-for"))
			assert.NotSame(t, req, out)
			assert.Equal(t, len(tt.existing) > 0, req.HeaderMap().Has("X-Forwarded-For"))
		})
	}
}

func TestForwardedForBadAddr(t *testing.T) {
	addr := &net.UnixAddr{Name: "/tmp/sock", Net: "unix"}

	_, err := NewForwardedFor(addr).HandleRequest(newRequest(t))
	assert.Error(t, err)
}

func TestRequestID(t *testing.T) {
	t.Run("assigns id when missing", func(t *testing.T) {
		r := new(mockRandom)
		r.On("ID", 16).Return("0123456789abcdef", nil)

		req := newRequest(t)
		out, err := NewRequestID(r, 16).HandleRequest(req)
		require.NoError(t, err)

		assert.Equal(t, "0123456789abcdef", out.HeaderMap().Value(string(header.XRequestID)))
		assert.False(t, req.HeaderMap().Has(string(header.XRequestID)))
		r.AssertExpectations(t)
	})

	t.Run("keeps existing id", func(t *testing.T) {
		r := new(mockRandom)

		req := newRequest(t, [2]string{"X-Request-Id", "abc"})
		out, err := NewRequestID(r, 16).HandleRequest(req)
		require.NoError(t, err)

		assert.Same(t, req, out)
		r.AssertNotCalled(t, "ID", mock.Anything)
	})

	t.Run("random failure", func(t *testing.T) {
		errEntropy := errors.New("entropy")
		r := new(mockRandom)
		r.On("ID", 8).Return("", errEntropy)

		_, err := NewRequestID(r, 8).HandleRequest(newRequest(t))
		assert.ErrorIs(t, err, errEntropy)
	})
}

func TestFingerprint(t *testing.T) {
	resp := newResponse(t, [2]string{"Server", "nginx"})

	out, err := NewFingerprint("httpmsg/1.0").HandleResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "httpmsg/1.0", out.HeaderMap().Value("server"))
	assert.Equal(t, "nginx", resp.HeaderMap().Value("server"))

	again, err := NewFingerprint("httpmsg/1.0").HandleResponse(out)
	require.NoError(t, err)
	assert.Same(t, out, again)
}

type failingRequest struct{ err error }

func (f failingRequest) HandleRequest(*message.Request) (*message.Request, error) {
	return nil, f.err
}

func TestApplyRequest(t *testing.T) {
	r := new(mockRandom)
	r.On("ID", 4).Return("beef", nil)
	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 80}

	out, err := ApplyRequest(newRequest(t), NewForwardedFor(addr), NewRequestID(r, 4))
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1", out.HeaderMap().Value("X-Forwarded-For"))
	assert.Equal(t, "beef", out.HeaderMap().Value("X-Request-Id"))

	errStop := errors.New("stop")
	_, err = ApplyRequest(newRequest(t), failingRequest{err: errStop}, NewForwardedFor(addr))
	assert.ErrorIs(t, err, errStop)
}

func TestApplyResponseNoMiddleware(t *testing.T) {
	resp := newResponse(t)
	out, err := ApplyResponse(resp)
	require.NoError(t, err)
	assert.Same(t, resp, out)
}

type failingResponse struct{ err error }

func (f failingResponse) HandleResponse(*message.Response) (*message.Response, error) {
	return nil, f.err
}

func TestApplyLogsFailuresAlike(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	}()

	errBoom := errors.New("boom")
	_, err := ApplyRequest(newRequest(t), failingRequest{err: errBoom})
	assert.ErrorIs(t, err, errBoom)
	_, err = ApplyResponse(newResponse(t), failingResponse{err: errBoom})
	assert.ErrorIs(t, err, errBoom)

	assert.Equal(t, "Error when applying request middleware: boom\n"+
		"Error when applying response middleware: boom\n", buf.String())
}
