package transport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
	"httpmsg/internal/http/stream"
	"httpmsg/internal/http/uri"
)

var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrBodyTooLarge     = errors.New("request body too large")
)

func parseStartLine(startLine []byte) (method, target, version string, err error) {
	firstSpace := bytes.IndexByte(startLine, ' ')
	if firstSpace == -1 {
		return "", "", "", fmt.Errorf("%w: missing method", ErrMalformedRequest)
	}

	secondSpace := bytes.IndexByte(startLine[firstSpace+1:], ' ')
	if secondSpace == -1 {
		return "", "", "", fmt.Errorf("%w: missing version", ErrMalformedRequest)
	}
	secondSpace += firstSpace + 1

	method = string(startLine[:firstSpace])
	target = string(startLine[firstSpace+1 : secondSpace])
	version, ok := strings.CutPrefix(string(startLine[secondSpace+1:]), "HTTP/")
	if !ok || version == "" {
		return "", "", "", fmt.Errorf("%w: bad version %q", ErrMalformedRequest, startLine[secondSpace+1:])
	}

	return method, target, version, nil
}

// ReadRequest reads one HTTP/1.x request from br. The body is not read
// here; it is pulled from br on first use, bounded by Content-Length and
// limit. Origin-form targets are resolved against the Host header using
// scheme.
func ReadRequest(br *bufio.Reader, scheme uri.Scheme, limit int64, opts ...message.Option) (*message.Request, error) {
	startLine, err := br.ReadSlice('\n')
	if err != nil {
		return nil, err
	}

	rawMethod, target, version, err := parseStartLine(bytes.TrimRight(startLine, "\r\n"))
	if err != nil {
		return nil, err
	}

	method, err := message.ParseMethod(rawMethod)
	if err != nil {
		return nil, err
	}

	headers, err := header.Read(br)
	if err != nil {
		return nil, err
	}

	u, err := uri.FromTarget(scheme, headers.Value(string(header.Host)), target)
	if err != nil {
		return nil, err
	}

	if te := headers.Value(string(header.TransferEncoding)); te != "" && !strings.EqualFold(te, "identity") {
		return nil, fmt.Errorf("%w: unsupported transfer encoding %q", ErrMalformedRequest, te)
	}

	body, err := BodyFromLength(br, headers.Value(string(header.ContentLength)), limit)
	if err != nil {
		return nil, err
	}

	opts = append(opts, message.ProtocolVersion(version))
	return message.NewRequest(method, u, headers, body, opts...)
}

// BodyFromLength frames a body of rawLength bytes read lazily from r.
// An empty rawLength means no body.
func BodyFromLength(r io.Reader, rawLength string, limit int64) (stream.Stream, error) {
	if rawLength == "" {
		return stream.Empty(), nil
	}

	length, err := strconv.ParseInt(rawLength, 10, 64)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("%w: bad content length %q", ErrMalformedRequest, rawLength)
	}
	if length > limit {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrBodyTooLarge, length, limit)
	}
	if length == 0 {
		return stream.Empty(), nil
	}

	return stream.Lazy(func() (io.ReadCloser, error) {
		return io.NopCloser(io.LimitReader(r, length)), nil
	}, length), nil
}
