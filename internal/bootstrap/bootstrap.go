package bootstrap

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net/http"

	"httpmsg/internal/cgi"
	"httpmsg/internal/config"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/message"
	"httpmsg/internal/http/uri"
	"httpmsg/internal/middleware"
	"httpmsg/internal/random"
	"httpmsg/internal/transport"
	"httpmsg/types"
)

type Bootstrap struct {
	Randomizer random.Random
	Config     config.Config
	Env        cgi.Environment
	Stdin      io.Reader
	Stdout     io.Writer
}

func New(config config.Config, env cgi.Environment, stdin io.Reader, stdout io.Writer) *Bootstrap {
	return &Bootstrap{
		Randomizer: random.New(),
		Config:     config,
		Env:        env,
		Stdin:      stdin,
		Stdout:     stdout,
	}
}

func (b *Bootstrap) sender() message.Sender {
	if b.Config.Mode() == types.OutputModeHTTP {
		return transport.NewWriter(b.Stdout)
	}
	return transport.NewCGIWriter(b.Stdout)
}

func (b *Bootstrap) readRequest() (*message.Request, error) {
	opts := []message.Option{message.InferHost(b.Config.InferHost())}

	if b.Config.Mode() == types.OutputModeHTTP {
		return transport.ReadRequest(bufio.NewReader(b.Stdin), uri.SchemeHTTP, b.Config.MaxBodySize(), opts...)
	}
	return cgi.FromEnvironment(b.Env, b.Stdin, b.Config.MaxBodySize(), opts...)
}

func (b *Bootstrap) requestMiddlewares() []middleware.RequestMiddleware {
	var mws []middleware.RequestMiddleware
	if addr := b.Env.RemoteAddr(); b.Config.ForwardedFor() && addr != nil {
		mws = append(mws, middleware.NewForwardedFor(addr))
	}
	if b.Config.RequestIDLength() > 0 {
		mws = append(mws, middleware.NewRequestID(b.Randomizer, b.Config.RequestIDLength()))
	}
	return mws
}

func (b *Bootstrap) respond(resp *message.Response) error {
	resp, err := middleware.ApplyResponse(resp, middleware.NewFingerprint(b.Config.ServerName()))
	if err != nil {
		return err
	}
	return resp.WithProtocolVersion(b.Config.ProtocolVersion()).Send(b.sender())
}

func (b *Bootstrap) fail(status int, cause error) error {
	resp, err := message.NewResponse(status, header.NewMap(), nil)
	if err != nil {
		return err
	}
	resp, err = resp.WithContent(fmt.Sprintf("%d %s\n", status, http.StatusText(status)), b.Config.DefaultContentType())
	if err != nil {
		return err
	}
	if err = b.respond(resp); err != nil {
		return err
	}
	return cause
}

// Run answers exactly one request. A request that cannot be read is still
// answered with 400 and the read error is returned.
func (b *Bootstrap) Run() error {
	req, err := b.readRequest()
	if err != nil {
		log.Printf("Error reading request: %v", err)
		return b.fail(http.StatusBadRequest, err)
	}

	req, err = middleware.ApplyRequest(req, b.requestMiddlewares()...)
	if err != nil {
		return b.fail(http.StatusInternalServerError, err)
	}

	resp, err := Echo(req, b.Config.DefaultContentType())
	if err != nil {
		log.Printf("Error building response: %v", err)
		return b.fail(http.StatusInternalServerError, err)
	}

	return b.respond(resp)
}
