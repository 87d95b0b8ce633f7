package server

import (
	"context"
	"errors"
	"net"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/buffer"
	"github.com/indigo-web/minihttp/internal/logger"
	"github.com/indigo-web/minihttp/internal/protocol/http1"
	"github.com/indigo-web/minihttp/transport"
)

// Handler defines the response to a parsed request. Returning an error means there's
// nothing to answer with.
type Handler interface {
	Handle(ctx context.Context, request *http.Request) (*http.Response, error)
}

// Server serves exactly one request per connection: the connection is closed as soon as
// the response is sent, or right away if the request can't be served.
type Server struct {
	ctx     context.Context
	cfg     *config.Config
	handler Handler
}

func New(ctx context.Context, cfg *config.Config, handler Handler) *Server {
	return &Server{
		ctx:     ctx,
		cfg:     cfg,
		handler: handler,
	}
}

// Spawn allocates the state of a single worker. The buffers are reused for every
// connection the worker serves, so the returned callback must not be shared.
func (s *Server) Spawn() transport.OnConn {
	var (
		readBuff   = make([]byte, s.cfg.NET.ReadBufferSize)
		head       = buffer.New(s.cfg.NET.ReadBufferSize, s.cfg.NET.MaxRequestSize)
		serializer = http1.NewSerializer(s.cfg.NET.ReadBufferSize)
		request    = new(http.Request)
	)

	return func(conn net.Conn) {
		head.Clear()
		client := transport.NewClient(conn, s.cfg.NET.ReadTimeout, s.cfg.NET.WriteTimeout, readBuff)
		s.Run(client, head, serializer, request)
	}
}

// Run carries out a single exchange. The connection isn't closed here.
func (s *Server) Run(client transport.Client, head *buffer.Buffer, serializer *http1.Serializer, request *http.Request) {
	data, err := http1.ReadHead(client, head)
	if err != nil {
		s.fail(client, serializer, err)
		return
	}

	if err = http1.Parse(data, request); err != nil {
		s.fail(client, serializer, err)
		return
	}

	response, err := s.handler.Handle(s.ctx, request)
	if err != nil {
		logger.Debug("%s %s from %s: %s", request.Method, request.Path, client.Remote(), err)
		s.fail(client, serializer, err)
		return
	}

	if err = serializer.Write(client, response); err != nil {
		logger.Debug("%s: write: %s", client.Remote(), err)
		return
	}

	logger.Debug("%s %s from %s: %d", request.Method, request.Path, client.Remote(), response.Status())
}

// fail answers the error only in strict mode, and only if the error has a status code
// attached. Otherwise the connection is just closed with nothing sent.
func (s *Server) fail(client transport.Client, serializer *http1.Serializer, err error) {
	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		logger.Debug("%s: %s", client.Remote(), err)
		return
	}

	if !s.cfg.HTTP.StrictResponses {
		logger.Debug("%s: %s, closing silently", client.Remote(), err)
		return
	}

	if err = serializer.Write(client, http.Error(httpErr)); err != nil {
		logger.Debug("%s: write: %s", client.Remote(), err)
	}
}
