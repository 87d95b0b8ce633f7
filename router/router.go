package router

import (
	"context"
	"errors"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/mime"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/logger"
	"github.com/indigo-web/minihttp/store"
)

const userAgent = "User-Agent"

// Router turns a request into a response. It holds no per-request state and can be
// shared by all the workers.
type Router struct {
	files store.Store
}

func New(files store.Store) *Router {
	return &Router{files: files}
}

// Handle returns the response for the request. An error means no response could be
// defined for it, currently only status.ErrHeaderNotFound for /user-agent without the
// header. The request method is never looked at.
func (r *Router) Handle(ctx context.Context, request *http.Request) (*http.Response, error) {
	route, arg := Decide(request.Path)

	switch route {
	case Root:
		return http.NewResponse(), nil
	case Echo:
		return http.NewResponse().ContentType(mime.Plain).String(arg), nil
	case UserAgent:
		value, found := request.Header(userAgent)
		if !found {
			return nil, status.ErrHeaderNotFound
		}

		return http.NewResponse().ContentType(mime.Plain).String(value), nil
	case Files:
		return r.file(ctx, arg), nil
	default:
		return notFound(), nil
	}
}

func (r *Router) file(ctx context.Context, name string) *http.Response {
	content, err := r.files.Read(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidName):
			logger.Warn("rejected file name %q", name)
		case !errors.Is(err, store.ErrNotFound):
			logger.Warn("reading %q: %s", name, err)
		}

		return notFound()
	}

	return http.NewResponse().ContentType(mime.OctetStream).Bytes(content)
}

func notFound() *http.Response {
	return http.NewResponse().Code(status.NotFound).Bytes(nil)
}
