package http

import (
	"errors"

	"github.com/indigo-web/minihttp/http/mime"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/utils/uf"
)

// Response is serialized in one go. Content-Type is emitted only if set, Content-Length
// only if a body was attached (even an empty one).
type Response struct {
	code        status.Code
	contentType mime.MIME
	body        []byte
	sized       bool
}

// NewResponse returns a bare 200 OK response without any headers.
func NewResponse() *Response {
	return &Response{
		code: status.OK,
	}
}

// Error returns a response for the error's status code with an empty sized body. Errors
// that aren't status.HTTPError are answered with 500.
func Error(err error) *Response {
	code := status.InternalServerError
	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	return NewResponse().Code(code).Bytes(nil)
}

// Code sets the response status code.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// ContentType sets the Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	r.contentType = value
	return r
}

// Bytes attaches the body. The slice isn't copied.
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	r.sized = true
	return r
}

// String attaches the body without copying it.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

func (r *Response) Status() status.Code {
	return r.code
}

func (r *Response) Type() mime.MIME {
	return r.contentType
}

func (r *Response) Body() []byte {
	return r.body
}

// Sized reports whether Content-Length must be emitted.
func (r *Response) Sized() bool {
	return r.sized
}
