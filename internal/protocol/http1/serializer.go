package http1

import (
	"strconv"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/transport"
)

const (
	protocol      = "HTTP/1.1 "
	contentType   = "Content-Type: "
	contentLength = "Content-Length: "
	crlf          = "\r\n"
)

// maxRetainedBuffSize limits how big a buffer is kept for the next response. Serving a
// large file makes the buffer grow, that memory is given back afterward.
const maxRetainedBuffSize = 64 * 1024

// Serializer renders responses into a single buffer, so every response costs one write.
// It's meant to be owned by a single worker.
type Serializer struct {
	buff        []byte
	initialSize int
}

func NewSerializer(initialSize int) *Serializer {
	return &Serializer{
		buff:        make([]byte, 0, initialSize),
		initialSize: initialSize,
	}
}

// Render returns the wire representation of the response. The result is valid until
// the next call.
func (s *Serializer) Render(response *http.Response) []byte {
	code := response.Status()
	buff := append(s.buff[:0], protocol...)
	buff = strconv.AppendUint(buff, uint64(code), 10)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(code)...)
	buff = append(buff, crlf...)

	if ct := response.Type(); len(ct) > 0 {
		buff = append(buff, contentType...)
		buff = append(buff, ct...)
		buff = append(buff, crlf...)
	}

	if response.Sized() {
		buff = append(buff, contentLength...)
		buff = strconv.AppendInt(buff, int64(len(response.Body())), 10)
		buff = append(buff, crlf...)
	}

	buff = append(buff, crlf...)
	buff = append(buff, response.Body()...)
	s.buff = buff

	return buff
}

// Write renders the response and sends it to the client at once.
func (s *Serializer) Write(client transport.Client, response *http.Response) error {
	err := client.Write(s.Render(response))
	if cap(s.buff) > maxRetainedBuffSize {
		s.buff = make([]byte, 0, s.initialSize)
	}

	return err
}
