package http1

import (
	"bytes"
	"errors"
	"io"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/buffer"
	"github.com/indigo-web/minihttp/transport"
	"github.com/indigo-web/utils/uf"
)

// Limits of the start line tokens, the path is limited only by the whole head.
const (
	maxMethodLength = 16
	maxProtoLength  = 16
)

var headTerminator = []byte("\r\n\r\n")

// ReadHead reads from the client until the blank line terminating the headers shows up.
// Everything past the terminator is dropped, as bodies are never consumed. If the peer
// stops sending before the terminator, whatever was received so far is returned, so a
// request cut right after its start line is still served. Heads not fitting into buff
// fail with status.ErrRequestTooLarge.
func ReadHead(client transport.Client, buff *buffer.Buffer) ([]byte, error) {
	for {
		data, err := client.Read()
		if len(data) > 0 {
			// the terminator might lie on the previous read's edge
			from := max(buff.Len()-len(headTerminator)+1, 0)
			fits := buff.Append(data)

			if end := bytes.Index(buff.Bytes()[from:], headTerminator); end != -1 {
				return buff.Bytes()[:from+end+len(headTerminator)], nil
			}

			if !fits {
				return nil, status.ErrRequestTooLarge
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}

			if buff.Len() == 0 {
				return nil, status.ErrEmptyRequest
			}

			return buff.Bytes(), nil
		}
	}
}

// Parse fills the request from a raw head. The start line runs until the first CR and
// must consist of exactly three whitespace-separated tokens: method, path and protocol.
// Headers are left unparsed. The request points into head afterward.
func Parse(head []byte, request *http.Request) error {
	cr := bytes.IndexByte(head, '\r')
	if cr == -1 {
		return status.ErrMalformedRequest
	}

	tokens := bytes.Fields(head[:cr])
	if len(tokens) != 3 {
		return status.ErrMalformedRequest
	}

	method, path, proto := tokens[0], tokens[1], tokens[2]
	if len(method) > maxMethodLength || len(proto) > maxProtoLength {
		return status.ErrMalformedRequest
	}

	headers := head[cr+1:]
	if len(headers) > 0 && headers[0] == '\n' {
		headers = headers[1:]
	}

	request.Reset(uf.B2S(method), uf.B2S(path), uf.B2S(proto), headers)

	return nil
}
