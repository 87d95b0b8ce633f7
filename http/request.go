package http

import (
	"bytes"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Request represents a parsed HTTP request head. All the strings point into the
// connection's read buffer, so a Request must not outlive the exchange it came from.
type Request struct {
	// Method is taken as is and never checked.
	Method string
	// Path is the raw request target, query included if any.
	Path string
	// Proto is the protocol token of the start line, e.g. HTTP/1.1.
	Proto string
	// RawHeaders is the header block following the start line, unparsed.
	RawHeaders []byte
}

// Reset overrides all the fields at once.
func (r *Request) Reset(method, path, proto string, rawHeaders []byte) {
	r.Method = method
	r.Path = path
	r.Proto = proto
	r.RawHeaders = rawHeaders
}

// Header scans the raw header block for the first field named key (case-insensitively)
// and returns its value with leading whitespace trimmed. The value ends at the next CR.
func (r *Request) Header(key string) (value string, found bool) {
	block := r.RawHeaders

	for len(block) > 0 {
		line := block
		if cr := bytes.IndexByte(block, '\r'); cr != -1 {
			line, block = block[:cr], block[cr+1:]
			if len(block) > 0 && block[0] == '\n' {
				block = block[1:]
			}
		} else {
			block = nil
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 || !strcomp.EqualFold(uf.B2S(line[:colon]), key) {
			continue
		}

		return strings.TrimLeft(uf.B2S(line[colon+1:]), " \t"), true
	}

	return "", false
}
