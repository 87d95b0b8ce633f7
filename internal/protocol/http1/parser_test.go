package http1

import (
	"errors"
	"strings"
	"testing"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/buffer"
	"github.com/indigo-web/minihttp/transport/dummy"
	"github.com/stretchr/testify/require"
)

func splitIntoParts(req []byte, n int) (parts [][]byte) {
	for i := 0; i < len(req); i += n {
		end := min(i+n, len(req))
		parts = append(parts, req[i:end])
	}

	return parts
}

func TestReadHead(t *testing.T) {
	const request = "GET /echo/abc HTTP/1.1\r\nHost: localhost:4221\r\nUser-Agent: curl/8.4.0\r\n\r\n"

	t.Run("single read", func(t *testing.T) {
		client := dummy.NewMockClient([]byte(request))
		head, err := ReadHead(client, buffer.New(64, 1024))
		require.NoError(t, err)
		require.Equal(t, request, string(head))
	})

	t.Run("byte by byte", func(t *testing.T) {
		for _, n := range []int{1, 2, 3, 5, 7} {
			client := dummy.NewMockClient(splitIntoParts([]byte(request), n)...)
			head, err := ReadHead(client, buffer.New(16, 1024))
			require.NoError(t, err, n)
			require.Equal(t, request, string(head), n)
		}
	})

	t.Run("body is dropped", func(t *testing.T) {
		client := dummy.NewMockClient([]byte(request + "some body"))
		head, err := ReadHead(client, buffer.New(64, 1024))
		require.NoError(t, err)
		require.Equal(t, request, string(head))
	})

	t.Run("peer stops before the blank line", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET / HTTP/1.1\r\n"))
		head, err := ReadHead(client, buffer.New(64, 1024))
		require.NoError(t, err)
		require.Equal(t, "GET / HTTP/1.1\r\n", string(head))
	})

	t.Run("nothing received", func(t *testing.T) {
		_, err := ReadHead(dummy.NewMockClient(), buffer.New(64, 1024))
		require.ErrorIs(t, err, status.ErrEmptyRequest)
	})

	t.Run("too large", func(t *testing.T) {
		huge := "GET /" + strings.Repeat("a", 2048) + " HTTP/1.1\r\n\r\n"
		client := dummy.NewMockClient(splitIntoParts([]byte(huge), 100)...)
		_, err := ReadHead(client, buffer.New(64, 1024))
		require.ErrorIs(t, err, status.ErrRequestTooLarge)
	})

	t.Run("terminator exactly at the limit", func(t *testing.T) {
		client := dummy.NewMockClient([]byte(request))
		head, err := ReadHead(client, buffer.New(16, len(request)))
		require.NoError(t, err)
		require.Equal(t, request, string(head))
	})

	t.Run("network error", func(t *testing.T) {
		timeout := errors.New("i/o timeout")
		client := dummy.NewMockClient([]byte("GET / HT")).FailWith(timeout)
		_, err := ReadHead(client, buffer.New(16, 1024))
		require.ErrorIs(t, err, timeout)
	})
}

func TestParse(t *testing.T) {
	t.Run("start line and headers", func(t *testing.T) {
		request := new(http.Request)
		err := Parse([]byte("GET /files/foo HTTP/1.1\r\nUser-Agent: foobar/1.0\r\n\r\n"), request)
		require.NoError(t, err)
		require.Equal(t, "GET", request.Method)
		require.Equal(t, "/files/foo", request.Path)
		require.Equal(t, "HTTP/1.1", request.Proto)
		require.Equal(t, "User-Agent: foobar/1.0\r\n\r\n", string(request.RawHeaders))

		ua, found := request.Header("User-Agent")
		require.True(t, found)
		require.Equal(t, "foobar/1.0", ua)
	})

	t.Run("any method", func(t *testing.T) {
		request := new(http.Request)
		require.NoError(t, Parse([]byte("BREW / HTCPCP/1.0\r\n\r\n"), request))
		require.Equal(t, "BREW", request.Method)
		require.Equal(t, "HTCPCP/1.0", request.Proto)
	})

	t.Run("extra whitespace between tokens", func(t *testing.T) {
		request := new(http.Request)
		require.NoError(t, Parse([]byte("GET  \t/  HTTP/1.1\r\n\r\n"), request))
		require.Equal(t, "/", request.Path)
	})

	t.Run("start line only", func(t *testing.T) {
		request := new(http.Request)
		require.NoError(t, Parse([]byte("GET / HTTP/1.1\r"), request))
		require.Empty(t, request.RawHeaders)
	})

	for _, tc := range []struct {
		Name, Head string
	}{
		{"no carriage return", "GET / HTTP/1.1\n\n"},
		{"empty", ""},
		{"two tokens", "GET /\r\n\r\n"},
		{"four tokens", "GET /a b HTTP/1.1\r\n\r\n"},
		{"blank start line", "\r\n\r\n"},
		{"too long method", strings.Repeat("G", maxMethodLength+1) + " / HTTP/1.1\r\n\r\n"},
		{"too long protocol", "GET / HTTP/" + strings.Repeat("1", maxProtoLength) + "\r\n\r\n"},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			err := Parse([]byte(tc.Head), new(http.Request))
			require.ErrorIs(t, err, status.ErrMalformedRequest)
		})
	}
}
