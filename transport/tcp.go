package transport

import (
	"net"
	"strconv"

	"github.com/indigo-web/minihttp/config"
)

// TCP owns the listening socket. Accept may be called from any number of goroutines at
// once, the kernel accept queue hands every connection to exactly one of them.
type TCP struct {
	l net.Listener
}

// Bind creates the socket with address and port reuse enabled, binds it and starts
// listening with the configured backlog.
func Bind(cfg config.NET) (*TCP, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	l, err := listen(addr, cfg.Backlog)
	if err != nil {
		return nil, err
	}

	return &TCP{l: l}, nil
}

func (t *TCP) Accept() (net.Conn, error) {
	return t.l.Accept()
}

func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Close stops the listener. Pending and further Accept calls fail with net.ErrClosed.
func (t *TCP) Close() error {
	return t.l.Close()
}
