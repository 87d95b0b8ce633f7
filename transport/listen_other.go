//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package transport

import "net"

// listen falls back to the standard listener. Neither port reuse nor the backlog can be
// controlled here, the OS defaults apply.
func listen(addr string, _ int) (net.Listener, error) {
	l, err := net.Listen("tcp4", addr)
	if err != nil {
		return nil, &SocketSetupError{Op: "listen", Addr: addr, Err: err}
	}

	return l, nil
}
