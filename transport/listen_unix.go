//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package transport

import (
	"net"
	"os"

	"golang.org/x/sys/unix"
)

func listen(addr string, backlog int) (net.Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp4", addr)
	if err != nil {
		return nil, &SocketSetupError{Op: "resolve", Addr: addr, Err: err}
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, &SocketSetupError{Op: "socket", Addr: addr, Err: err}
	}

	unix.CloseOnExec(fd)

	fail := func(op string, err error) (net.Listener, error) {
		_ = unix.Close(fd)
		return nil, &SocketSetupError{Op: op, Addr: addr, Err: err}
	}

	for _, opt := range []int{unix.SO_REUSEADDR, unix.SO_REUSEPORT} {
		if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, opt, 1); err != nil {
			return fail("setsockopt", err)
		}
	}

	sockaddr := &unix.SockaddrInet4{Port: tcpAddr.Port}
	if ip4 := tcpAddr.IP.To4(); ip4 != nil {
		copy(sockaddr.Addr[:], ip4)
	}

	if err = unix.Bind(fd, sockaddr); err != nil {
		return fail("bind", err)
	}

	if err = unix.Listen(fd, backlog); err != nil {
		return fail("listen", err)
	}

	file := os.NewFile(uintptr(fd), "tcp:"+addr)
	// FileListener dups the descriptor, so ours is closed in any case
	l, err := net.FileListener(file)
	_ = file.Close()
	if err != nil {
		return nil, &SocketSetupError{Op: "listen", Addr: addr, Err: err}
	}

	return l, nil
}
