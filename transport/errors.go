package transport

import "fmt"

// SocketSetupError reports which step of preparing the listening socket failed.
type SocketSetupError struct {
	// Op is one of resolve, socket, setsockopt, bind, listen.
	Op   string
	Addr string
	Err  error
}

func (s *SocketSetupError) Error() string {
	return fmt.Sprintf("%s %s: %v", s.Op, s.Addr, s.Err)
}

func (s *SocketSetupError) Unwrap() error {
	return s.Err
}
