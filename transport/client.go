package transport

import (
	"net"
	"time"
)

type Client interface {
	Read() ([]byte, error)
	Write([]byte) error
	Remote() net.Addr
	Conn() net.Conn
}

type client struct {
	conn                      net.Conn
	buff                      []byte
	readTimeout, writeTimeout time.Duration
}

// NewClient wraps the connection. The buff is used for every read and is thereby owned by
// the client until the connection is done. Zero timeouts disable deadlines.
func NewClient(conn net.Conn, readTimeout, writeTimeout time.Duration, buff []byte) Client {
	return &client{
		conn:         conn,
		buff:         buff,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The piece is
// valid until the next call.
func (c *client) Read() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Write sends b in full or fails.
func (c *client) Write(b []byte) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}

	_, err := c.conn.Write(b)
	return err
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Conn unwraps the underlying net.Conn.
func (c *client) Conn() net.Conn {
	return c.conn
}
