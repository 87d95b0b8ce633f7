package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/minihttp/transport"
)

var _ transport.Client = new(Client)

// Client returns the pieces it was initialised with, one per read, and io.EOF
// afterward, unless set to loop. It also tracks all the written data.
type Client struct {
	data    [][]byte
	pointer int
	loop    bool
	err     error
	written []byte
	writes  int
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data: data,
		err:  io.EOF,
	}
}

func (c *Client) Read() ([]byte, error) {
	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			return nil, c.err
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Write(p []byte) error {
	c.written = append(c.written, p...)
	c.writes++
	return nil
}

func (c *Client) Conn() net.Conn {
	return new(Conn)
}

func (*Client) Remote() net.Addr {
	return nil
}

// LoopReads makes the client start over once all the pieces are read.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// FailWith replaces io.EOF returned once the pieces are exhausted.
func (c *Client) FailWith(err error) *Client {
	c.err = err
	return c
}

func (c *Client) Written() string {
	return string(c.written)
}

// Writes returns how many times Write was called.
func (c *Client) Writes() int {
	return c.writes
}
