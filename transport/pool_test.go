package transport_test

import (
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/indigo-web/minihttp/transport"
	"github.com/indigo-web/minihttp/transport/dummy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenerMock hands out the connections it was given and then reports being closed.
type listenerMock struct {
	mu       sync.Mutex
	conns    []net.Conn
	failures int
}

func (l *listenerMock) Accept() (net.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failures > 0 {
		l.failures--
		return nil, &net.OpError{Op: "accept", Err: syscallLikeError("too many open files")}
	}

	if len(l.conns) == 0 {
		return nil, net.ErrClosed
	}

	conn := l.conns[0]
	l.conns = l.conns[1:]

	return conn, nil
}

type syscallLikeError string

func (s syscallLikeError) Error() string {
	return string(s)
}

func newConns(n int) []*dummy.Conn {
	conns := make([]*dummy.Conn, n)
	for i := range conns {
		conns[i] = dummy.NewConn([]byte("ping"))
	}

	return conns
}

func asNetConns(conns []*dummy.Conn) []net.Conn {
	netConns := make([]net.Conn, len(conns))
	for i, conn := range conns {
		netConns[i] = conn
	}

	return netConns
}

func runAtMost(t *testing.T, pool *transport.Pool, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		pool.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		require.Fail(t, "pool did not stop on time")
	}
}

func TestPool(t *testing.T) {
	t.Run("serves every connection and closes it", func(t *testing.T) {
		conns := newConns(25)
		var served atomic.Int32
		pool := transport.NewPool(&listenerMock{conns: asNetConns(conns)}, 4, func() transport.OnConn {
			buff := make([]byte, 16)
			return func(conn net.Conn) {
				n, _ := conn.Read(buff)
				_, _ = conn.Write(buff[:n])
				served.Add(1)
			}
		})

		runAtMost(t, pool, time.Second)
		require.Equal(t, int32(25), served.Load())

		for _, conn := range conns {
			require.True(t, conn.Closed())
			require.Equal(t, "ping", conn.Written())
		}
	})

	t.Run("spawns one handler per worker", func(t *testing.T) {
		var spawned atomic.Int32
		pool := transport.NewPool(&listenerMock{}, 10, func() transport.OnConn {
			spawned.Add(1)
			return func(net.Conn) {}
		})

		runAtMost(t, pool, time.Second)
		require.Equal(t, int32(10), spawned.Load())
	})

	t.Run("survives panics", func(t *testing.T) {
		conns := newConns(3)
		var calls atomic.Int32
		pool := transport.NewPool(&listenerMock{conns: asNetConns(conns)}, 1, func() transport.OnConn {
			return func(net.Conn) {
				if calls.Add(1) == 1 {
					panic("first connection goes wrong")
				}
			}
		})

		runAtMost(t, pool, time.Second)
		require.Equal(t, int32(3), calls.Load())
		for _, conn := range conns {
			require.True(t, conn.Closed())
		}
	})

	t.Run("keeps accepting after errors", func(t *testing.T) {
		conns := newConns(1)
		var served atomic.Int32
		pool := transport.NewPool(&listenerMock{conns: asNetConns(conns), failures: 2}, 1, func() transport.OnConn {
			return func(net.Conn) {
				served.Add(1)
			}
		})

		runAtMost(t, pool, time.Second)
		require.Equal(t, int32(1), served.Load())
	})
}

func TestPoolOverTCP(t *testing.T) {
	l, err := transport.Bind(localNET())
	require.NoError(t, err)

	pool := transport.NewPool(l, 10, func() transport.OnConn {
		buff := make([]byte, 64)
		return func(conn net.Conn) {
			n, _ := conn.Read(buff)
			_, _ = conn.Write(buff[:n])
		}
	})

	done := make(chan struct{})
	go func() {
		pool.Run()
		close(done)
	}()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, err := net.Dial("tcp", l.Addr().String())
			if !assert.NoError(t, err) {
				return
			}
			defer func() {
				_ = conn.Close()
			}()

			msg := []byte{'a' + byte(i)}
			_, err = conn.Write(msg)
			assert.NoError(t, err)

			reply := make([]byte, 8)
			n, err := conn.Read(reply)
			assert.NoError(t, err)
			assert.Equal(t, string(msg), string(reply[:n]))
		}()
	}

	wg.Wait()
	require.NoError(t, l.Close())

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "pool did not stop after the listener was closed")
	}
}
