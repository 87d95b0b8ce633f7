package transport

import (
	"errors"
	"net"
	"time"

	"github.com/indigo-web/minihttp/internal/logger"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// acceptRetryDelay keeps a worker from spinning when Accept keeps failing, e.g. because
// the process is out of file descriptors.
const acceptRetryDelay = 10 * time.Millisecond

type Listener interface {
	Accept() (net.Conn, error)
}

// OnConn serves a single connection. The pool closes the connection afterward.
type OnConn func(conn net.Conn)

// Spawn is called once per worker and returns the handler the worker will use for all
// of its connections. Whatever the handler captures is owned by that worker only.
type Spawn func() OnConn

// Pool is a fixed number of workers, each one accepting a connection, serving it and
// coming back for the next one. There's no queue between accepting and serving.
type Pool struct {
	l       Listener
	workers int
	spawn   Spawn
}

func NewPool(l Listener, workers int, spawn Spawn) *Pool {
	return &Pool{
		l:       l,
		workers: workers,
		spawn:   spawn,
	}
}

// Run blocks until the listener is closed and every worker is done with its current
// connection.
func (p *Pool) Run() {
	wg := conc.NewWaitGroup()

	for i := range p.workers {
		onConn := p.spawn()
		wg.Go(func() {
			p.work(i, onConn)
		})
	}

	wg.Wait()
}

func (p *Pool) work(id int, onConn OnConn) {
	for {
		conn, err := p.l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			logger.Warn("worker %d: accept: %s", id, err)
			time.Sleep(acceptRetryDelay)
			continue
		}

		serve(id, onConn, conn)
	}
}

func serve(id int, onConn OnConn, conn net.Conn) {
	var catcher panics.Catcher
	catcher.Try(func() {
		onConn(conn)
	})

	if recovered := catcher.Recovered(); recovered != nil {
		logger.Error("worker %d: panic while serving %s: %s", id, conn.RemoteAddr(), recovered.String())
	}

	_ = conn.Close()
}
