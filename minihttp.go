package minihttp

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/internal/logger"
	"github.com/indigo-web/minihttp/internal/server"
	"github.com/indigo-web/minihttp/router"
	"github.com/indigo-web/minihttp/transport"
)

// ErrShutdown is returned by Serve once the server was stopped.
var ErrShutdown = errors.New("server is shut down")

// App ties together the blob store, the listener and the worker pool.
type App struct {
	cfg   *config.Config
	hooks hooks

	mu       sync.Mutex
	listener *transport.TCP
	stopped  bool
}

// New returns a new App instance. The config must not be changed afterward.
func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// NotifyOnStart calls the callback once the socket is listening and the workers are
// started. Connections may be made from then on.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback once all the workers are done and the blob store is
// closed.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve blocks until Stop is called or the context is done, and returns ErrShutdown
// then. Failing to open the blob store or to set up the socket is returned right away.
func (a *App) Serve(ctx context.Context) error {
	files, err := openStore(ctx, a.cfg.Files)
	if err != nil {
		return err
	}

	defer func() {
		if err := files.Close(); err != nil {
			logger.Warn("closing blob store: %s", err)
		}
	}()

	tcp, err := transport.Bind(a.cfg.NET)
	if err != nil {
		return err
	}

	if !a.setListener(tcp) {
		_ = tcp.Close()
		return ErrShutdown
	}

	logger.Info("config: %s", a.cfg)
	logger.Info("listening on %s, %d workers", tcp.Addr(), a.cfg.NET.Workers)

	srv := server.New(ctx, a.cfg, router.New(files))
	pool := transport.NewPool(tcp, a.cfg.NET.Workers, srv.Spawn)
	done := make(chan struct{})
	go func() {
		pool.Run()
		close(done)
	}()

	callIfNotNil(a.hooks.OnStart)

	select {
	case <-ctx.Done():
		a.Stop()
		<-done
	case <-done:
	}

	logger.Info("server is stopped")
	callIfNotNil(a.hooks.OnStop)

	return ErrShutdown
}

// Stop closes the listener. Connections being served at the moment are finished first.
// The call doesn't wait for that, Serve returns once it's done.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.listener != nil {
		if err := a.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Warn("closing listener: %s", err)
		}
	}
}

// Addr returns the address being listened on, or nil if not listening yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.listener == nil {
		return nil
	}

	return a.listener.Addr()
}

func (a *App) setListener(tcp *transport.TCP) (ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return false
	}

	a.listener = tcp
	return true
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
