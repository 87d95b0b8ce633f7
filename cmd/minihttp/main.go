package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/indigo-web/minihttp"
	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := config.Flags()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	path, err := flags.GetString("config")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, err := config.Load(path, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger.SetLevel(cfg.Logging.Level)
	logger.SetFormat(cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = minihttp.New(cfg).Serve(ctx); !errors.Is(err, minihttp.ErrShutdown) {
		logger.Error("%s", err)
		return 1
	}

	return 0
}
