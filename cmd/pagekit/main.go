// Command pagekit browses and pages through record datasets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/pagekit/internal/cli"
	"github.com/rshade/pagekit/pkg/version"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.String())
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
