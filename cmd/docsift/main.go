// Command docsift is a terminal document library with substring search.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docsift/internal/adapters/driving/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.SetServiceFactory(buildServices)

	// cobra has already printed the error.
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
