package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/epic-events/epic-crm/cmd/epiccrm/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
