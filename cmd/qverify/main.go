package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/theapemachine/qverify/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := app.RunContext(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}
