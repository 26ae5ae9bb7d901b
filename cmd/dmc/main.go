// Package main is the entry point for the dmc build driver.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/dmc/cmd/dmc/commands"
	"go.trai.ch/dmc/internal/app"
	_ "go.trai.ch/dmc/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// No logger without components.
		_, _ = os.Stderr.WriteString("dmc: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Close() }()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
