package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/zurustar/brew/pkg/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	application := app.New(os.Stdin, os.Stdout, os.Stderr)
	err := application.Run(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
