package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/bioqr/bioqr-go/internal/client"
	"github.com/bioqr/bioqr-go/internal/client/cli"
	"github.com/bioqr/bioqr-go/internal/client/guard"
	"github.com/bioqr/bioqr-go/internal/client/tokenstore"
)

func main() {
	_ = godotenv.Load()

	api, err := client.New(os.Getenv("BIOQR_API_URL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	store, err := tokenstore.New(os.Getenv("BIOQR_TOKEN_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp(api, store, guard.New(store), os.Stdin, os.Stdout)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
