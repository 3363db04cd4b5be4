// Command web serves the notes UI. It talks to the API at NOTES_API_URL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/notes-app/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWeb(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "notes web: %v\n", err)
		stop()
		os.Exit(1)
	}
}
