package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/stackagg/internal/app"
	"github.com/specialistvlad/stackagg/internal/cli"
	"github.com/specialistvlad/stackagg/internal/hcl_adapter"
)

// main is the entrypoint for the stackagg application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	stackagg, err := app.NewApp(outW, errW, appConfig, hcl_adapter.NewLoader())
	if err != nil {
		if errors.Is(err, app.ErrInvalidConfig) {
			return &cli.ExitError{Code: 2, Message: err.Error()}
		}
		return err
	}

	return stackagg.Run(ctx)
}
