package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/fx"
)

const (
	exitOK = iota
	exitStartFailed
	exitStopFailed
)

// runner is the part of *fx.App that run drives.
type runner interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Wait() <-chan fx.ShutdownSignal
	StopTimeout() time.Duration
}

// run starts the app, waits for a signal or an fx shutdown and stops it
// within the app's stop timeout. It returns the process exit code.
func run(ctx context.Context, app runner, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "ordermart: failed to start: %v\n", err)
		return exitStartFailed
	}

	code := exitOK
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		fmt.Fprintf(stderr, "ordermart: shutting down on %v\n", sig.Signal)
		code = sig.ExitCode
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "ordermart: failed to stop: %v\n", err)
		return exitStopFailed
	}
	return code
}
