package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
)

const stopTimeout = 15 * time.Second

// run starts app and blocks until ctx is cancelled or the app asks to shut
// down. A non-zero exit code from the app is reported as an error.
func run(ctx context.Context, app *fx.App, timeout time.Duration) error {
	if err := app.Err(); err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	exitCode := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		exitCode = sig.ExitCode
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop application: %w", err)
	}
	if exitCode != 0 {
		return fmt.Errorf("application exited with code %d", exitCode)
	}
	return nil
}
