package cli

import (
	"context"
	"time"
)

// Status probes the backend health endpoint on demand and reports the
// result, updating the prompt marker as a side effect.
func (a *App) Status(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.health.Health(probeCtx); err != nil {
		a.setMode(ModeOffline)
		printlnFn("Backend unreachable: " + err.Error())
		return nil
	}

	a.setMode(ModeOnline)
	printlnFn("Backend is reachable.")
	return nil
}
