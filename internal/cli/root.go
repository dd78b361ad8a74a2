package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// Run executes the CLI until the user exits, releasing the credential
// database on the way out.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoading() bool {
	return a.store.Loading()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.store.User(); u != nil {
		s = u.Name + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores any persisted session, starts the backend status watcher and
// hands control to the REPL. It returns when the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to HealthMate (type 'help' for commands)")

	a.store.Bootstrap(ctx)
	if u := a.store.User(); u != nil {
		printlnFn("Welcome back, " + u.Name + "!")
	}

	go func() {
		a.StartStatusWatcher(ctx, a.config.HealthCheckInterval)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
