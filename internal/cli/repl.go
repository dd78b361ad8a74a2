package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isLoading() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Upload(ctx context.Context) error
	Reports(ctx context.Context) error
	ShowReport(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	DeleteReport(ctx context.Context, args []string) error
	Analyze(ctx context.Context, args []string) error
	AddVitals(ctx context.Context) error
	Vitals(ctx context.Context) error
	EditVitals(ctx context.Context, args []string) error
	DeleteVitals(ctx context.Context, args []string) error
	VitalsStats(ctx context.Context) error
	Timeline(ctx context.Context) error
	Family(ctx context.Context) error
	AddFamily(ctx context.Context) error
	EditFamily(ctx context.Context, args []string) error
	DeleteFamily(ctx context.Context, args []string) error
	FamilySummary(ctx context.Context, args []string) error
	Assistant(ctx context.Context) error
	Status(ctx context.Context) error
}

// protected lists the commands that require an authenticated session.
// Everything else is reachable anonymously.
var protected = map[string]bool{
	"logout": true, "profile": true, "dashboard": true,
	"upload": true, "reports": true, "show": true, "download": true, "delreport": true, "analyze": true,
	"addvitals": true, "vitals": true, "editvitals": true, "delvitals": true, "stats": true,
	"timeline": true,
	"family":   true, "addfamily": true, "editfamily": true, "delfamily": true, "summary": true,
	"assistant": true,
}

const helpAnonymous = "Available commands: register, login, status, exit"

const helpAuthenticated = `Available commands:
  dashboard            overview of reports, vitals and family
  upload               upload a medical report for analysis
  reports              list reports   | show <id> | download <id> | analyze <id> | delreport <id>
  addvitals            record vitals  | vitals | editvitals <id> | delvitals <id> | stats
  timeline             chronological health feed
  family               family members | addfamily | editfamily <id> | delfamily <id> | summary <id>
  assistant            ask the health assistant
  profile, status, logout, exit`

// runREPL starts the read-eval-print loop for the HealthMate CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Commands in the protected set
// are gated on the session: while the session is still being restored the
// command is held back, and without an authenticated session the user is sent
// to the login screen instead, mirroring a route guard.
//
// Errors returned by command handlers are ignored here; handlers print their
// own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if protected[cmd] {
			if a.isLoading() {
				printlnFn("Restoring your session, please try again in a moment.")
				continue
			}
			if !a.isLoggedIn() {
				printlnFn("Please log in first.")
				_ = a.Login(ctx)
				continue
			}
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpAuthenticated)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "reports":
			_ = a.Reports(ctx)

		case "show":
			_ = a.ShowReport(ctx, args)

		case "download":
			_ = a.Download(ctx, args)

		case "delreport":
			_ = a.DeleteReport(ctx, args)

		case "analyze":
			_ = a.Analyze(ctx, args)

		case "addvitals":
			_ = a.AddVitals(ctx)

		case "vitals":
			_ = a.Vitals(ctx)

		case "editvitals":
			_ = a.EditVitals(ctx, args)

		case "delvitals":
			_ = a.DeleteVitals(ctx, args)

		case "stats":
			_ = a.VitalsStats(ctx)

		case "timeline":
			_ = a.Timeline(ctx)

		case "family":
			_ = a.Family(ctx)

		case "addfamily":
			_ = a.AddFamily(ctx)

		case "editfamily":
			_ = a.EditFamily(ctx, args)

		case "delfamily":
			_ = a.DeleteFamily(ctx, args)

		case "summary":
			_ = a.FamilySummary(ctx, args)

		case "assistant":
			_ = a.Assistant(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
