package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/campushub/internal/client/guard"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Open(ctx context.Context, path string) error
	EditProfile(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// shortcuts maps view commands to their route.
var shortcuts = map[string]string{
	"dashboard": guard.DashboardPath,
	"apps":      guard.AppsPath,
	"webapps":   guard.WebAppsPath,
	"upload":    guard.UploadPath,
	"profile":   guard.ProfilePath,
}

// runREPL starts a simple read–eval–print loop for the CampusHub CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands:
//
//	help                     show available commands
//	login | signup | logout  session commands
//	open <path>              navigate to a route
//	dashboard | apps | webapps | upload | profile
//	edit-profile             change full name, date of birth and place
//	whoami                   print the session state
//	exit | quit              leave the program
//
// Errors returned by command handlers are ignored here; handlers report their
// own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("campushub %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, apps, webapps, upload, profile, edit-profile, open <path>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, open <path>, whoami, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "edit-profile":
			_ = a.EditProfile(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if path, ok := shortcuts[cmd]; ok {
				_ = a.Open(ctx, path)
				continue
			}
			printlnFn("Unknown command:", cmd)
		}
	}
}
