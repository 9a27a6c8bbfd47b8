package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GoogleLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	Tours(ctx context.Context) error
	TourDetail(ctx context.Context, id int64) error
	Countries(ctx context.Context) error
	Destinations(ctx context.Context) error
	OpenProtected(ctx context.Context, view string) error
}

// runREPL starts a simple read–eval–print loop for the SevenTour CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Browsing commands (tours, tour <id>, countries, destinations) work for
// everyone. Account commands (whoami, photo) are restricted: when the user
// is not logged in they are routed through the login flow first, and the
// requested view opens automatically after a successful login.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("seventour %s> ", statusFn()))
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

		switch cmd {
		case "help":
			printlnFn("Browse: (t)ours, tour <id>, countries, destinations")
			if a.isLoggedIn() {
				printlnFn("Account: whoami, photo, logout, exit")
			} else {
				printlnFn("Account: register, login, google, whoami, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "google":
			_ = a.GoogleLogin(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "t", "tours":
			_ = a.Tours(ctx)

		case "tour":
			if len(args) == 0 {
				printlnFn("Usage: tour <id>")
				continue
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				printlnFn("Usage: tour <id>")
				continue
			}
			_ = a.TourDetail(ctx, id)

		case "countries":
			_ = a.Countries(ctx)

		case "destinations":
			_ = a.Destinations(ctx)

		case "whoami", "photo":
			_ = a.OpenProtected(ctx, cmd)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
