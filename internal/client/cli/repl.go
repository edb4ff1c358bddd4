package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	SetField(ctx context.Context, name, value string) error
	AttachPicture(ctx context.Context, path string) error
	UploadStatus(ctx context.Context) error
	Submit(ctx context.Context) error
	Discard(ctx context.Context) error
	ListUsers(ctx context.Context) error
	SearchUsers(ctx context.Context, term string) error
	DeleteUser(ctx context.Context, id string) error
	AddUser(ctx context.Context) error
	Navigate(route string) error
	ShowNav() error
}

// runREPL starts a simple read-eval-print loop for the UMS client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help               — show available commands
//	  - login              — authenticate
//	  - go <route> | nav   — navigate / show visible links
//	  - exit | quit        — leave the program
//
//	Signed in:
//	  - help               — show available commands
//	  - profile            — show the profile as it will be submitted
//	  - set <field> <v>    — stage a profile field edit
//	  - picture <path>     — upload a new profile picture
//	  - status             — show upload progress
//	  - submit             — submit the staged profile changes
//	  - discard            — drop the staged changes
//	  - users              — list all users (admin)
//	  - search <term>      — filter users by username or email (admin)
//	  - del <id>           — delete a user (admin)
//	  - adduser            — create a user (admin)
//	  - go <route> | nav   — navigate / show visible links
//	  - logout             — sign out (shown on the dashboard route only)
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ums %s > ", statusFn()))
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
			if a.isSignedIn() {
				printlnFn("Available commands: profile, set, picture, status, submit, discard, users, search, del, adduser, go, nav, logout, exit")
			} else {
				printlnFn("Available commands: login, go, nav, exit")
			}

		case "login":
			_ = a.SignIn(ctx)

		case "logout", "signout":
			_ = a.SignOut(ctx)

		case "profile":
			_ = a.ShowProfile(ctx)

		case "set":
			if len(args) < 2 {
				printlnFn("Usage: set <field> <value>")
				continue
			}
			_ = a.SetField(ctx, args[0], strings.Join(args[1:], " "))

		case "picture":
			if len(args) == 0 {
				printlnFn("Usage: picture <path>")
				continue
			}
			_ = a.AttachPicture(ctx, args[0])

		case "status":
			_ = a.UploadStatus(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "discard":
			_ = a.Discard(ctx)

		case "users":
			_ = a.ListUsers(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <term>")
				continue
			}
			_ = a.SearchUsers(ctx, strings.Join(args, " "))

		case "del":
			if len(args) == 0 {
				printlnFn("Usage: del <id>")
				continue
			}
			_ = a.DeleteUser(ctx, args[0])

		case "adduser":
			_ = a.AddUser(ctx)

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <route>")
				continue
			}
			_ = a.Navigate(args[0])

		case "nav":
			_ = a.ShowNav()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
