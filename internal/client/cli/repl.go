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
	Logout(ctx context.Context) error
	Generate(ctx context.Context, count int) error
	List(ctx context.Context) error
	Current(ctx context.Context) error
	Next(ctx context.Context) error
	Reset(ctx context.Context) error
	Export(ctx context.Context) error
	Archives(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the machine CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - generate [n]   — generate n credential pairs (default 1)
//	  - list           — list generated accounts
//	  - current        — show the account under the cursor
//	  - next           — step the cursor to the next account
//	  - export         — upload the account list as a CSV archive
//	  - archives       — list uploaded archives
//	  - reset          — delete all accounts and restart the game
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("acm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: generate [n], (l)ist, current, (n)ext, export, archives, reset, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "generate":
			count := 1
			if len(parts) > 1 {
				n, err := strconv.Atoi(parts[1])
				if err != nil || n < 1 {
					printlnFn("Usage: generate [count], count must be a positive number")
					continue
				}
				count = n
			}
			_ = a.Generate(ctx, count)

		case "l", "list":
			_ = a.List(ctx)

		case "current":
			_ = a.Current(ctx)

		case "n", "next":
			_ = a.Next(ctx)

		case "export":
			_ = a.Export(ctx)

		case "archives":
			_ = a.Archives(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
