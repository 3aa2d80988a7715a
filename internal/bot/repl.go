package bot

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
	isRunning() bool
	Start(ctx context.Context, target int) error
	Stop() error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Export(ctx context.Context, path string) error
}

// runREPL starts a simple read–eval–print loop for the bot CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	start [n]      — start a run of n accounts (default from config)
//	stop           — request a cooperative stop of the current run
//	status         — run state plus per-status account counts
//	list           — list stored accounts
//	delete <id>    — delete one account
//	clear          — delete all accounts
//	export [path]  — export accounts to CSV
//	help           — show available commands
//	exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bot> %s > ", statusFn()))
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
			printlnFn("Available commands: start [n], stop, status, (l)ist, delete <id>, clear, export [path], exit")

		case "start":
			target := 0
			if len(parts) > 1 {
				n, err := strconv.Atoi(parts[1])
				if err != nil || n < 1 {
					printlnFn("Usage: start [count], count must be a positive number")
					continue
				}
				target = n
			}
			_ = a.Start(ctx, target)

		case "stop":
			_ = a.Stop()

		case "status":
			_ = a.Status(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "delete":
			if len(parts) < 2 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, parts[1])

		case "clear":
			_ = a.Clear(ctx)

		case "export":
			path := ""
			if len(parts) > 1 {
				path = parts[1]
			}
			_ = a.Export(ctx, path)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
