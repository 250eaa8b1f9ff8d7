package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Lang(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Docs(ctx context.Context) error
	Ask(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The first token is the command and the rest are its arguments. Handlers
// report their own failures, so their errors do not stop the loop. The loop
// ends on EOF, "exit"/"quit" or when ctx is done.
//
//	Not logged in: help, register, login, exit
//	Logged in:     help, upload <path>..., docs, ask [question], history,
//	               lang <language>, stats, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "docqa%s> ", prefixed(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
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
				fmt.Fprintln(w, "Available commands: upload <path>..., docs, ask [question], history, lang <language>, stats, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "lang":
			_ = a.Lang(ctx, args)

		case "upload":
			_ = a.Upload(ctx, args)

		case "docs", "ls":
			_ = a.Docs(ctx)

		case "ask":
			_ = a.Ask(ctx, args)

		case "history":
			_ = a.History(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func prefixed(status string) string {
	if status == "" {
		return ""
	}
	return " " + status
}
