package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb. Protected commands run only with a stored token.
type command struct {
	name      string
	usage     string
	protected bool
	run       func(ctx context.Context, args []string) error
}

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	commands() []command
	requireAuth(ctx context.Context) (bool, error)
	afterCommand(ctx context.Context, c command)
}

// runREPL starts a simple read–eval–print loop for the trip tracker CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to it. Besides the commands of a, it handles
// "help" and "exit" | "quit". The loop exits on EOF or exit.
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader, w io.Writer) {
	cmds := a.commands()
	byName := make(map[string]command, len(cmds))
	for _, c := range cmds {
		byName[c.name] = c
	}

	for {
		fmt.Fprintf(w, "tt %s> ", statusFn(ctx))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		eof := errors.Is(err, io.EOF)

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(w, cmds)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			c, ok := byName[name]
			if !ok {
				fmt.Fprintln(w, "Unknown command:", name)
				break
			}
			dispatch(ctx, a, c, args, w)
		}

		if eof {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, c command, args []string, w io.Writer) {
	defer a.afterCommand(ctx, c)

	if c.protected {
		ok, err := a.requireAuth(ctx)
		if err != nil {
			printError(w, err)
			return
		}
		if !ok {
			return
		}
	}
	if err := c.run(ctx, args); err != nil {
		printError(w, err)
	}
}

func printHelp(w io.Writer, cmds []command) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range cmds {
		fmt.Fprintln(w, "  "+c.usage)
	}
	fmt.Fprintln(w, "  help")
	fmt.Fprintln(w, "  exit | quit")
}
