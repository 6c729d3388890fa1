package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignIn(ctx context.Context, args []string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Sync(ctx context.Context) error
	Games(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Play(ctx context.Context, mode models.Mode) error
	Streaks(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first token of a line is the command, the rest are its arguments:
//
//	help                     show available commands
//	signin <id> [name]       sign in with an account id
//	register                 create a local account
//	login                    log in a local account
//	logout                   forget the signed-in user
//	whoami                   show the signed-in user
//	sync                     download the whole catalog
//	games [query]            list cached games, optionally filtered
//	show <id>                show one game
//	play keyword|compare     start a round
//	streaks                  show streaks of the signed-in user
//	exit | quit              leave the program
//
// Handler errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gg %s> ", statusFn()))
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
				printlnFn("Available commands: play keyword|compare, games [query], show <id>, streaks, sync, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signin <id> [name], register, login, play keyword|compare, games [query], show <id>, sync, exit")
			}

		case "signin":
			report(a.SignIn(ctx, args))

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "sync":
			report(a.Sync(ctx))

		case "games", "g":
			report(a.Games(ctx, args))

		case "show":
			report(a.Show(ctx, args))

		case "play":
			if len(args) != 1 {
				printlnFn("Usage: play keyword|compare")
				continue
			}
			mode, err := models.ParseMode(args[0])
			if err != nil {
				printlnFn("Usage: play keyword|compare")
				continue
			}
			report(a.Play(ctx, mode))

		case "streaks":
			report(a.Streaks(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
