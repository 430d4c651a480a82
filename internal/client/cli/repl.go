package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: (l)ist [text] [-s status] [-p priority], add, edit <n>, " +
		"done <n>, status <n> <status>, delete <n>, stats, profile, editprofile, avatar <file>, logout, exit"
)

// runREPL reads one command per line from scanner and dispatches it to a.
// The prompt shows statusFn. The loop ends on EOF, "exit" or "quit".
//
// Commands that need a session answer "Please log in first" when nobody is
// signed in. Handler errors are printed; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "logout", "l", "list", "add", "edit", "done", "status", "delete", "rm",
			"stats", "profile", "editprofile", "avatar":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			err = dispatchSignedIn(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatchSignedIn(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "l", "list":
		return a.List(ctx, args)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "done":
		return a.SetStatus(ctx, append(args[:len(args):len(args)], "done"))
	case "status":
		return a.SetStatus(ctx, args)
	case "delete", "rm":
		return a.Delete(ctx, args)
	case "stats":
		return a.Stats(ctx)
	case "profile":
		return a.Profile(ctx)
	case "editprofile":
		return a.EditProfile(ctx)
	case "avatar":
		return a.Avatar(ctx, args)
	}
	return nil
}
