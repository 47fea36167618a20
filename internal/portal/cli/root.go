package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.current == nil {
		return ""
	}
	s := a.current.Name
	if a.current.Admin {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root runs the REPL until EOF or exit.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to campusdesk (type 'help' for commands)")

	for {
		line, err := a.readLine(fmt.Sprintf("cd %s> ", a.getStatus()))
		if err != nil {
			return
		}
		if line == "" {
			continue
		}

		cmd, args := splitCommand(line)

		switch cmd {
		case "help":
			a.printHelp()

		case "login":
			a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "notes":
			a.Notes(ctx, args)

		case "events":
			a.Events(ctx, args)

		case "announcements", "ann":
			a.Announcements(ctx, args)

		case "chat":
			a.Chat(ctx, args)

		case "groups":
			a.Groups(ctx, args)

		case "files":
			a.Files(ctx, args)

		case "profile":
			a.Profile(ctx)

		case "dashboard":
			a.Dashboard(ctx)

		case "admin":
			a.Admin(ctx, args)

		case "exit", "quit":
			return

		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

func (a *App) printHelp() {
	if !a.isLoggedIn() {
		fmt.Println("Available commands: login, exit")
		return
	}
	fmt.Println("Available commands: notes, events, announcements, chat, groups, files, profile, dashboard, logout, exit")
	if a.isAdmin() {
		fmt.Println("Admin commands: admin event|announce|material|quiz")
	}
}

func splitCommand(line string) (string, []string) {
	fields := make([]string, 0, 4)
	for _, f := range splitQuoted(line) {
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return "", nil
	}
	if len(fields) == 1 {
		return fields[0], nil
	}
	return fields[0], fields[1:]
}

// splitQuoted splits on spaces but keeps double-quoted substrings intact, so
// titles with spaces survive: notes add "Operating Systems" cs301.
func splitQuoted(line string) []string {
	var out []string
	var cur []rune
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ' ' && !quoted:
			out = append(out, string(cur))
			cur = cur[:0]
		default:
			cur = append(cur, r)
		}
	}
	out = append(out, string(cur))
	return out
}
