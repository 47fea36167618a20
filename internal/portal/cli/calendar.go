package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// Events dispatches the calendar subcommands:
//
//	events                                  — list merged state
//	events add <title> <date> <time> <type> — create a personal event
//	events rm <id>                          — delete a personal event
func (a *App) Events(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	if len(args) == 0 {
		for _, e := range a.events.List(ctx) {
			origin := "user"
			if e.IsAdminOrigin() {
				origin = "admin"
			}
			fmt.Printf("%s  %s %s  %-14s %-6s %s\n", e.ID, e.Date, e.Time, e.Type, origin, e.Title)
		}
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 5 {
			fmt.Println("usage: events add <title> <date YYYY-MM-DD> <time HH:mm> <type>")
			return
		}
		e := models.Event{
			Title: args[1], Date: args[2], Time: args[3],
			Type: models.EventType(args[4]),
		}
		created, err := a.events.CreateUserEvent(ctx, e)
		if err != nil {
			fmt.Printf("save failed: %v\n", err)
			return
		}
		_ = a.profile.RecordActivity(ctx, "event created", created.Title)
		fmt.Printf("saved %s\n", created.ID)

	case "rm":
		if len(args) < 2 {
			fmt.Println("usage: events rm <id>")
			return
		}
		if err := a.events.DeleteUserEvent(ctx, args[1]); err != nil {
			fmt.Printf("delete failed: %v\n", err)
		}

	default:
		fmt.Printf("unknown events command: %s\n", args[0])
	}
}

// Announcements dispatches:
//
//	announcements           — list (unread first marker)
//	announcements read <id> — mark one as read
func (a *App) Announcements(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	if len(args) == 0 {
		for _, ann := range a.syncer.Announcements() {
			marker := "•"
			if ann.Read {
				marker = " "
			}
			fmt.Printf("%s %s  [%s] %-8s %s\n", marker, ann.ID, ann.Priority, ann.Category, ann.Title)
		}
		fmt.Printf("%d unread\n", a.syncer.UnreadCount())
		return
	}

	if args[0] == "read" && len(args) > 1 {
		if err := a.syncer.MarkAnnouncementRead(ctx, args[1]); err != nil {
			fmt.Printf("failed: %v\n", err)
		}
		return
	}

	fmt.Printf("unknown announcements command: %s\n", args[0])
}
