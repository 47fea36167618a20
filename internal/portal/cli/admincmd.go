package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// Admin dispatches the console-only subcommands:
//
//	admin event <title> <date> <time> <type>   — publish an admin event (+announcement)
//	admin rmevent <id>                         — retract an event and its announcement
//	admin announce <title> <content> [priority]
//	admin material <course> <title> <path>     — upload course material
//	admin quiz                                  — list quizzes
//	admin addquiz <title> <course>
func (a *App) Admin(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Println("usage: admin event|rmevent|announce|material|quiz|addquiz ...")
		return
	}

	switch args[0] {
	case "event":
		if len(args) < 5 {
			fmt.Println("usage: admin event <title> <date> <time> <type>")
			return
		}
		e := models.Event{
			Title: args[1], Date: args[2], Time: args[3],
			Type: models.EventType(args[4]),
		}
		created, err := a.events.CreateAdminEvent(ctx, e, true)
		if err != nil {
			fmt.Printf("publish failed: %v\n", err)
			return
		}
		fmt.Printf("published %s\n", created.ID)

	case "rmevent":
		if len(args) < 2 {
			fmt.Println("usage: admin rmevent <id>")
			return
		}
		if err := a.events.DeleteAdminEvent(ctx, args[1]); err != nil {
			fmt.Printf("retract failed: %v\n", err)
		}

	case "announce":
		if len(args) < 3 {
			fmt.Println("usage: admin announce <title> <content> [priority]")
			return
		}
		ann := models.Announcement{Title: args[1], Content: args[2]}
		if len(args) > 3 {
			ann.Priority = models.Priority(args[3])
		}
		created, err := a.events.CreateAnnouncement(ctx, ann)
		if err != nil {
			fmt.Printf("publish failed: %v\n", err)
			return
		}
		fmt.Printf("published %s\n", created.ID)

	case "material":
		if len(args) < 4 {
			fmt.Println("usage: admin material <course> <title> <path>")
			return
		}
		data, err := os.ReadFile(args[3])
		if err != nil {
			fmt.Printf("read failed: %v\n", err)
			return
		}
		name := filepath.Base(args[3])
		m, err := a.admin.UploadMaterial(ctx, args[1], args[2], name, detectMIME(name), data)
		if err != nil {
			fmt.Printf("upload failed: %v\n", err)
			return
		}
		fmt.Printf("uploaded %s -> %s\n", m.ID, m.URL)

	case "quiz":
		quizzes, err := a.admin.Quizzes(ctx)
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		for _, q := range quizzes {
			fmt.Printf("%s  %-30s %s\n", q.ID, q.Title, q.Course)
		}

	case "addquiz":
		if len(args) < 3 {
			fmt.Println("usage: admin addquiz <title> <course>")
			return
		}
		q, err := a.admin.SaveQuiz(ctx, models.Quiz{Title: args[1], Course: args[2]})
		if err != nil {
			fmt.Printf("save failed: %v\n", err)
			return
		}
		fmt.Printf("saved %s\n", q.ID)

	default:
		fmt.Printf("unknown admin command: %s\n", args[0])
	}
}
