package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// Notes dispatches the notes subcommands:
//
//	notes                       — list
//	notes add <title> <course>  — create (content prompted)
//	notes fav <id>              — toggle favorite
//	notes rm <id>               — delete
//	notes attach <id> <path>    — attach a local file
func (a *App) Notes(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	if len(args) == 0 {
		for _, n := range a.notes.List(ctx) {
			fav := " "
			if n.Favorite {
				fav = "*"
			}
			fmt.Printf("%s %s  %-30s %-10s %s\n", fav, n.ID, n.Title, n.Course, n.Tags)
		}
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			fmt.Println("usage: notes add <title> <course> [tags]")
			return
		}
		content, err := a.readLine("content: ")
		if err != nil {
			return
		}
		n := models.Note{Title: args[1], Course: args[2], Content: content}
		if len(args) > 3 {
			n.Tags = args[3]
		}
		created, err := a.notes.Create(ctx, a.current.StudentID, n)
		if err != nil {
			fmt.Printf("save failed: %v\n", err)
			return
		}
		_ = a.profile.RecordActivity(ctx, "note created", created.Title)
		fmt.Printf("saved %s\n", created.ID)

	case "fav":
		if len(args) < 2 {
			fmt.Println("usage: notes fav <id>")
			return
		}
		if err := a.notes.ToggleFavorite(ctx, a.current.StudentID, args[1]); err != nil {
			fmt.Printf("failed: %v\n", err)
		}

	case "rm":
		if len(args) < 2 {
			fmt.Println("usage: notes rm <id>")
			return
		}
		if err := a.notes.Delete(ctx, a.current.StudentID, args[1]); err != nil {
			fmt.Printf("delete failed: %v\n", err)
			return
		}
		fmt.Println("deleted")

	case "attach":
		if len(args) < 3 {
			fmt.Println("usage: notes attach <id> <path>")
			return
		}
		a.attachFile(ctx, args[1], args[2])

	default:
		fmt.Printf("unknown notes command: %s\n", args[0])
	}
}

func (a *App) attachFile(ctx context.Context, noteID, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("read failed: %v\n", err)
		return
	}

	name := filepath.Base(path)
	ref, err := a.files.Save(ctx, noteID, name, detectMIME(name), data)
	if err != nil {
		fmt.Printf("upload failed: %v\n", err)
		return
	}
	if err := a.notes.AttachFile(ctx, a.current.StudentID, noteID, ref); err != nil {
		fmt.Printf("attach failed: %v\n", err)
		return
	}
	fmt.Printf("attached %s (%d bytes)\n", ref.ID, ref.Size)
}

func detectMIME(name string) string {
	switch filepath.Ext(name) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".txt", ".md":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
