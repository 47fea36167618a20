package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/campusdesk/internal/filex"
)

// Files dispatches the local file-store subcommands:
//
//	files              — list stored files and quota usage
//	files get <id>     — export a file to ./downloads
//	files rm <id>      — delete
func (a *App) Files(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	if len(args) == 0 {
		for _, f := range a.files.List(ctx, "") {
			fmt.Printf("%s  %-30s %-20s %d bytes\n", f.ID, f.Name, f.Type, f.Size)
		}
		fmt.Printf("%d bytes used\n", a.files.TotalSize(ctx))
		return
	}

	switch args[0] {
	case "get":
		if len(args) < 2 {
			fmt.Println("usage: files get <id>")
			return
		}
		ref, data, err := a.files.Get(ctx, args[1])
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		dir, err := filex.EnsureSubDir("downloads")
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		dest := filepath.Join(dir, ref.Name)
		if err := os.WriteFile(dest, data, 0o660); err != nil {
			fmt.Printf("write failed: %v\n", err)
			return
		}
		fmt.Printf("saved to %s\n", dest)

	case "rm":
		if len(args) < 2 {
			fmt.Println("usage: files rm <id>")
			return
		}
		if err := a.files.Delete(ctx, args[1]); err != nil {
			fmt.Printf("delete failed: %v\n", err)
		}

	default:
		fmt.Printf("unknown files command: %s\n", args[0])
	}
}
