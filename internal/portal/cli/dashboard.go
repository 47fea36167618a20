package cli

import (
	"context"
	"fmt"
)

// Profile prints the cached (or fetched-through) profile.
func (a *App) Profile(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	p := a.profile.Get(ctx, a.current.StudentID)
	fmt.Printf("%s (%s)\n", p.Name, p.StudentID)
	if p.Course != "" {
		fmt.Printf("course: %s, semester: %s\n", p.Course, p.Semester)
	}
	if p.Email != "" {
		fmt.Printf("email: %s\n", p.Email)
	}
	fmt.Printf("theme: %s\n", a.session.Theme(ctx))
}

// Dashboard prints the merged overview: counts, unread badges, feeds.
func (a *App) Dashboard(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	fmt.Printf("notes: %d\n", len(a.notes.List(ctx)))
	fmt.Printf("events: %d\n", len(a.syncer.Events()))
	fmt.Printf("announcements: %d (%d unread)\n", len(a.syncer.Announcements()), a.syncer.UnreadCount())

	if n, err := a.chat.UnreadCount(ctx, a.current.StudentID); err == nil {
		fmt.Printf("messages: %d unread\n", n)
	}

	activity := a.profile.RecentActivity(ctx)
	if len(activity) > 0 {
		fmt.Println("recent activity:")
		for _, e := range activity {
			fmt.Printf("  %s %s %s\n", e.CreatedAt, e.Action, e.Subject)
		}
	}
}
