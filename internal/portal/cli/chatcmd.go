package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// Chat dispatches the messaging subcommands:
//
//	chat <user>                 — show conversation (marks it read)
//	chat list                   — list existing conversations
//	chat send <user> <text>     — direct message
//	chat group <groupId>        — show group conversation
//	chat gsend <groupId> <text> — group message
func (a *App) Chat(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		n, err := a.chat.UnreadCount(ctx, a.current.StudentID)
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		fmt.Printf("%d unread messages\n", n)
		return
	}

	switch args[0] {
	case "list":
		direct, groups, err := a.chat.Conversations(ctx)
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		for _, c := range direct {
			fmt.Printf("direct  %s\n", c)
		}
		for _, g := range groups {
			fmt.Printf("group   %s\n", g)
		}

	case "send":
		if len(args) < 3 {
			fmt.Println("usage: chat send <user> <text>")
			return
		}
		m := models.ChatMessage{
			SenderID:    a.current.StudentID,
			SenderName:  a.current.Name,
			RecipientID: args[1],
			Content:     args[2],
			Type:        models.MessageTypeText,
		}
		sent, err := a.chat.SendMessage(ctx, m)
		if err != nil {
			fmt.Printf("send failed: %v\n", err)
			return
		}
		fmt.Printf("sent %s\n", sent.ID)

	case "gsend":
		if len(args) < 3 {
			fmt.Println("usage: chat gsend <groupId> <text>")
			return
		}
		m := models.ChatMessage{
			SenderID:   a.current.StudentID,
			SenderName: a.current.Name,
			GroupID:    args[1],
			Content:    args[2],
			Type:       models.MessageTypeText,
		}
		sent, err := a.chat.SendGroupMessage(ctx, m)
		if err != nil {
			fmt.Printf("send failed: %v\n", err)
			return
		}
		fmt.Printf("sent %s\n", sent.ID)

	case "group":
		if len(args) < 2 {
			fmt.Println("usage: chat group <groupId>")
			return
		}
		msgs, err := a.chat.GetGroupMessages(ctx, args[1])
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		printMessages(msgs)

	default:
		other := args[0]
		msgs, err := a.chat.GetMessages(ctx, a.current.StudentID, other)
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		printMessages(msgs)
		if err := a.chat.MarkConversationRead(ctx, a.current.StudentID, other); err != nil {
			fmt.Printf("failed to mark read: %v\n", err)
		}
	}
}

func printMessages(msgs []models.ChatMessage) {
	for _, m := range msgs {
		fmt.Printf("[%s] %s: %s\n", m.Timestamp, m.SenderName, m.Content)
	}
}

// Groups dispatches:
//
//	groups                        — list
//	groups add <name> [descr]     — create
//	groups join <groupId> <user>  — add a member
func (a *App) Groups(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	if len(args) == 0 {
		groups, err := a.chat.Groups(ctx)
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			return
		}
		for _, g := range groups {
			fmt.Printf("%s  %-20s %d members\n", g.ID, g.Name, len(g.Members))
		}
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Println("usage: groups add <name> [description]")
			return
		}
		g := models.Group{
			Name:      args[1],
			CreatedBy: a.current.StudentID,
			Members: []models.GroupMember{{
				ID: a.current.StudentID, Name: a.current.Name, Role: models.GroupRoleAdmin,
			}},
		}
		if len(args) > 2 {
			g.Description = args[2]
		}
		created, err := a.chat.CreateGroup(ctx, g)
		if err != nil {
			fmt.Printf("create failed: %v\n", err)
			return
		}
		fmt.Printf("created %s\n", created.ID)

	case "join":
		if len(args) < 3 {
			fmt.Println("usage: groups join <groupId> <user>")
			return
		}
		m := models.GroupMember{ID: args[2], Name: args[2], Role: models.GroupRoleMember}
		if err := a.chat.AddMember(ctx, args[1], m); err != nil {
			fmt.Printf("failed: %v\n", err)
		}

	default:
		fmt.Printf("unknown groups command: %s\n", args[0])
	}
}
