package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCmd  string
		wantArgs []string
	}{
		{"bare command", "help", "help", nil},
		{"subcommand", "notes list", "notes", []string{"list"}},
		{
			"quoted title",
			`notes add "Operating Systems" cs301`,
			"notes",
			[]string{"add", "Operating Systems", "cs301"},
		},
		{"extra spaces", "chat   send  bob  hi", "chat", []string{"send", "bob", "hi"}},
		{"empty", "", "", nil},
		{"quoted empty kept out", `notes add ""`, "notes", []string{"add"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := splitCommand(tt.line)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
