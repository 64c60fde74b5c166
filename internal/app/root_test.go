package app

import (
	"strings"
	"testing"
)

func TestAllSubcommandsRegistered(t *testing.T) {
	want := []string{
		"summary", "ask", "facts", "forecast",
		"goals", "track", "watch", "mcp", "doctor",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		registered[name] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered on rootCmd", name)
		}
	}
}

func TestGoalsSubcommands(t *testing.T) {
	want := []string{"list", "add", "suggest", "update", "remove"}

	registered := make(map[string]bool)
	for _, cmd := range goalsCmd.Commands() {
		registered[strings.Fields(cmd.Use)[0]] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("goals subcommand %q not registered", name)
		}
	}
}
