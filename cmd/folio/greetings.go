package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var farewells = [...]string{
	"Bookmark nothing. The feed will still be here.",
	"Signed out. Your comments stay behind, politely.",
	"The ink dries. See you next issue.",
	"Closed the cover. Come back for the next chapter.",
	"Logged out. The margins will miss your notes.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8fb4ff")).
		Bold(true).
		Render("F O L I O")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Read the feed. Say something kind."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"folio", "Open the reader (interactive TUI)"},
		{"folio login", "Open the reader on the sign-in form"},
		{"folio logout", "Clear your saved session"},
		{"folio --version", "Show version"},
		{"folio help", "You are here"},
	}
	env := []struct{ name, desc string }{
		{"FOLIO_API_BASE", "Backend base URL"},
		{"FOLIO_FEATURE_FLAGS", "Comma list; mock_api enables offline mode"},
		{"FOLIO_PAGE_SIZE", "Articles per page (default 10)"},
		{"FOLIO_TOKEN", "Use this token instead of the saved session"},
		{"FOLIO_DEBUG", "Write a debug log to ~/.folio/debug.log"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Printf("\n  Environment:\n")
	for _, e := range env {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Println()
}

func printFarewell() {
	msg := farewells[rand.IntN(len(farewells))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8fb4ff")).
		Bold(true).
		Render("FOLIO")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	fmt.Printf("\n%s\n\n%s\n\n", title, quote)
}
