package chain

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tabletalk-dev/tabletalk/internal/color"
)

var (
	boldCyan = lipgloss.NewStyle().
			Bold(true).
			Foreground(color.Cyan)

	boldGreen = lipgloss.NewStyle().
			Bold(true).
			Foreground(color.Green)

	muted = lipgloss.NewStyle().
		Foreground(color.DarkGray)

	foreground = lipgloss.NewStyle().
			Foreground(color.LightGray)
)

// DisplayResult renders an answered question to stdout.
func DisplayResult(result *Result) {
	fmt.Println(boldCyan.Render("Question"))
	fmt.Println(foreground.Render(result.Question))
	fmt.Println()

	if len(result.Tables) > 0 {
		fmt.Println(muted.Render("Tables: " + strings.Join(result.Tables, ", ")))
		fmt.Println()
	}

	fmt.Println(boldGreen.Render("SQL"))
	fmt.Println(foreground.Render(result.SQL))

	if result.Answer != "" {
		fmt.Println()
		fmt.Println(boldGreen.Render("Answer"))
		fmt.Println(foreground.Render(result.Answer))
	}

	fmt.Println()
	fmt.Println(muted.Render(fmt.Sprintf("Tokens: %d prompt, %d completion, %d total",
		result.Usage.PromptTokens, result.Usage.CompletionTokens, result.Usage.TotalTokens)))
}

// DisplayTables renders a decider-only run to stdout.
func DisplayTables(question string, names []string) {
	fmt.Println(boldCyan.Render("Question"))
	fmt.Println(foreground.Render(question))
	fmt.Println()

	fmt.Println(boldGreen.Render("Relevant tables"))
	if len(names) == 0 {
		fmt.Println(muted.Render("(none)"))
		return
	}
	for _, name := range names {
		fmt.Println(foreground.Render("  • " + name))
	}
}
