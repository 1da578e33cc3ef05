package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func Heading(s string) string { return headingStyle.Render(s) }
func Faint(s string) string   { return faintStyle.Render(s) }

// Success prefixes a message with a check mark.
func (c *Context) Success(format string, args ...any) {
	c.Println(successStyle.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// Warn prefixes a message with a warning sign.
func (c *Context) Warn(format string, args ...any) {
	c.Println(warnStyle.Render("⚠") + " " + fmt.Sprintf(format, args...))
}

// Fail prefixes a message with a cross.
func (c *Context) Fail(format string, args ...any) {
	c.Println(failStyle.Render("❌") + " " + fmt.Sprintf(format, args...))
}

// Checkbox renders "[x]" or "[ ]".
func Checkbox(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return "[ ]"
}

// ProgressBar renders pct (0-100) as a bar of the given width.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(width, filled))
	return successStyle.Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", width-filled))
}
