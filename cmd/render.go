package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jiashen-meow/feelingdiary/internal/model"
	"github.com/jiashen-meow/feelingdiary/internal/timecalc"
)

const (
	cardWidth    = 72
	previewLines = 10
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(cardWidth)
	dateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("0")).
			Padding(0, 1)
	idStyle  = lipgloss.NewStyle().Faint(true)
	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// preview keeps the first previewLines lines of content, marking the cut.
func preview(content string) string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) <= previewLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:previewLines], "\n") + "\n…"
}

func renderCard(e model.Entry, now time.Time, full bool) string {
	body := preview(e.Content)
	if full {
		body = strings.TrimSpace(e.Content)
	}

	header := dateStyle.Render(e.Date.Local().Format("2006-01-02")) + " " +
		timecalc.RelativeLabel(e.Date, now) + "  " + idStyle.Render(shortID(e.ID))

	parts := []string{header, "", body}
	if len(e.Tags) > 0 {
		parts = append(parts, "", tagStyle.Render(strings.Join(e.Tags, " ")))
	}
	return cardStyle.Render(strings.Join(parts, "\n"))
}

func printList(w io.Writer, entries []model.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(w, renderCard(e, now, false))
	}
	fmt.Fprintln(w, plural(len(entries), "entry", "entries"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
