package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/game"
)

// categoryStyles maps cell categories to lipgloss styles.
var categoryStyles = map[game.Category]lipgloss.Style{
	game.CategoryWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	game.CategoryPackage: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	game.CategoryHome:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	game.CategoryPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// styleRow applies highlight spans to a row's text. Spans are non-overlapping
// and ordered by start column; columns outside any span render unstyled.
func styleRow(text string, spans []game.Span) string {
	if len(spans) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) * 2)

	col := 0
	for _, span := range spans {
		if span.Start > len(text) {
			break
		}
		if span.Start > col {
			sb.WriteString(text[col:span.Start])
		}
		end := span.End
		if end > len(text) {
			end = len(text)
		}
		style, ok := categoryStyles[span.Category]
		if !ok {
			sb.WriteString(text[span.Start:end])
		} else {
			sb.WriteString(style.Render(text[span.Start:end]))
		}
		col = end
	}
	if col < len(text) {
		sb.WriteString(text[col:])
	}
	return sb.String()
}
