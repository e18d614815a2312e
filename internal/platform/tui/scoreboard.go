package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/history"
	"github.com/vovakirdan/tui-sokoban/internal/scores"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the best-score table.
type ScoreboardModel struct {
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	quitting bool
}

// NewScoreboardModel builds the scoreboard from the score store and, when
// available, the run history. A nil runs store leaves the runs column empty.
func NewScoreboardModel(store *scores.Store, runs *history.Store, height int) ScoreboardModel {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Best by moves", Width: 16},
		{Title: "Best by pushes", Width: 16},
		{Title: "Runs", Width: 6},
	}

	rows := make([]table.Row, 0, store.LevelCount())
	for level := 1; level <= store.LevelCount(); level++ {
		bestMoves, bestPushes := store.BestFor(level)
		count := ""
		if runs != nil {
			if n, err := runs.RunCount(level); err == nil {
				count = strconv.Itoa(n)
			}
		}
		rows = append(rows, table.Row{
			strconv.Itoa(level),
			formatPair(bestMoves),
			formatPair(bestPushes),
			count,
		})
	}

	visible := len(rows) + 1
	if height > 0 && visible > height-4 {
		visible = height - 4
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(visible),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return ScoreboardModel{
		table: t,
		help:  help.New(),
		keys:  DefaultScoreboardKeyMap(),
	}
}

func formatPair(p *scores.Pair) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d / %d", p.Moves, p.Pushes)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table with its help line.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}
	return "  Sokoban Best Scores (moves / pushes)\n\n" +
		m.table.View() + "\n" +
		m.help.View(m.keys) + "\n"
}
