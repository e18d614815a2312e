// Package tui provides the Bubble Tea integration for the sokoban platform.
// It implements the presenter boundary: the session hands it row data and
// header statistics, and it forwards key events back as session events.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/session"
)

// nominalWidth is the assumed width of the game display.
const nominalWidth = 78

// display holds the screen state the session pushes through the Presenter
// interface. It is shared by pointer so Bubble Tea's value-copied models all
// observe the same state.
type display struct {
	rows    []game.RenderedRow
	stats   session.Stats
	overlay *completion
	message string
}

type completion struct {
	moves  int
	pushes int
}

func (d *display) RenderFull(rows []game.RenderedRow, stats session.Stats) {
	d.rows = rows
	d.stats = stats
	d.overlay = nil
	d.message = ""
}

func (d *display) RenderRows(rows []game.RenderedRow, stats session.Stats) {
	for _, r := range rows {
		if r.Index >= 0 && r.Index < len(d.rows) {
			d.rows[r.Index] = r
		}
	}
	d.stats = stats
}

func (d *display) RenderCompletion(moves, pushes int) {
	d.overlay = &completion{moves: moves, pushes: pushes}
}

func (d *display) ShowMessage(msg string) {
	d.message = msg
}

var _ session.Presenter = (*display)(nil)

// PlayModel is the Bubble Tea model for playing Sokoban.
type PlayModel struct {
	sess       *session.Session
	disp       *display
	keys       *KeyMapper
	startLevel int
	showLegend bool
	width      int
	height     int
	quitting   bool
}

// NewDisplay creates the presenter implementation a PlayModel renders from.
// Build the session with it, then pass both to NewPlayModel.
func NewDisplay() session.Presenter {
	return &display{}
}

// NewPlayModel creates a play model. startLevel > 0 starts that exact level;
// 0 resumes from the saved cursor.
func NewPlayModel(sess *session.Session, presenter session.Presenter, startLevel int, showLegend bool) PlayModel {
	disp, _ := presenter.(*display)
	return PlayModel{
		sess:       sess,
		disp:       disp,
		keys:       NewKeyMapper(),
		startLevel: startLevel,
		showLegend: showLegend,
		width:      nominalWidth,
		height:     24,
	}
}

// Init starts the first level.
func (m PlayModel) Init() tea.Cmd {
	if m.startLevel > 0 {
		//nolint:errcheck // Failure is already surfaced through the presenter.
		m.sess.Start(m.startLevel)
	} else {
		//nolint:errcheck // Failure is already surfaced through the presenter.
		m.sess.StartStep(0)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		ev, ok, isQuit := m.keys.MapKey(msg)
		if isQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if ok {
			//nolint:errcheck // Failure is already surfaced through the presenter.
			m.sess.Dispatch(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// View renders the header, grid and any completion overlay.
func (m PlayModel) View() string {
	if m.quitting || m.disp == nil {
		return ""
	}

	var sb strings.Builder
	for _, line := range m.headerLines() {
		sb.WriteString(line)
		sb.WriteRune('\n')
	}
	sb.WriteRune('\n')

	for _, line := range m.gridLines() {
		sb.WriteString(line)
		sb.WriteRune('\n')
	}

	if m.disp.message != "" {
		sb.WriteRune('\n')
		sb.WriteString(m.disp.message)
		sb.WriteRune('\n')
	}
	return sb.String()
}

// headerLines produces the title, score block and key legend.
func (m *PlayModel) headerLines() []string {
	stats := m.disp.stats

	lines := []string{
		"                           SOKOBAN",
		"                           =======",
		"Score                                        Key",
		"-----                                        ---",
		fmt.Sprintf("Level:  %-2d                                  %s = soko    %s = wall",
			stats.Level,
			categoryStyles[game.CategoryPlayer].Render("X"),
			categoryStyles[game.CategoryWall].Render("#")),
		fmt.Sprintf("Moves:  %-4d                                %s = package %s = home",
			stats.Moves,
			categoryStyles[game.CategoryPackage].Render("$"),
			categoryStyles[game.CategoryHome].Render(".")),
		fmt.Sprintf("Pushes: %-4d", stats.Pushes),
		bestScoreLine(stats),
	}

	if m.showLegend {
		lines = append(lines,
			strings.Repeat(".", 72),
			`    k      Move "soko"          u Undo          n next`,
			"  h   l    Or use the           r Restart       p previous",
			"    j      arrow keys",
			strings.Repeat("-", 72),
		)
	}
	return lines
}

func bestScoreLine(stats session.Stats) string {
	if stats.BestMoves == nil {
		return ""
	}
	return fmt.Sprintf("Best score by moves:  Moves=%d  Pushes=%d",
		stats.BestMoves.Moves, stats.BestMoves.Pushes)
}

// gridLines renders the puzzle rows, splicing in the completion overlay when
// the level has been solved.
func (m *PlayModel) gridLines() []string {
	rows := m.disp.rows

	if m.disp.overlay == nil {
		lines := make([]string, len(rows))
		for i, r := range rows {
			lines[i] = styleRow(r.Text, r.Spans)
		}
		return lines
	}

	box := completionBox(m.disp.overlay.moves, m.disp.overlay.pushes)
	boxW := len(box[0])
	cStart := (nominalWidth - boxW) / 2
	offset := (len(rows) - len(box)) / 2
	if offset < 0 {
		offset = 0
	}

	height := len(rows)
	if offset+len(box) > height {
		height = offset + len(box)
	}

	lines := make([]string, height)
	for i := 0; i < height; i++ {
		var text string
		var spans []game.Span
		if i < len(rows) {
			text = rows[i].Text
			spans = rows[i].Spans
		}

		bi := i - offset
		if bi < 0 || bi >= len(box) {
			lines[i] = styleRow(text, spans)
			continue
		}

		// Splice the box into the row, keeping text and spans outside it.
		if len(text) < cStart {
			text += strings.Repeat(" ", cStart-len(text))
		}
		left := text[:cStart]
		right := ""
		if len(text) > cStart+boxW {
			right = text[cStart+boxW:]
		}
		var kept []game.Span
		for _, sp := range spans {
			if sp.End <= cStart || sp.Start >= cStart+boxW {
				kept = append(kept, sp)
			}
		}
		lines[i] = styleRow(left+box[bi]+right, kept)
	}
	return lines
}

// completionBox builds the end-of-level splash.
func completionBox(moves, pushes int) []string {
	return []string{
		".---------------------------------------------------.",
		"|                   LEVEL COMPLETE                  |",
		fmt.Sprintf("|         moves: %-4d          pushes: %-4d         |", moves, pushes),
		"| (r)estart level, (p)revious level or (n)ext level |",
		"`---------------------------------------------------'",
	}
}
