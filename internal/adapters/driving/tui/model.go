// Package tui implements the interactive search interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// resultsMsg carries a finished search back into the update loop.
type resultsMsg struct {
	query   string
	results []domain.SearchResult
}

// errMsg carries a failed search.
type errMsg struct {
	err error
}

// Model is the Bubble Tea model for the search interface. One query
// box, one result pane; up/down cycles through hits.
type Model struct {
	ctx    context.Context
	search driving.SearchService

	input    textinput.Model
	viewport viewport.Model

	results []domain.SearchResult
	cursor  int
	status  string
	failed  bool
	ready   bool
}

// NewModel creates the search model.
func NewModel(ctx context.Context, search driving.SearchService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a query and press Enter"
	ti.Focus()

	return Model{
		ctx:      ctx,
		search:   search,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ready. Type to search; q on an empty query quits.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, resultFrame := resultBoxStyle.GetFrameSize()
		_, queryFrame := queryBoxStyle.GetFrameSize()
		reserved := 2 + queryFrame + 2 // header, spacer, query box, status
		height := msg.Height - reserved - resultFrame
		if height < 3 {
			height = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = height
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil

	case resultsMsg:
		m.results = msg.results
		m.cursor = 0
		m.failed = false
		if len(msg.results) == 0 {
			m.status = fmt.Sprintf("No results for %q", msg.query)
		} else {
			m.status = fmt.Sprintf("%d results for %q", len(msg.results), msg.query)
		}
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil

	case errMsg:
		m.results = nil
		m.failed = true
		m.status = "Error: " + msg.err.Error()
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q":
			if strings.TrimSpace(m.input.Value()) == "" {
				return m, tea.Quit
			}
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.status = "Searching..."
			return m, m.searchCmd(query)
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the full layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("Granthika")
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())

	status := statusStyle.Render(m.status)
	if m.failed {
		status = errorStyle.Render(m.status)
	}
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.search.Search(m.ctx, query, domain.SearchOptions{})
		if err != nil {
			return errMsg{err: err}
		}
		return resultsMsg{query: query, results: results}
	}
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}

	r := m.results[m.cursor]
	base := r.Base()

	title := fmt.Sprintf("Result %d/%d  %s  score=%.3f",
		m.cursor+1, len(m.results), base.ResourceName, base.Score)

	var meta string
	switch v := r.(type) {
	case domain.ImageResult:
		meta = "image"
		if v.RecordedAt != nil {
			meta = "image, recorded " + v.RecordedAt.Format("2006-01-02 15:04")
		}
	case domain.BookResult:
		meta = fmt.Sprintf("book, paragraph %d", v.Paragraph)
	case domain.TranscriptResult:
		meta = "transcript, at " + v.Timestamp
	}

	return title + "\n" + metaStyle.Render(meta) + "\n\n" + base.Text
}
