package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// SearchFunc dispatches a query to the search core. It is invoked off
// the render loop; results come back as view updates.
type SearchFunc func(query string)

// Message types for bubbletea.
type resultsMsg []roster.Record
type statusMsg string
type annotationMsg struct {
	Name string
	Text string
}
type settleMsg struct{}

// Widget is the interactive directory-search TUI. It implements View
// by sending messages into the bubbletea program, so core updates and
// user input serialize through one loop.
type Widget struct {
	program *tea.Program
}

// Ensure Widget implements View.
var _ View = (*Widget)(nil)

// NewWidget creates the interactive widget. onSearch is called with
// the raw query when the user submits one.
func NewWidget(cfg Config, onSearch SearchFunc) *Widget {
	model := newSearchModel(onSearch, GetStyles(cfg.NoColor || DetectNoColor()))

	var opts []tea.ProgramOption
	if f, ok := cfg.Output.(*os.File); ok {
		opts = append(opts, tea.WithOutput(f))
	}
	opts = append(opts, tea.WithAltScreen())

	return &Widget{program: tea.NewProgram(model, opts...)}
}

// Run starts the widget and blocks until the user quits.
func (w *Widget) Run() error {
	_, err := w.program.Run()
	return err
}

// RenderResults implements View.
func (w *Widget) RenderResults(records []roster.Record) {
	w.program.Send(resultsMsg(records))
}

// RenderStatus implements View.
func (w *Widget) RenderStatus(message string) {
	w.program.Send(statusMsg(message))
}

// UpdateAnnotation implements View.
func (w *Widget) UpdateAnnotation(name, annotation string) {
	w.program.Send(annotationMsg{Name: name, Text: annotation})
}

// SettleAnnotations implements View.
func (w *Widget) SettleAnnotations() {
	w.program.Send(settleMsg{})
}

// card is one displayed result with its annotation slot.
type card struct {
	rec        roster.Record
	annotation string
}

// searchModel is the bubbletea model for the search widget.
type searchModel struct {
	input     textinput.Model
	spin      spinner.Model
	cards     []card
	status    string
	enriching bool
	styles    Styles
	onSearch  SearchFunc
	width     int
}

func newSearchModel(onSearch SearchFunc, styles Styles) *searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search the archives..."
	ti.CharLimit = 120
	ti.Width = 48
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan))

	return &searchModel{
		input:    ti,
		spin:     sp,
		styles:   styles,
		onSearch: onSearch,
		width:    80,
	}
}

// Init implements tea.Model.
func (m *searchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.status = "Searching the archives..."
			m.cards = nil
			m.enriching = false
			dispatch := func() tea.Msg {
				m.onSearch(query)
				return nil
			}
			return m, dispatch
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case resultsMsg:
		m.status = ""
		m.cards = make([]card, len(msg))
		for i, rec := range msg {
			m.cards[i] = card{rec: rec}
		}
		m.enriching = len(msg) > 0
		if m.enriching {
			return m, m.spin.Tick
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		m.cards = nil
		m.enriching = false
		return m, nil

	case annotationMsg:
		for i := range m.cards {
			if m.cards[i].rec.Name == msg.Name {
				m.cards[i].annotation = msg.Text
			}
		}
		return m, nil

	case settleMsg:
		m.enriching = false
		return m, nil

	case spinner.TickMsg:
		if !m.enriching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *searchModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("HERMES DIRECTORY"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Input.Render("? "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.status != "":
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	case len(m.cards) > 0:
		for _, c := range m.cards {
			b.WriteString(m.renderCard(c))
			b.WriteString("\n")
		}
		if m.enriching {
			b.WriteString(m.spin.View())
			b.WriteString(m.styles.Dim.Render(" consulting the oracle..."))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("enter: search • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *searchModel) renderCard(c card) string {
	var lines []string

	header := m.styles.Name.Render(c.rec.Name)
	if c.rec.Title != "" {
		header += "  " + m.styles.Title.Render(c.rec.Title)
	}
	lines = append(lines, header)

	if c.rec.SelfDescription != "" {
		lines = append(lines, m.styles.Body.Render("\""+c.rec.SelfDescription+"\""))
	}
	if c.rec.CurrentProject != "" {
		lines = append(lines, m.styles.Label.Render("Building: ")+m.styles.Body.Render(c.rec.CurrentProject))
	}
	if c.annotation != "" {
		lines = append(lines, m.styles.Annotation.Render("✨ "+c.annotation))
	}

	var footer []string
	if c.rec.SocialLink != "" {
		footer = append(footer, c.rec.SocialLink)
	}
	if c.rec.Website != "" {
		footer = append(footer, c.rec.Website)
	}
	if c.rec.Contact != "" {
		footer = append(footer, c.rec.Contact)
	}
	if len(footer) > 0 {
		lines = append(lines, m.styles.Label.Render(strings.Join(footer, " | ")))
	}

	width := m.width - 4
	if width > 76 {
		width = 76
	}
	return m.styles.Card.Width(width).Render(strings.Join(lines, "\n"))
}
