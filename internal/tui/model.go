package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/graha"
	"github.com/papapumpkin/graha/internal/swara"
)

// Pane selects what the detail panel shows for a looked-up raga.
type Pane int

const (
	// PaneBhedam shows the graha bhedam of the raga.
	PaneBhedam Pane = iota
	// PaneRelations shows the raga's melakarta and its janyas.
	PaneRelations
)

// suggestLimit caps "did you mean" names in the status bar.
const suggestLimit = 3

// MsgCatalogReloaded reports that the explorer swapped in a new catalog.
type MsgCatalogReloaded struct {
	Source  string
	Entries int
	Issues  int
}

// MsgReloadFailed reports that a watched catalog could not be reloaded; the
// previous catalog stays active.
type MsgReloadFailed struct {
	Err error
}

// Model is the raga browser: a query line over a scrollable result panel.
type Model struct {
	Explorer *explore.Explorer
	Keys     KeyMap
	Input    textinput.Model
	Detail   DetailPanel
	Pane     Pane

	query     string // last submitted query
	status    string
	statusErr bool
	width     int
	height    int
}

// NewModel creates a browser over x.
func NewModel(x *explore.Explorer) Model {
	ti := textinput.New()
	ti.Placeholder = "raga name or swara pattern (S R2 G3 P D2)"
	ti.Prompt = "❯ "
	ti.CharLimit = 120
	ti.Focus()

	m := Model{
		Explorer: x,
		Keys:     DefaultKeyMap(),
		Input:    ti,
		Detail:   NewDetailPanel(80, 10),
	}
	m.Detail.SetEmpty("type a raga name or a swara pattern and press enter")
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, resizes, and reload notifications.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.Input.Width = max(msg.Width-4, 10)
		m.Detail.SetSize(max(msg.Width-4, 10), m.detailHeight())
		return m, nil

	case MsgCatalogReloaded:
		m.setStatus(fmt.Sprintf("reloaded %s: %d ragas, %d issue(s)", msg.Source, msg.Entries, msg.Issues), false)
		if m.query != "" {
			m.lookup(m.query)
		}
		return m, nil

	case MsgReloadFailed:
		m.setStatus("reload failed: "+msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Enter):
			m.lookup(m.Input.Value())
			return m, nil
		case key.Matches(msg, m.Keys.Toggle):
			if m.Pane == PaneBhedam {
				m.Pane = PaneRelations
			} else {
				m.Pane = PaneBhedam
			}
			if m.query != "" {
				m.lookup(m.query)
			}
			return m, nil
		case key.Matches(msg, m.Keys.Up, m.Keys.Down, m.Keys.PageUp, m.Keys.PageDown):
			return m, m.Detail.Update(msg)
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// lookup runs q as a pattern when it parses as swaras and as a raga name
// otherwise.
func (m *Model) lookup(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}
	m.query = q

	if labels, err := swara.ParseScale(q); err == nil {
		results, err := m.Explorer.FromPattern(q, graha.AutoOptions(labels, nil))
		if err != nil {
			m.setStatus(err.Error(), true)
			return
		}
		m.Detail.SetContent(renderPattern(q, results))
		m.setStatus(fmt.Sprintf("%d shift(s)", len(results)), false)
		return
	}

	var (
		title, body string
		res         explore.Resolution
		err         error
	)
	switch m.Pane {
	case PaneRelations:
		var rel explore.Relations
		rel, err = m.Explorer.Relations(q)
		res = rel.Resolution
		if err == nil {
			title, body = renderRelations(rel)
		}
	default:
		var rep explore.Report
		rep, err = m.Explorer.GrahaBhedam(q)
		res = rep.Resolution
		if err == nil {
			title, body = renderReport(rep)
		}
	}
	if err != nil {
		msg := err.Error()
		if !res.Found {
			if sugg := m.Explorer.Suggest(q, suggestLimit); len(sugg) > 0 {
				msg += " (did you mean: " + strings.Join(sugg, ", ") + ")"
			}
		}
		m.setStatus(msg, true)
		return
	}

	m.Detail.SetContent(title, body)
	if res.Corrected {
		m.setStatus(fmt.Sprintf("%q → %s (%s)", q, res.Name, res.Tier), false)
	} else {
		m.setStatus("", false)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// Status returns the current status line text.
func (m Model) Status() string { return m.status }

func (m Model) detailHeight() int {
	// status bar, input, footer (with border), panel border and title
	return max(m.height-7, 3)
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n")
	b.WriteString(m.Detail.View())
	b.WriteString("\n")
	b.WriteString(Footer{Width: m.width, Bindings: FooterBindings(m.Keys)}.View())
	return b.String()
}

func (m Model) statusBar() string {
	c := m.Explorer.Catalog()
	mode := "bhedam"
	if m.Pane == PaneRelations {
		mode = "relations"
	}
	left := styleStatusLabel.Render("graha") + " " +
		styleStatusValue.Render(fmt.Sprintf("%s · %d ragas · %s", c.Source, c.Index.Len(), mode))
	if m.width > 0 && m.width < CompactWidth {
		left = styleStatusLabel.Render("graha") + " " + styleStatusValue.Render(mode)
	}
	right := ""
	switch {
	case m.status == "":
	case m.statusErr:
		right = styleStatusError.Render(m.status)
	default:
		right = styleStatusWarn.Render(m.status)
	}
	line := left
	if right != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}
	return styleStatusBar.Width(m.width).Render(line)
}
