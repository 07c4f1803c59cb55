package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailPanel wraps a viewport for scrollable content display.
type DetailPanel struct {
	viewport   viewport.Model
	title      string
	totalLines int
	emptyHint  string
}

// NewDetailPanel creates a detail panel with the given dimensions.
func NewDetailPanel(width, height int) DetailPanel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return DetailPanel{viewport: vp}
}

// SetSize updates the viewport dimensions.
func (d *DetailPanel) SetSize(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
}

// SetContent updates the displayed text and title.
func (d *DetailPanel) SetContent(title, content string) {
	d.title = title
	d.emptyHint = ""
	d.totalLines = strings.Count(content, "\n") + 1
	d.viewport.SetContent(content)
	d.viewport.GotoTop()
}

// SetEmpty sets the panel to show an empty-state hint.
func (d *DetailPanel) SetEmpty(hint string) {
	d.title = ""
	d.emptyHint = hint
	d.totalLines = 0
	d.viewport.SetContent("")
	d.viewport.GotoTop()
}

// Title returns the current panel title.
func (d DetailPanel) Title() string { return d.title }

// Update handles viewport scroll messages and returns the viewport's command.
func (d *DetailPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// View renders the panel with a rounded border and scroll indicators.
func (d DetailPanel) View() string {
	if d.emptyHint != "" {
		return styleDetailBorder.Render(styleDetailDim.Render(d.emptyHint))
	}

	var b strings.Builder
	if d.title != "" {
		b.WriteString(styleDetailTitle.Render(d.title))
		b.WriteString("\n")
	}
	if up := d.viewport.YOffset; up > 0 {
		b.WriteString(styleScrollIndicator.Render(fmt.Sprintf("↑ %d more", up)))
		b.WriteString("\n")
	}
	b.WriteString(d.viewport.View())
	if down := d.totalLines - d.viewport.YOffset - d.viewport.Height; down > 0 {
		b.WriteString("\n")
		b.WriteString(styleScrollIndicator.Render(fmt.Sprintf("↓ %d more", down)))
	}
	return styleDetailBorder.Render(b.String())
}
