// Package tui is the interactive raga browser.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/graha/internal/explore"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a browser program over x using the alternate screen.
// Callers that reload the catalog Send MsgCatalogReloaded to refresh it.
func NewProgram(x *explore.Explorer, opts ...tea.ProgramOption) *Program {
	allOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(NewModel(x), allOpts...)
}

// Run runs p until the user quits.
func Run(p *Program) error {
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
