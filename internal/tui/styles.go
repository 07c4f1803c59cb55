package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold: ascending-only matches
	colorSuccess    = lipgloss.Color("#00E676") // Green: named scales
	colorDanger     = lipgloss.Color("#FF5252") // Red: errors
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface: footer bg
	colorBlue       = lipgloss.Color("#5B8DEF") // Blue: janya markers
)

// Selection indicator prepended to the looked-up janya.
const selectionIndicator = "▎"

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleStatusWarn = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleStatusError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)

// Result row styles.
var (
	styleRowKnown = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleRowAscending = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	styleRowUnknown = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowJanya = lipgloss.NewStyle().
			Foreground(colorBlue)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// Detail panel styles: rounded border, styled title.
var (
	styleDetailBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)

	styleDetailTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDetailDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleScrollIndicator = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)
)

// Footer styles: top border, clear key/desc contrast.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
