package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorText      = lipgloss.AdaptiveColor{Light: "#3B2F2F", Dark: "#E4E4E4"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorError     = lipgloss.AdaptiveColor{Light: "#D0312D", Dark: "#FF5F5F"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	slotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	slotActiveStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorActiveBdr).
			Padding(0, 1)

	slotTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	slotKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	slotHintStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	slotDrawingStyle = lipgloss.NewStyle().
				Foreground(colorText)

	slotLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	slotValueStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	slotErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	menuPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	menuTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	menuStoreStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	menuPriceStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	searchPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorActiveBdr).
			Padding(1, 3)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
