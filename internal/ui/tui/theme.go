package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nsedgwick/renum/internal/config"
)

// Catppuccin Mocha palette — mutable so config can override.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorBright = lipgloss.Color("#cdd6f4")
)

// Pre-built styles — rebuilt by rebuildStyles() after color changes.
var (
	styleHeader      lipgloss.Style
	styleDivider     lipgloss.Style
	styleIconDone    lipgloss.Style
	styleIconFailed  lipgloss.Style
	styleIconSkipped lipgloss.Style
	styleFilePath    lipgloss.Style
	styleArrow       lipgloss.Style
	styleCounts      lipgloss.Style
	styleError       lipgloss.Style
	styleKeybind     lipgloss.Style
	styleStatus      lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles reconstructs all lipgloss styles from the current color vars.
func rebuildStyles() {
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	styleDivider = lipgloss.NewStyle().Foreground(ColorMuted)
	styleIconDone = lipgloss.NewStyle().Foreground(ColorGreen)
	styleIconFailed = lipgloss.NewStyle().Foreground(ColorRed)
	styleIconSkipped = lipgloss.NewStyle().Foreground(ColorMuted)
	styleFilePath = lipgloss.NewStyle().Foreground(ColorBright)
	styleArrow = lipgloss.NewStyle().Foreground(ColorMuted)
	styleCounts = lipgloss.NewStyle().Foreground(ColorMuted)
	styleError = lipgloss.NewStyle().Foreground(ColorRed)
	styleKeybind = lipgloss.NewStyle().Foreground(ColorMuted)
	styleStatus = lipgloss.NewStyle().Foreground(ColorYellow).Italic(true)
}

// ApplyTheme overrides palette colors from the config file, then
// rebuilds the styles.
func ApplyTheme(theme config.ThemeConfig) {
	apply := func(dst *lipgloss.Color, src *string) {
		if src != nil && *src != "" {
			*dst = lipgloss.Color(*src)
		}
	}
	apply(&ColorGreen, theme.Green)
	apply(&ColorRed, theme.Red)
	apply(&ColorYellow, theme.Yellow)
	apply(&ColorMuted, theme.Muted)
	apply(&ColorBright, theme.Bright)
	rebuildStyles()
}
