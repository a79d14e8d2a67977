package home

import (
	"charm.land/lipgloss/v2"

	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// damArt is a gravity dam cross-section holding back a reservoir.
const damArt = `         ┌─┐
 ≈≈≈≈≈≈≈≈│ │╲
 ≈≈≈≈≈≈≈≈│ │ ╲
 ≈≈≈≈≈≈≈≈│ │  ╲
 ≈≈≈≈≈≈≈≈│ │   ╲
▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔`

// renderDam returns the dam art in brand colors.
func renderDam() string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(damArt)
}
