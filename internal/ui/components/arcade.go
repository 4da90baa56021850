package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for boxed sections so
// cards on one screen line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4)
	return max(20, min(frameWidth-6, 64))
}

// Frame wraps content in a double border, centered in the given size.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}

// Tile renders a wide menu tile, highlighted when selected.
func Tile(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Highlight).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}
