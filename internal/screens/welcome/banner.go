package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/ui/theme"
)

const bannerArt = `██╗     ██╗██╗   ██╗██╗  ██╗
██║     ██║██║   ██║██║ ██╔╝
██║     ██║██║   ██║█████╔╝
██║     ██║██║   ██║██╔═██╗
███████╗██║╚██████╔╝██║  ██╗
╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "L · I · U · K"

// bannerColors alternate per line: flag blue, white, flag red.
var bannerColors = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
	lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
	lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
}

// RenderBanner returns the LIUK banner in flag colors. Uses a compact
// fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	if width < 40 {
		return bannerColors[0].Render(bannerCompact)
	}
	lines := strings.Split(bannerArt, "\n")
	for i, l := range lines {
		lines[i] = bannerColors[i%len(bannerColors)].Render(l)
	}
	return strings.Join(lines, "\n")
}
