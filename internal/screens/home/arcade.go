package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/screens/welcome"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/ui/layout"
	"github.com/abhisek/liuk/internal/ui/theme"
)

// tileWidth is the fixed width for menu tiles.
const tileWidth = 24

func (h *HomeScreen) View(width, height int) string {
	h.relabel()

	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height)

	cw := components.ContentWidth(width)

	var sections []string
	if !compact {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, welcome.RenderBanner(cw)))
	}
	sections = append(sections, h.renderStatus(cw))
	sections = append(sections, h.renderMenu(cw, compact))

	content := strings.Join(sections, "\n\n")
	return components.Frame(content, width, height)
}

// renderStatus shows load progress, a load error, or the pool stats and
// selected bank.
func (h *HomeScreen) renderStatus(cw int) string {
	center := lipgloss.NewStyle().Width(cw - 2).Align(lipgloss.Center)

	switch {
	case h.loadErr != nil:
		msg := h.deps.Tf("home.load_failed", h.loadErr.Error())
		return center.Foreground(theme.Error).Render(msg)
	case h.loading || h.pool == nil:
		return center.Foreground(theme.TextDim).Italic(true).Render(h.deps.T("home.loading"))
	case h.pool.Len() == 0:
		return center.Foreground(theme.Warning).Render(h.deps.T("home.no_questions"))
	}

	stats := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).
		Render(h.deps.Tf("home.stats", h.pool.Len(), h.deps.Wrong.Len()))

	bankName := h.Bank()
	if bankName == deck.AllBanks {
		bankName = h.deps.T("home.bank_all")
	}
	bankLine := lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("◂ %s ▸", h.deps.Tf("home.bank", bankName)))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats + "\n" + bankLine)
}

// renderMenu renders each menu item as a tile, or as plain lines when the
// terminal is too short for bordered tiles.
func (h *HomeScreen) renderMenu(cw int, compact bool) string {
	var lines []string
	for i, item := range h.menu.Items {
		selected := i == h.menu.Selected
		if compact {
			switch {
			case selected:
				lines = append(lines, lipgloss.NewStyle().
					Foreground(theme.BgDark).
					Background(theme.Highlight).
					Bold(true).
					Render(" ▸ "+item.Label+" "))
			default:
				lines = append(lines, lipgloss.NewStyle().
					Foreground(theme.Text).
					Render("   "+item.Label))
			}
			continue
		}
		lines = append(lines, components.Tile(item.Label, selected, tileWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
