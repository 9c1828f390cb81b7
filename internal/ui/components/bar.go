package components

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"studypro/internal/ui/theme"
)

// Bar renders a static meter filled to percent (0..100) of width cells.
func Bar(percent float64, width int, color lipgloss.Color) string {
	meter := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithoutPercentage(),
		progress.WithWidth(max(width, 1)),
	)
	meter.EmptyColor = string(theme.Surface1)
	return meter.ViewAs(max(0, min(percent, 100)) / 100)
}
