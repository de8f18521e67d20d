package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hagraph/hagraph/internal/core/domain"
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Italic(true)
)

// availabilityStyle picks the colour Teams uses for an availability.
func availabilityStyle(a domain.Availability) lipgloss.Style {
	switch a {
	case domain.AvailabilityAvailable, domain.AvailabilityAvailableIdle:
		return successStyle.Bold(true)
	case domain.AvailabilityBusy, domain.AvailabilityBusyIdle, domain.AvailabilityDoNotDisturb:
		return errorStyle.Bold(true)
	case domain.AvailabilityAway, domain.AvailabilityBeRightBack:
		return warningStyle.Bold(true)
	default:
		return mutedStyle
	}
}

// field renders a "label: value" line.
func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}
