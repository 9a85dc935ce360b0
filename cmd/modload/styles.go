// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

const (
	colorTitle   = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorOK      = lipgloss.Color("#10B981")
	colorFailed  = lipgloss.Color("#EF4444")
	colorDev     = lipgloss.Color("#F59E0B")
	colorRelease = lipgloss.Color("#3B82F6")
	colorValue   = lipgloss.Color("#9CA3AF")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle     = lipgloss.NewStyle().Foreground(colorOK)
	failedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFailed)
	// warnStyle doubles as the development build colour.
	warnStyle    = lipgloss.NewStyle().Foreground(colorDev)
	releaseStyle = lipgloss.NewStyle().Foreground(colorRelease)
	// detailStyle is for durations, exported values and verbose error chains.
	detailStyle = lipgloss.NewStyle().Foreground(colorValue)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	markOK     = okStyle.Bold(true).Render("✓")
	markFailed = failedStyle.Render("✗")
)

// renderResolution prints name@version, with development builds set apart
// from releases.
func renderResolution(res resolver.Resolution) string {
	if res.Development {
		return warnStyle.Render(res.String())
	}
	return releaseStyle.Render(res.String())
}
