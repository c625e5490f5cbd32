package ui

import (
	"fmt"

	"github.com/Mario960060/cosmichub/internal/model"
)

// ANSI256 color codes for feed rendering.
const (
	colorCritical = 196 // red
	colorHigh     = 208 // orange
	colorMedium   = 178 // yellow
	colorMuted    = 245 // medium gray
	colorAccent   = 74  // blue
)

var noColor bool

// RenderSeverity returns the severity label colored by tier.
func RenderSeverity(s model.Severity) string {
	if noColor {
		return s.String()
	}
	code := colorMuted
	switch s {
	case model.SeverityCritical:
		code = colorCritical
	case model.SeverityHigh:
		code = colorHigh
	case model.SeverityMedium:
		code = colorMedium
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderRiskLevel returns the risk level label colored by tier.
func RenderRiskLevel(l model.RiskLevel) string {
	if noColor {
		return l.String()
	}
	code := colorMuted
	switch l {
	case model.RiskCritical:
		code = colorCritical
	case model.RiskHigh:
		code = colorHigh
	case model.RiskMedium:
		code = colorMedium
	case model.RiskLow:
		code = colorAccent
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, l)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
