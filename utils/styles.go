package utils

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	CriticalColor = lipgloss.Color("#CC3333") // Dark red
	WarningColor  = lipgloss.Color("#FF8800") // Orange
	GoodColor     = lipgloss.Color("#228B22") // Forest green
	InfoColor     = lipgloss.Color("#4682B4") // Steel blue
	TextColor     = lipgloss.Color("#CCCCCC") // Light gray
	MutedColor    = lipgloss.Color("#888888") // Medium gray
	BorderColor   = lipgloss.Color("#666666") // Dark gray
	AbstractColor = lipgloss.Color("#B98EFF") // Light purple

	GoodLightColor = lipgloss.Color("#66BB66") // Lighter green
	InfoLightColor = lipgloss.Color("#88AACC") // Lighter blue
)

var (
	GoodStyle  = lipgloss.NewStyle().Foreground(GoodColor).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(InfoColor)
	MutedStyle = lipgloss.NewStyle().Foreground(MutedColor)
	TextStyle  = lipgloss.NewStyle().Foreground(TextColor)
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			MarginTop(1)

	AbstractBadgeStyle = lipgloss.NewStyle().
				Foreground(AbstractColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(AbstractColor).
				Padding(0, 1)

	FocusStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true).
			Underline(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(CriticalColor).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().Foreground(BorderColor)
)

// Property value colors, one per JSON kind.
var (
	KeyStyle    = lipgloss.NewStyle().Foreground(InfoLightColor)
	StringStyle = lipgloss.NewStyle().Foreground(GoodLightColor)
	NumberStyle = lipgloss.NewStyle().Foreground(WarningColor)
	BoolStyle   = lipgloss.NewStyle().Foreground(AbstractColor)
	NullStyle   = MutedStyle
)

// SetColor turns styled output on or off for the whole process.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// GetStatusStyle maps a vtable slot status to its style.
func GetStatusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "defined":
		return GoodStyle
	case "overridden":
		return InfoStyle
	default:
		return MutedStyle
	}
}

func FormatKeyValue(key, value string, keyWidth int) string {
	keyStyled := InfoStyle.Width(keyWidth).Render(key + ":")
	valueStyled := TextStyle.Render(value)
	return lipgloss.JoinHorizontal(lipgloss.Left, keyStyled, " ", valueStyled)
}

// TruncateString truncates a string to fit within maxWidth
func TruncateString(s string, maxWidth int) string {
	r := []rune(s)
	if len(r) <= maxWidth {
		return s
	}
	if maxWidth < 4 {
		return strings.Repeat(".", maxWidth)
	}
	return string(r[:maxWidth-3]) + "..."
}

// SanitizeString removes control characters and ensures safe display
func SanitizeString(s string) string {
	var result []rune
	for _, r := range s {
		if r >= 32 && r != 127 {
			result = append(result, r)
		}
	}
	return string(result)
}

// Pluralize returns "1 child" or "3 children" style counts.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}
