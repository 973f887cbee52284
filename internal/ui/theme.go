package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/habitctl/internal/config"
)

// Theme is the resolved palette for the grid, the pager and the report.
type Theme struct {
	Primary       lipgloss.Color // habit names, headings
	Secondary     lipgloss.Color // idle button
	Accent        lipgloss.Color // checked days, cursor, key hints
	Muted         lipgloss.Color // unchecked days, help, counts
	Danger        lipgloss.Color // save failures
	Background    lipgloss.Color
	MarkdownStyle string // glamour style for the report
}

const defaultPreset = "default-dark"

// presets are selected by [theme] preset in the config file.
var presets = map[string]Theme{
	"default-dark": {
		Primary: "15", Secondary: "238", Accent: "42", Muted: "244",
		Danger: "196", Background: "235", MarkdownStyle: "dark",
	},
	"default-light": {
		Primary: "16", Secondary: "252", Accent: "28", Muted: "246",
		Danger: "160", Background: "255", MarkdownStyle: "light",
	},
	"forest": {
		Primary: "#E0E6D8", Secondary: "#3A4A3F", Accent: "#8FC965", Muted: "#74837A",
		Danger: "#E0645C", Background: "#1B2620", MarkdownStyle: "dark",
	},
}

// ResolveTheme starts from the configured preset, falling back to
// default-dark for unknown names, then applies per-color overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[defaultPreset]
	}

	for _, o := range []struct {
		dst *lipgloss.Color
		val string
	}{
		{&theme.Primary, cfg.Primary},
		{&theme.Secondary, cfg.Secondary},
		{&theme.Accent, cfg.Accent},
		{&theme.Muted, cfg.Muted},
		{&theme.Danger, cfg.Danger},
		{&theme.Background, cfg.Background},
	} {
		if o.val != "" {
			*o.dst = lipgloss.Color(o.val)
		}
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

// base is the style every themed element shares: the screen background.
func (t Theme) base() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background)
}

func (t Theme) HelpStyle() lipgloss.Style { return t.base().Foreground(t.Muted) }
func (t Theme) HeaderStyle() lipgloss.Style { return t.base().Foreground(t.Primary).Bold(true) }
func (t Theme) AccentStyle() lipgloss.Style { return t.base().Foreground(t.Accent) }
func (t Theme) DangerStyle() lipgloss.Style { return t.base().Foreground(t.Danger) }
func (t Theme) ViewPaneStyle() lipgloss.Style { return t.base().Foreground(t.Primary) }
func (t Theme) CheckedStyle() lipgloss.Style { return t.base().Foreground(t.Accent).Bold(true) }
func (t Theme) UncheckedStyle() lipgloss.Style { return t.base().Foreground(t.Muted) }

// CursorStyle inverts the accent so the focused day stands out whether or
// not it is checked.
func (t Theme) CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Background).Background(t.Accent)
}

func (t Theme) ButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Primary).Background(t.Secondary).Padding(0, 1)
}

func (t Theme) FocusedButtonStyle() lipgloss.Style {
	return t.ButtonStyle().Bold(true).Foreground(t.Background).Background(t.Accent)
}

// bgEscapeCode is the raw SGR sequence for the background color, either
// true-color (#RRGGBB) or a 256-color index.
func (t Theme) bgEscapeCode() string {
	var r, g, b int
	if n, _ := fmt.Sscanf(string(t.Background), "#%02x%02x%02x", &r, &g, &b); n == 3 {
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	}
	return "\x1b[48;5;" + string(t.Background) + "m"
}

// PaintScreen lays content out on a width x height screen filled with the
// background color. Content narrower than the screen is centered on
// contentWidth. Each line ends with an erase-to-EOL in the background color
// so terminals that mismeasure wide runes still fill to the right edge.
func (t Theme) PaintScreen(content string, width, height, contentWidth int) string {
	fill := t.base()
	eol := t.bgEscapeCode() + "\x1b[K"

	margin := ""
	if contentWidth > 0 && contentWidth < width {
		margin = fill.Render(strings.Repeat(" ", (width-contentWidth)/2))
	}
	used := lipgloss.Width(margin)

	lines := strings.Split(content, "\n")
	if len(lines) > height && height >= 0 {
		lines = lines[:height]
	}
	out := make([]string, 0, max(height, 0))
	for _, line := range lines {
		pad := max(width-used-lipgloss.Width(line), 0)
		out = append(out, margin+line+fill.Render(strings.Repeat(" ", pad))+eol)
	}
	blank := fill.Render(strings.Repeat(" ", width)) + eol
	for len(out) < height {
		out = append(out, blank)
	}
	return strings.Join(out, "\n")
}
