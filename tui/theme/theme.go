package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/ccsessions/config"
)

const defaultThemeName = "kanagawa"

// Colors encapsulates the palette used by a theme. lipgloss.TerminalColor
// allows a mix of adaptive and static colors.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Blue               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	Pink               lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
	SubtleBackground   lipgloss.TerminalColor
}

// Theme holds the styles used by the session browser and CLI output.
type Theme struct {
	Name   string
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold        lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	SelectedBar lipgloss.Style

	// Session rows
	Repo        lipgloss.Style
	Intent      lipgloss.Style
	Files       lipgloss.Style
	Branch      lipgloss.Style
	GroupHeader lipgloss.Style
	Rule        lipgloss.Style

	// Key badges in the header line
	KeyBadge lipgloss.Style
	KeyLabel lipgloss.Style

	Box         lipgloss.Style
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Highlight   lipgloss.Style
	Accent      lipgloss.Style

	// Recency markers, freshest first: <1h, <6h, <12h, <24h, older.
	Recency [5]lipgloss.Style

	// LabelColors rotates across label badges.
	LabelColors []lipgloss.TerminalColor
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"gruvbox":  newGruvboxColors,
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
	"ansi":            "terminal",
}

// DefaultTheme is the process-wide theme, chosen from CCSESSIONS_THEME or the
// config file.
var DefaultTheme = NewThemeWithName(getThemeName())

// NewThemeWithName constructs a theme from a palette name. Unknown names fall
// back to kanagawa.
func NewThemeWithName(name string) *Theme {
	key := resolveName(name)
	return newThemeFromColors(themeRegistry[key](), key)
}

// SetDefault replaces DefaultTheme.
func SetDefault(name string) {
	DefaultTheme = NewThemeWithName(name)
}

// Names lists the registered palettes.
func Names() []string {
	return []string{"kanagawa", "gruvbox", "terminal"}
}

// LabelStyle returns the badge style for the i-th label of a row.
func (t *Theme) LabelStyle(i int) lipgloss.Style {
	c := t.LabelColors[i%len(t.LabelColors)]
	return lipgloss.NewStyle().
		Foreground(c).
		Background(t.Colors.SubtleBackground).
		Padding(0, 1)
}

func newThemeFromColors(colors Colors, name string) *Theme {
	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(colors.MutedText).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(colors.LightText).
			Bold(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Foreground(colors.MutedText),

		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		SelectedBar: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Repo:        lipgloss.NewStyle().Foreground(colors.Blue),
		Intent:      lipgloss.NewStyle().Foreground(colors.Yellow),
		Files:       lipgloss.NewStyle().Foreground(colors.Cyan),
		Branch:      lipgloss.NewStyle().Foreground(colors.MutedText),
		GroupHeader: lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),
		Rule:        lipgloss.NewStyle().Foreground(colors.Border),

		KeyBadge: lipgloss.NewStyle().
			Background(colors.SubtleBackground).
			Foreground(colors.LightText).
			Padding(0, 1),
		KeyLabel: lipgloss.NewStyle().Foreground(colors.MutedText),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(1, 2),

		Input: lipgloss.NewStyle().Foreground(colors.LightText),
		Placeholder: lipgloss.NewStyle().
			Foreground(colors.MutedText).
			Italic(true),
		Highlight: lipgloss.NewStyle().Foreground(colors.Orange).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),

		Recency: [5]lipgloss.Style{
			lipgloss.NewStyle().Foreground(colors.Green),
			lipgloss.NewStyle().Foreground(colors.Cyan),
			lipgloss.NewStyle().Foreground(colors.Orange),
			lipgloss.NewStyle().Foreground(colors.Violet),
			lipgloss.NewStyle().Foreground(colors.Border),
		},

		LabelColors: []lipgloss.TerminalColor{
			colors.Cyan,
			colors.Pink,
			colors.Green,
			colors.Orange,
			colors.Blue,
			colors.Violet,
		},
	}
}

func resolveName(name string) string {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if _, ok := themeRegistry[key]; ok {
		return key
	}
	return defaultThemeName
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("CCSESSIONS_THEME")); theme != "" {
		return theme
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil || cfg.Theme == "" {
		return defaultThemeName
	}
	return cfg.Theme
}
