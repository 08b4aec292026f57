package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme for the player.
type Theme struct {
	Name   string
	Cell   lipgloss.Color
	Border lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Ok     lipgloss.Color
	Warn   lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemePhosphor = Theme{
		Name:   "phosphor",
		Cell:   lipgloss.Color("#33ff66"),
		Border: lipgloss.Color("#1f5f2f"),
		Accent: lipgloss.Color("#aaffaa"),
		Text:   lipgloss.Color("#d8ffd8"),
		Muted:  lipgloss.Color("#4f7f5a"),
		Ok:     lipgloss.Color("#66ff99"),
		Warn:   lipgloss.Color("#ffff66"),
		Error:  lipgloss.Color("#ff5555"),
	}

	ThemeAmber = Theme{
		Name:   "amber",
		Cell:   lipgloss.Color("#ffb000"),
		Border: lipgloss.Color("#664400"),
		Accent: lipgloss.Color("#ffd27f"),
		Text:   lipgloss.Color("#ffe9c0"),
		Muted:  lipgloss.Color("#8a6a33"),
		Ok:     lipgloss.Color("#ffcc33"),
		Warn:   lipgloss.Color("#ff8800"),
		Error:  lipgloss.Color("#ff3333"),
	}

	ThemeIce = Theme{
		Name:   "ice",
		Cell:   lipgloss.Color("#7fdbff"),
		Border: lipgloss.Color("#2a4d69"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Ok:     lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffcc00"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Cell:   lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#555555"),
		Accent: lipgloss.Color("#cccccc"),
		Text:   lipgloss.Color("#eeeeee"),
		Muted:  lipgloss.Color("#888888"),
		Ok:     lipgloss.Color("#ffffff"),
		Warn:   lipgloss.Color("#bbbbbb"),
		Error:  lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemePhosphor,
		ThemeAmber,
		ThemeIce,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
