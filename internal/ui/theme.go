package ui

// Theme is a color palette. Values are hex strings.
type Theme struct {
	Name string

	Primary   string // form border, header gradient start, bullets
	Secondary string // key hints, welcome line
	Bg        string // header gradient end

	Text      string
	TextMuted string

	Warning string
	Error   string
	Success string
	Info    string

	Border      string
	BorderFocus string // defaults to Primary if empty

	MarkdownCode   string
	MarkdownCodeBg string
	MarkdownLink   string
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName identifies a built-in theme in the config file and on the
// command line.
type ThemeName string

const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeLight      ThemeName = "light"
)

const DefaultTheme = ThemeDarkPurple

// themeOrder is the display order of ThemeNames.
var themeOrder = []ThemeName{ThemeDarkPurple, ThemeNord, ThemeDracula, ThemeTokyoNight, ThemeLight}

var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:           "Dark Purple",
		Primary:        "#7C3AED",
		Secondary:      "#06B6D4",
		Bg:             "#1F2937",
		Text:           "#F9FAFB",
		TextMuted:      "#9CA3AF",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Success:        "#10B981",
		Info:           "#06B6D4",
		Border:         "#374151",
		MarkdownCode:   "#67E8F9",
		MarkdownCodeBg: "#1E1E2E",
		MarkdownLink:   "#67E8F9",
	},
	ThemeNord: {
		Name:           "Nord",
		Primary:        "#88C0D0",
		Secondary:      "#81A1C1",
		Bg:             "#2E3440",
		Text:           "#ECEFF4",
		TextMuted:      "#D8DEE9",
		Warning:        "#EBCB8B",
		Error:          "#BF616A",
		Success:        "#A3BE8C",
		Info:           "#81A1C1",
		Border:         "#4C566A",
		MarkdownCode:   "#A3BE8C",
		MarkdownCodeBg: "#242933",
		MarkdownLink:   "#88C0D0",
	},
	ThemeDracula: {
		Name:           "Dracula",
		Primary:        "#BD93F9",
		Secondary:      "#8BE9FD",
		Bg:             "#282A36",
		Text:           "#F8F8F2",
		TextMuted:      "#6272A4",
		Warning:        "#FFB86C",
		Error:          "#FF5555",
		Success:        "#50FA7B",
		Info:           "#8BE9FD",
		Border:         "#44475A",
		MarkdownCode:   "#50FA7B",
		MarkdownCodeBg: "#21222C",
		MarkdownLink:   "#8BE9FD",
	},
	ThemeTokyoNight: {
		Name:           "Tokyo Night",
		Primary:        "#7AA2F7",
		Secondary:      "#BB9AF7",
		Bg:             "#1A1B26",
		Text:           "#C0CAF5",
		TextMuted:      "#565F89",
		Warning:        "#E0AF68",
		Error:          "#F7768E",
		Success:        "#9ECE6A",
		Info:           "#7DCFFF",
		Border:         "#3B4261",
		MarkdownCode:   "#9ECE6A",
		MarkdownCodeBg: "#16161E",
		MarkdownLink:   "#7DCFFF",
	},
	ThemeLight: {
		Name:           "Light",
		Primary:        "#6366F1",
		Secondary:      "#0891B2",
		Bg:             "#FFFFFF",
		Text:           "#1F2937",
		TextMuted:      "#6B7280",
		Warning:        "#D97706",
		Error:          "#DC2626",
		Success:        "#059669",
		Info:           "#0891B2",
		Border:         "#D1D5DB",
		BorderFocus:    "#6366F1",
		MarkdownCode:   "#059669",
		MarkdownCodeBg: "#F3F4F6",
		MarkdownLink:   "#0891B2",
	},
}

// ThemeNames lists the built-in themes in display order.
func ThemeNames() []ThemeName {
	return append([]ThemeName(nil), themeOrder...)
}

// GetTheme returns the named theme, or the default for unknown names.
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var currentName = DefaultTheme

func CurrentTheme() Theme {
	return BuiltinThemes[currentName]
}

func CurrentThemeName() ThemeName {
	return currentName
}

// SetTheme activates a theme and rebuilds every style. Unknown names select
// the default theme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentName = name
	applyTheme(BuiltinThemes[name])
}

func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}
