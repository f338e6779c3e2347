package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette of the active theme. Set by applyTheme.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Styles built from the palette. Set by applyTheme.
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style

	FlashInfoStyle    lipgloss.Style
	FlashSuccessStyle lipgloss.Style
	FlashWarningStyle lipgloss.Style
	FlashErrorStyle   lipgloss.Style

	FormStyle             lipgloss.Style
	FormTitleStyle        lipgloss.Style
	FormLabelStyle        lipgloss.Style
	FormLabelFocusedStyle lipgloss.Style
	FormHelpStyle         lipgloss.Style

	WelcomeStyle       lipgloss.Style
	MessageBulletStyle lipgloss.Style
	MessageTextStyle   lipgloss.Style
	InputStyle         lipgloss.Style
	InputCounterStyle  lipgloss.Style
	EmptyBoardStyle    lipgloss.Style

	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style

	MarkdownBoldStyle       lipgloss.Style
	MarkdownItalicStyle     lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownLinkStyle       lipgloss.Style
)

func init() {
	applyTheme(BuiltinThemes[DefaultTheme])
}

func applyTheme(t Theme) {
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	fg := func(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	muted := fg(ColorTextMuted)
	rounded := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	FooterStyle = muted.Padding(0, 1)
	FooterKeyStyle = fg(ColorSecondary).Bold(true)
	FooterDescStyle = muted

	FlashInfoStyle = fg(ColorInfo)
	FlashSuccessStyle = fg(ColorSuccess)
	FlashWarningStyle = fg(ColorWarning).Bold(true)
	FlashErrorStyle = fg(ColorError).Bold(true)

	FormStyle = rounded.BorderForeground(ColorPrimary).Padding(1, 2).Width(AuthFormWidth)
	FormTitleStyle = fg(ColorPrimary).Bold(true).MarginBottom(1)
	FormLabelStyle = muted
	FormLabelFocusedStyle = fg(ColorSecondary).Bold(true)
	FormHelpStyle = muted.Italic(true).MarginTop(1)

	WelcomeStyle = fg(ColorSecondary).Bold(true).Padding(0, 1)
	MessageBulletStyle = fg(ColorPrimary)
	MessageTextStyle = fg(ColorText)
	InputStyle = rounded.BorderForeground(ColorBorderFocus).Padding(0, 1)
	InputCounterStyle = muted
	EmptyBoardStyle = muted.Italic(true)

	StatusLoadingStyle = fg(ColorSecondary).Italic(true)
	StatusErrorStyle = fg(ColorError).Bold(true)

	MarkdownBoldStyle = fg(ColorText).Bold(true)
	MarkdownItalicStyle = fg(ColorText).Italic(true)
	MarkdownInlineCodeStyle = fg(lipgloss.Color(t.MarkdownCode)).Background(lipgloss.Color(t.MarkdownCodeBg))
	MarkdownLinkStyle = fg(lipgloss.Color(t.MarkdownLink)).Underline(true)
}
