package ui

import (
	"testing"

	"charm.land/lipgloss/v2"
)

func TestThemeNames_AllBuiltin(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(BuiltinThemes) {
		t.Errorf("ThemeNames() has %d entries, BuiltinThemes has %d", len(names), len(BuiltinThemes))
	}
	for _, name := range names {
		theme, ok := BuiltinThemes[name]
		if !ok {
			t.Errorf("theme %q listed but not defined", name)
			continue
		}
		if theme.Primary == "" || theme.Text == "" || theme.Bg == "" || theme.Error == "" {
			t.Errorf("theme %q is missing core colors", name)
		}
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	if got := GetTheme("nope"); got.Name != BuiltinThemes[DefaultTheme].Name {
		t.Errorf("GetTheme(unknown) = %q, want default", got.Name)
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(DefaultTheme)

	SetThemeByName(string(ThemeNord))

	if CurrentThemeName() != ThemeNord {
		t.Errorf("CurrentThemeName() = %q, want nord", CurrentThemeName())
	}
	r1, g1, b1, _ := ColorPrimary.RGBA()
	r2, g2, b2, _ := lipgloss.Color(BuiltinThemes[ThemeNord].Primary).RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("SetTheme should regenerate colors")
	}
}

func TestTheme_GetBorderFocus(t *testing.T) {
	if got := (Theme{Primary: "#111111"}).GetBorderFocus(); got != "#111111" {
		t.Errorf("GetBorderFocus() = %q, want Primary", got)
	}
	if got := (Theme{Primary: "#111111", BorderFocus: "#222222"}).GetBorderFocus(); got != "#222222" {
		t.Errorf("GetBorderFocus() = %q, want BorderFocus", got)
	}
}

func TestSetTheme_UnknownSelectsDefault(t *testing.T) {
	defer SetTheme(DefaultTheme)

	SetTheme(ThemeDracula)
	SetThemeByName("no-such-theme")

	if got := CurrentThemeName(); got != DefaultTheme {
		t.Errorf("CurrentThemeName() = %q, want %q", got, DefaultTheme)
	}
}

func TestThemeNames_ReturnsCopy(t *testing.T) {
	names := ThemeNames()
	names[0] = "changed"

	if ThemeNames()[0] != ThemeDarkPurple {
		t.Error("ThemeNames should not expose its backing slice")
	}
}

func TestSetTheme_RebuildsStyles(t *testing.T) {
	defer SetTheme(DefaultTheme)

	SetTheme(ThemeLight)

	got := FlashErrorStyle.GetForeground()
	r1, g1, b1, _ := got.RGBA()
	r2, g2, b2, _ := lipgloss.Color(BuiltinThemes[ThemeLight].Error).RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("FlashErrorStyle should use the light theme's error color")
	}
}
