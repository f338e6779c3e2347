package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msgboard/msgboard/internal/config"
	"github.com/msgboard/msgboard/internal/ui"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

var notificationsCmd = &cobra.Command{
	Use:       "notifications [on|off]",
	Short:     "Show or set desktop notifications for new messages",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runNotifications,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		current := ui.ThemeName(cfg.GetTheme())
		if current == "" {
			current = ui.DefaultTheme
		}
		for _, name := range ui.ThemeNames() {
			marker := "  "
			if name == current {
				marker = "* "
			}
			fmt.Fprintf(out, "%s%-12s %s\n", marker, name, ui.GetTheme(name).Name)
		}
		return nil
	}

	name := ui.ThemeName(strings.ToLower(args[0]))
	if _, ok := ui.BuiltinThemes[name]; !ok {
		return fmt.Errorf("unknown theme %q; run 'msgboard theme' to list themes", args[0])
	}
	cfg.SetTheme(string(name))
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Theme set to %s\n", ui.GetTheme(name).Name)
	return nil
}

func runNotifications(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, onOff(cfg.GetNotificationsEnabled()))
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "on":
		cfg.SetNotificationsEnabled(true)
	case "off":
		cfg.SetNotificationsEnabled(false)
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Notifications %s\n", onOff(cfg.GetNotificationsEnabled()))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
