package cmd

import (
	"errors"
	"fmt"
	"strings"

	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/msgboard/msgboard/internal/app"
	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/config"
	"github.com/msgboard/msgboard/internal/logger"
	"github.com/msgboard/msgboard/internal/ui"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session for later commands",
	RunE:  runLogin,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long: `Creates an account with the hosted service. Depending on the project's
settings you are signed in immediately or asked to confirm your email first.`,
	RunE: runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	RunE:  runLogout,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVarP(&loginEmail, "email", "e", "", "Prefill the email field")
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(logoutCmd)
}

// errAborted is returned when the user cancels a prompt
var errAborted = errors.New("aborted")

// promptCredentials asks for an email and password. Tests replace it.
var promptCredentials = huhCredentials

func huhCredentials(title, email string) (string, string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(ui.EmailCharLimit).
				Validate(required("email")).
				Value(&email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(ui.PasswordCharLimit).
				Validate(required("password")).
				Value(&password),
		).Title(title),
	).WithTheme(formTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", errAborted
		}
		return "", "", err
	}
	return strings.TrimSpace(email), password, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// formTheme matches the prompt colors to the TUI's current theme
func formTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)
		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ui.ColorPrimary)
		t.Focused.Title = lipgloss.NewStyle().Foreground(ui.ColorText).Bold(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(ui.ColorWarning).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ui.ColorWarning)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ui.ColorSecondary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ui.ColorTextMuted)
		t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ui.ColorText)
		t.Blurred = t.Focused
		t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Group.Title = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true)
		return t
	})
}

func applyTheme(cfg *config.Config) {
	if name := cfg.GetTheme(); name != "" {
		ui.SetThemeByName(name)
	}
}

// defaultEmail is the --email flag, else the last email that signed in
func defaultEmail(cfg *config.Config) string {
	if loginEmail != "" {
		return loginEmail
	}
	if cfg != nil {
		return cfg.GetLastEmail()
	}
	return ""
}

// rememberEmail saves email as the last one used. Failures only warn.
func rememberEmail(cmd *cobra.Command, cfg *config.Config, email string) {
	if cfg == nil || !cfg.SetLastEmail(email) {
		return
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	applyTheme(cfg)
	email, password, err := promptCredentials("Log in to msgboard", defaultEmail(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	sess, err := svc.SignInWithPassword(ctx, email, password)
	if err != nil {
		logger.WithComponent("cmd").Warn("login failed", "email", email, "error", err)
		return fmt.Errorf("login failed: %s", backend.UserMessage(err))
	}

	rememberEmail(cmd, cfg, email)
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", sess.User.Email)
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	applyTheme(cfg)
	email, password, err := promptCredentials("Create a msgboard account", defaultEmail(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	sess, err := svc.SignUp(ctx, email, password)
	if err != nil {
		logger.WithComponent("cmd").Warn("signup failed", "email", email, "error", err)
		return fmt.Errorf("signup failed: %s", app.SignupErrorText(err))
	}

	rememberEmail(cmd, cfg, email)
	if sess == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Check your email to confirm it, then run 'msgboard login'.\n", email)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Account created. Signed in as %s\n", sess.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	sess, err := svc.GetSession(ctx)
	if err != nil {
		return fmt.Errorf("error reading session: %w", err)
	}
	if sess == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
		return nil
	}

	if err := svc.SignOut(ctx); err != nil {
		logger.WithComponent("cmd").Error("sign out failed", "error", err)
		return fmt.Errorf("sign out failed: %s\n\nRun 'msgboard clean' to remove the stored session anyway", backend.UserMessage(err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", sess.User.Email)
	return nil
}
