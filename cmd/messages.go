package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/logger"
	"github.com/msgboard/msgboard/internal/ui"
)

var messagesCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"ls"},
	Short:   "List messages",
	Args:    cobra.NoArgs,
	RunE:    runMessages,
}

var addMessageCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Post a message",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAddMessage,
}

var plainOutput bool

func init() {
	messagesCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print raw content without formatting")
	messagesCmd.AddCommand(addMessageCmd)
	rootCmd.AddCommand(messagesCmd)
}

var errNotSignedIn = errors.New("not signed in; run 'msgboard login' first")

// signedInService returns a service with a current session
func signedInService(cmd *cobra.Command) (service, *backend.Session, error) {
	svc, err := newService()
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	sess, err := svc.GetSession(ctx)
	if err != nil {
		svc.Close()
		return nil, nil, fmt.Errorf("error reading session: %w", err)
	}
	if sess == nil {
		svc.Close()
		return nil, nil, errNotSignedIn
	}
	return svc, sess, nil
}

func runMessages(cmd *cobra.Command, args []string) error {
	svc, _, err := signedInService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	msgs, err := svc.SelectMessages(ctx)
	if err != nil {
		logger.WithComponent("cmd").Error("failed to fetch messages", "error", err)
		return fmt.Errorf("error fetching messages: %w", err)
	}

	out := cmd.OutOrStdout()
	if plainOutput {
		for _, msg := range msgs {
			fmt.Fprintln(out, msg.Content)
		}
		return nil
	}
	fmt.Fprintln(out, ansi.Strip(ui.RenderMessages(msgs, ui.DefaultWrapWidth)))
	return nil
}

func runAddMessage(cmd *cobra.Command, args []string) error {
	content := strings.Join(args, " ")
	if strings.TrimSpace(content) == "" {
		return errors.New("message is empty")
	}

	svc, _, err := signedInService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	if err := svc.InsertMessage(ctx, content); err != nil {
		logger.WithComponent("cmd").Error("failed to add message", "error", err)
		return fmt.Errorf("error posting message: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Posted.")
	return nil
}
