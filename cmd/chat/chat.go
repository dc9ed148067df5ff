package chat

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/controller"
	"github.com/lumenlabs/lumen-cli/internal/format"
)

// ChatCmd represents the chat command
var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat sessions with the model",
	Long: `Chat with the model in named sessions.

Sessions and their message logs live in your local history store. The
first message of a session becomes its title. Grounding citations
returned with an answer are listed below it.`,
}

// listCmd represents the chat list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your chat sessions",
	RunE:  runList,
}

// newCmd represents the chat new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new chat session",
	RunE:  runNew,
}

// sendCmd represents the chat send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message in a session",
	RunE:  runSend,
}

// showCmd represents the chat show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a session's transcript",
	RunE:  runShow,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewChat(a.Client, a.Store, principal.UID)
	sessions, err := ctrl.Sessions(cmd.Context())
	if err != nil {
		return err
	}

	return format.Print(format.ChatList(sessions))
}

func runNew(cmd *cobra.Command, args []string) error {
	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewChat(a.Client, a.Store, principal.UID)
	session, err := ctrl.NewSession(cmd.Context())
	if err != nil {
		return err
	}

	format.PrintSuccess("✓ Session created: %s", session.ID)
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	sessionID, _ := cmd.Flags().GetString("session")
	message, _ := cmd.Flags().GetString("message")
	reasoning, _ := cmd.Flags().GetBool("reasoning")
	search, _ := cmd.Flags().GetBool("search")

	if message == "" {
		return errors.New("message is required")
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewChat(a.Client, a.Store, principal.UID)

	// Without --session the message starts a fresh conversation.
	if sessionID == "" {
		session, err := ctrl.NewSession(cmd.Context())
		if err != nil {
			return err
		}
		sessionID = session.ID
		format.PrintInfo("Started session %s", sessionID)
	}

	reply, err := ctrl.Send(cmd.Context(), sessionID, message, controller.ChatOptions{
		ReasoningMode: reasoning,
		EnableSearch:  search,
	})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	fmt.Println(reply.Text)
	if len(reply.Citations) > 0 {
		fmt.Println("\nSources:")
		for _, c := range reply.Citations {
			fmt.Printf("  - %s (%s)\n", c.Title, c.URI)
		}
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		return errors.New("session is required")
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewChat(a.Client, a.Store, principal.UID)
	messages, err := ctrl.Messages(cmd.Context(), sessionID)
	if err != nil {
		return err
	}

	return format.Print(format.MessageList(messages))
}

func init() {
	sendCmd.Flags().StringP("session", "s", "", "Session id (a new session is created if omitted)")
	sendCmd.Flags().StringP("message", "m", "", "The message to send")
	sendCmd.Flags().Bool("reasoning", false, "Enable reasoning mode")
	sendCmd.Flags().Bool("search", false, "Enable web search grounding")
	sendCmd.MarkFlagRequired("message")

	showCmd.Flags().StringP("session", "s", "", "Session id")
	showCmd.MarkFlagRequired("session")

	ChatCmd.AddCommand(listCmd)
	ChatCmd.AddCommand(newCmd)
	ChatCmd.AddCommand(sendCmd)
	ChatCmd.AddCommand(showCmd)
}
