package code

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/controller"
)

// CodeCmd represents the code command
var CodeCmd = &cobra.Command{
	Use:   "code",
	Short: "Code assistant",
	Long: `Submit code to the gateway's code assistant.

Modes: explain, debug, optimize, convert. Debug mode requires a
description of the error you are seeing (--error).`,
	RunE: runAssist,
}

func runAssist(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	mode, _ := cmd.Flags().GetString("mode")
	language, _ := cmd.Flags().GetString("language")
	errorDesc, _ := cmd.Flags().GetString("error")

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read code file: %w", err)
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

	ctrl := controller.NewCode(a.Client, a.Store, principal.UID)
	result, err := ctrl.Assist(cmd.Context(), string(raw), mode, language, errorDesc)
	if err != nil {
		return fmt.Errorf("code assist failed: %w", err)
	}

	fmt.Println(result)
	return nil
}

func init() {
	CodeCmd.Flags().StringP("file", "f", "", "Code file to submit")
	CodeCmd.Flags().StringP("mode", "m", controller.CodeModeExplain, "Assistant mode (explain, debug, optimize, convert)")
	CodeCmd.Flags().StringP("language", "l", "", "Source language")
	CodeCmd.Flags().StringP("error", "e", "", "Error description (required in debug mode)")
	CodeCmd.MarkFlagRequired("file")
}
