package text

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/controller"
)

// TextCmd represents the text command
var TextCmd = &cobra.Command{
	Use:   "text",
	Short: "Generate text from a prompt",
	Long: `Generate text with the gateway's text capability.

The prompt is required; an optional system instruction and model override
can be supplied via flags. Each result is recorded in your history.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prompt, _ := cmd.Flags().GetString("prompt")
	system, _ := cmd.Flags().GetString("system")
	model, _ := cmd.Flags().GetString("model")

	if prompt == "" {
		return errors.New("prompt is required")
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

	ctrl := controller.NewText(a.Client, a.Store, principal.UID)
	result, err := ctrl.Generate(cmd.Context(), prompt, system, model)
	if err != nil {
		return fmt.Errorf("text generation failed: %w", err)
	}

	fmt.Println(result)
	return nil
}

func init() {
	TextCmd.Flags().StringP("prompt", "p", "", "The prompt to generate from")
	TextCmd.Flags().StringP("system", "s", "", "Optional system instruction")
	TextCmd.Flags().StringP("model", "m", "", "Optional model identifier")
	TextCmd.MarkFlagRequired("prompt")
}
