package image

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/controller"
	"github.com/lumenlabs/lumen-cli/internal/format"
)

// ImageCmd represents the image command
var ImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Generate, edit and analyze images",
	Long: `Image capabilities of the gateway.

generate creates an image from a prompt, edit applies an instruction to an
uploaded image, and analyze answers a question about one.`,
}

// generateCmd represents the image generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an image from a prompt",
	RunE:  runGenerate,
}

// editCmd represents the image edit command
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an image with an instruction",
	RunE:  runEdit,
}

// analyzeCmd represents the image analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ask a question about an image",
	RunE:  runAnalyze,
}

// loadImage reads a local image file and returns its base64 payload and
// detected MIME type.
func loadImage(path string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("could not read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), http.DetectContentType(raw), nil
}

// writeDataURL saves a data URL result to a file, or prints it when no
// output path was given.
func writeDataURL(dataURL, outPath string) error {
	if outPath == "" {
		fmt.Println(dataURL)
		return nil
	}

	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return fmt.Errorf("unexpected image result format")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return fmt.Errorf("could not decode image result: %w", err)
	}
	if err := os.WriteFile(outPath, raw, 0644); err != nil {
		return err
	}
	format.PrintSuccess("✓ Image written to %s", outPath)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prompt, _ := cmd.Flags().GetString("prompt")
	mode, _ := cmd.Flags().GetString("mode")
	outPath, _ := cmd.Flags().GetString("out")

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewImage(a.Client, a.Store, principal.UID)
	dataURL, err := ctrl.Generate(cmd.Context(), prompt, mode)
	if err != nil {
		return fmt.Errorf("image generation failed: %w", err)
	}

	return writeDataURL(dataURL, outPath)
}

func runEdit(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	editPrompt, _ := cmd.Flags().GetString("prompt")
	outPath, _ := cmd.Flags().GetString("out")

	imageData, mimeType, err := loadImage(file)
	if err != nil {
		return err
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

	ctrl := controller.NewImage(a.Client, a.Store, principal.UID)
	dataURL, err := ctrl.Edit(cmd.Context(), imageData, mimeType, editPrompt)
	if err != nil {
		return fmt.Errorf("image edit failed: %w", err)
	}

	return writeDataURL(dataURL, outPath)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	prompt, _ := cmd.Flags().GetString("prompt")

	imageData, mimeType, err := loadImage(file)
	if err != nil {
		return err
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

	ctrl := controller.NewImage(a.Client, a.Store, principal.UID)
	result, err := ctrl.Analyze(cmd.Context(), imageData, mimeType, prompt)
	if err != nil {
		return fmt.Errorf("image analysis failed: %w", err)
	}

	fmt.Println(result)
	return nil
}

func init() {
	generateCmd.Flags().StringP("prompt", "p", "", "The prompt to generate from")
	generateCmd.Flags().StringP("mode", "m", "quality", "Rendering mode (quality, realistic)")
	generateCmd.Flags().StringP("out", "f", "", "Write the image to this file")
	generateCmd.MarkFlagRequired("prompt")

	editCmd.Flags().StringP("file", "f", "", "Image file to edit")
	editCmd.Flags().StringP("prompt", "p", "", "The edit instruction")
	editCmd.Flags().String("out", "", "Write the edited image to this file")
	editCmd.MarkFlagRequired("file")
	editCmd.MarkFlagRequired("prompt")

	analyzeCmd.Flags().StringP("file", "f", "", "Image file to analyze")
	analyzeCmd.Flags().StringP("prompt", "p", "", "The question about the image")
	analyzeCmd.MarkFlagRequired("file")
	analyzeCmd.MarkFlagRequired("prompt")

	ImageCmd.AddCommand(generateCmd)
	ImageCmd.AddCommand(editCmd)
	ImageCmd.AddCommand(analyzeCmd)
}
