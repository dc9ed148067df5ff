package controller

import (
	"context"
	"strings"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// TextGateway is the slice of the gateway client used for text generation.
type TextGateway interface {
	GenerateText(ctx context.Context, req api.TextRequest) (*api.TextResponse, error)
}

// Text drives the text-generation capability.
type Text struct {
	base
	gw      TextGateway
	history Recorder
	owner   string
}

// NewText creates a text controller for the given principal.
func NewText(gw TextGateway, history Recorder, ownerUID string) *Text {
	return &Text{gw: gw, history: history, owner: ownerUID}
}

// Generate submits a prompt and returns the generated text.
func (t *Text) Generate(ctx context.Context, prompt, systemInstruction, model string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", utils.NewValidationError("prompt", "prompt is required")
	}

	var result string
	err := t.run(func() error {
		resp, err := t.gw.GenerateText(ctx, api.TextRequest{
			Prompt:            prompt,
			SystemInstruction: systemInstruction,
			Model:             model,
		})
		if err != nil {
			return err
		}
		result = resp.Result

		record(ctx, t.history, t.owner, models.TextGeneration{
			Prompt:            prompt,
			SystemInstruction: systemInstruction,
			Model:             model,
			Result:            result,
		})
		return nil
	})
	return result, err
}
