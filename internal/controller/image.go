package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// ImageGateway is the slice of the gateway client used for image work.
type ImageGateway interface {
	GenerateImage(ctx context.Context, req api.ImageRequest) (*api.ImageResponse, error)
	AnalyzeImage(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error)
	EditImage(ctx context.Context, req api.EditRequest) (*api.ImageResponse, error)
}

// Image drives the image generate/analyze/edit capabilities.
type Image struct {
	base
	gw      ImageGateway
	history Recorder
	owner   string
}

// NewImage creates an image controller for the given principal.
func NewImage(gw ImageGateway, history Recorder, ownerUID string) *Image {
	return &Image{gw: gw, history: history, owner: ownerUID}
}

// DataURL renders base64 image data as a browser-displayable data URL.
func DataURL(mimeType, data string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, data)
}

// Generate submits a prompt and returns the generated image as a data URL.
// Mode selects between "quality" and "realistic" rendering.
func (i *Image) Generate(ctx context.Context, prompt, mode string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", utils.NewValidationError("prompt", "prompt is required")
	}
	if mode != api.ImageModeQuality && mode != api.ImageModeRealistic {
		return "", utils.NewValidationError("mode", "mode must be quality or realistic")
	}

	var url string
	err := i.run(func() error {
		resp, err := i.gw.GenerateImage(ctx, api.ImageRequest{Prompt: prompt, Mode: mode})
		if err != nil {
			return err
		}
		url = DataURL(resp.MimeType, resp.ImageData)

		record(ctx, i.history, i.owner, models.ImageGeneration{
			Prompt:   prompt,
			Mode:     mode,
			ImageURL: url,
		})
		return nil
	})
	return url, err
}

// Analyze submits an uploaded image plus a question about it.
func (i *Image) Analyze(ctx context.Context, imageData, mimeType, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", utils.NewValidationError("prompt", "prompt is required")
	}
	if imageData == "" {
		return "", utils.NewValidationError("image", "image is required")
	}
	if err := utils.ValidateImageMime(mimeType); err != nil {
		return "", utils.NewValidationError("mimeType", err.Error())
	}

	var result string
	err := i.run(func() error {
		resp, err := i.gw.AnalyzeImage(ctx, api.AnalyzeRequest{
			ImageData: imageData,
			MimeType:  mimeType,
			Prompt:    prompt,
		})
		if err != nil {
			return err
		}
		result = resp.Result

		record(ctx, i.history, i.owner, models.ImageAnalysis{
			Prompt: prompt,
			Result: result,
		})
		return nil
	})
	return result, err
}

// Edit submits an uploaded image plus an edit instruction and returns the
// edited image as a data URL.
func (i *Image) Edit(ctx context.Context, imageData, mimeType, editPrompt string) (string, error) {
	if strings.TrimSpace(editPrompt) == "" {
		return "", utils.NewValidationError("editPrompt", "edit prompt is required")
	}
	if imageData == "" {
		return "", utils.NewValidationError("image", "image is required")
	}
	if err := utils.ValidateImageMime(mimeType); err != nil {
		return "", utils.NewValidationError("mimeType", err.Error())
	}

	var url string
	err := i.run(func() error {
		resp, err := i.gw.EditImage(ctx, api.EditRequest{
			ImageData:  imageData,
			MimeType:   mimeType,
			EditPrompt: editPrompt,
		})
		if err != nil {
			return err
		}
		url = DataURL(resp.MimeType, resp.ImageData)

		record(ctx, i.history, i.owner, models.ImageEdit{
			EditPrompt: editPrompt,
			ImageURL:   url,
		})
		return nil
	})
	return url, err
}
