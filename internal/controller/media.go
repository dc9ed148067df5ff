package controller

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/media"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// MediaGateway is the slice of the gateway client used for audio/video
// capabilities.
type MediaGateway interface {
	GenerateVideo(ctx context.Context, req api.VideoRequest) ([]byte, string, error)
	Synthesize(ctx context.Context, req api.TTSRequest) ([]byte, string, error)
	Transcribe(ctx context.Context, req api.TranscribeRequest) (*api.TranscribeResponse, error)
	Multimodal(ctx context.Context, req api.MultimodalRequest) (*api.MultimodalResponse, error)
	VoiceChat(ctx context.Context, req api.VoiceChatRequest) (*api.VoiceChatResponse, error)
}

// Blob is a binary media result plus its content type.
type Blob struct {
	Data        []byte
	ContentType string
}

// Media drives the video, speech and multimodal capabilities.
type Media struct {
	base
	gw      MediaGateway
	history Recorder
	owner   string
}

// NewMedia creates a media controller for the given principal.
func NewMedia(gw MediaGateway, history Recorder, ownerUID string) *Media {
	return &Media{gw: gw, history: history, owner: ownerUID}
}

// GenerateVideo submits a prompt (with an optional conditioning image) and
// returns the generated video blob.
func (m *Media) GenerateVideo(ctx context.Context, prompt, imageData, mimeType, aspectRatio string) (*Blob, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, utils.NewValidationError("prompt", "prompt is required")
	}
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}

	var blob *Blob
	err := m.run(func() error {
		data, contentType, err := m.gw.GenerateVideo(ctx, api.VideoRequest{
			Prompt:      prompt,
			Image:       imageData,
			MimeType:    mimeType,
			AspectRatio: aspectRatio,
		})
		if err != nil {
			return err
		}
		blob = &Blob{Data: data, ContentType: contentType}

		record(ctx, m.history, m.owner, models.VideoGeneration{
			Prompt:      prompt,
			AspectRatio: aspectRatio,
		})
		return nil
	})
	return blob, err
}

// Synthesize converts text to speech and returns the audio blob.
func (m *Media) Synthesize(ctx context.Context, text, voiceName string) (*Blob, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.NewValidationError("text", "text is required")
	}

	var blob *Blob
	err := m.run(func() error {
		data, contentType, err := m.gw.Synthesize(ctx, api.TTSRequest{
			Text:      text,
			VoiceName: voiceName,
		})
		if err != nil {
			return err
		}
		blob = &Blob{Data: data, ContentType: contentType}

		record(ctx, m.history, m.owner, models.TextToSpeech{
			Text:      text,
			VoiceName: voiceName,
		})
		return nil
	})
	return blob, err
}

// Transcribe converts recorded audio to text.
func (m *Media) Transcribe(ctx context.Context, audioData, mimeType string) (string, error) {
	if audioData == "" {
		return "", utils.NewValidationError("audio", "audio is required")
	}
	if err := utils.ValidateAudioMime(mimeType); err != nil {
		return "", utils.NewValidationError("mimeType", err.Error())
	}

	var result string
	err := m.run(func() error {
		resp, err := m.gw.Transcribe(ctx, api.TranscribeRequest{
			AudioData: audioData,
			MimeType:  mimeType,
		})
		if err != nil {
			return err
		}
		result = resp.Result

		record(ctx, m.history, m.owner, models.Transcription{
			MimeType: mimeType,
			Result:   result,
		})
		return nil
	})
	return result, err
}

// AnalyzeVideo samples evenly spaced frames from the source and submits
// them with the prompt as one multimodal request.
func (m *Media) AnalyzeVideo(ctx context.Context, src media.FrameSource, prompt string, frameCount int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", utils.NewValidationError("prompt", "prompt is required")
	}

	var result string
	err := m.run(func() error {
		frames, err := media.SampleFrames(ctx, src, frameCount)
		if err != nil {
			return err
		}

		parts := make([]api.Part, 0, len(frames))
		for _, f := range frames {
			parts = append(parts, api.Part{
				MimeType: f.MimeType,
				Data:     base64.StdEncoding.EncodeToString(f.Data),
			})
		}

		resp, err := m.gw.Multimodal(ctx, api.MultimodalRequest{Parts: parts, Prompt: prompt})
		if err != nil {
			return err
		}
		result = resp.Result

		record(ctx, m.history, m.owner, models.VideoAnalysis{
			Prompt:     prompt,
			FrameCount: len(frames),
			Result:     result,
		})
		return nil
	})
	return result, err
}

// VoiceTurn sends one spoken turn with the prior conversation and returns
// the reply text plus an optional spoken reply blob.
func (m *Media) VoiceTurn(ctx context.Context, audioData, mimeType string, history []api.ChatTurn) (*api.VoiceChatResponse, error) {
	if audioData == "" {
		return nil, utils.NewValidationError("audio", "audio is required")
	}
	if err := utils.ValidateAudioMime(mimeType); err != nil {
		return nil, utils.NewValidationError("mimeType", err.Error())
	}

	var resp *api.VoiceChatResponse
	err := m.run(func() error {
		r, err := m.gw.VoiceChat(ctx, api.VoiceChatRequest{
			AudioData: audioData,
			MimeType:  mimeType,
			History:   history,
		})
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	return resp, err
}
