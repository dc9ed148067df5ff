package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// CapabilityType tags an activity record with the AI capability that
// produced it. The set is closed; new capabilities add a constant here.
type CapabilityType string

const (
	CapTextGeneration  CapabilityType = "text-generation"
	CapImageGeneration CapabilityType = "image-generation"
	CapImageAnalysis   CapabilityType = "image-analysis"
	CapImageEdit       CapabilityType = "image-edit"
	CapCodeAssistant   CapabilityType = "code-assistant"
	CapTripPlanning    CapabilityType = "trip-planning"
	CapVideoGeneration CapabilityType = "video-generation"
	CapVideoAnalysis   CapabilityType = "video-analysis"
	CapTextToSpeech    CapabilityType = "text-to-speech"
	CapTranscription   CapabilityType = "transcription"
)

// Activity is one immutable log entry per AI invocation. Records are never
// edited in place: "replay" copies fields back into a live request, it does
// not mutate the stored record.
type Activity struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Type      CapabilityType    `json:"type"`
	CreatedAt time.Time         `json:"createdAt"`
	Data      map[string]string `json:"data"`
}

// Payload is one capability-specific variant of activity data. Each variant
// declares its own fields instead of an open-ended map, and flattens itself
// for storage via Data.
type Payload interface {
	Type() CapabilityType
	Data() map[string]string
}

// NewActivity builds an immutable activity record for the given owner from
// a typed payload.
func NewActivity(userID string, p Payload) Activity {
	return Activity{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      p.Type(),
		CreatedAt: time.Now().UTC(),
		Data:      p.Data(),
	}
}

// TextGeneration is the payload for the /text capability.
type TextGeneration struct {
	Prompt            string
	SystemInstruction string
	Model             string
	Result            string
}

func (p TextGeneration) Type() CapabilityType { return CapTextGeneration }

func (p TextGeneration) Data() map[string]string {
	d := map[string]string{"prompt": p.Prompt, "result": p.Result}
	if p.SystemInstruction != "" {
		d["systemInstruction"] = p.SystemInstruction
	}
	if p.Model != "" {
		d["model"] = p.Model
	}
	return d
}

// ImageGeneration is the payload for the /image capability. ImageURL holds
// the rendered data URL of the generated image.
type ImageGeneration struct {
	Prompt   string
	Mode     string
	ImageURL string
}

func (p ImageGeneration) Type() CapabilityType { return CapImageGeneration }

func (p ImageGeneration) Data() map[string]string {
	return map[string]string{"prompt": p.Prompt, "mode": p.Mode, "imageUrl": p.ImageURL}
}

// ImageAnalysis is the payload for the /analyze capability.
type ImageAnalysis struct {
	Prompt string
	Result string
}

func (p ImageAnalysis) Type() CapabilityType { return CapImageAnalysis }

func (p ImageAnalysis) Data() map[string]string {
	return map[string]string{"prompt": p.Prompt, "result": p.Result}
}

// ImageEdit is the payload for the /edit capability.
type ImageEdit struct {
	EditPrompt string
	ImageURL   string
}

func (p ImageEdit) Type() CapabilityType { return CapImageEdit }

func (p ImageEdit) Data() map[string]string {
	return map[string]string{"editPrompt": p.EditPrompt, "imageUrl": p.ImageURL}
}

// CodeAssist is the payload for the /code capability.
type CodeAssist struct {
	Mode     string
	Language string
	Result   string
}

func (p CodeAssist) Type() CapabilityType { return CapCodeAssistant }

func (p CodeAssist) Data() map[string]string {
	return map[string]string{"mode": p.Mode, "language": p.Language, "result": p.Result}
}

// VideoGeneration is the payload for the /video capability. The binary blob
// itself is not persisted, only the request parameters.
type VideoGeneration struct {
	Prompt      string
	AspectRatio string
}

func (p VideoGeneration) Type() CapabilityType { return CapVideoGeneration }

func (p VideoGeneration) Data() map[string]string {
	return map[string]string{"prompt": p.Prompt, "aspectRatio": p.AspectRatio}
}

// VideoAnalysis is the payload for frame-sampled video analysis via the
// /multimodal capability.
type VideoAnalysis struct {
	Prompt     string
	FrameCount int
	Result     string
}

func (p VideoAnalysis) Type() CapabilityType { return CapVideoAnalysis }

func (p VideoAnalysis) Data() map[string]string {
	return map[string]string{
		"prompt": p.Prompt,
		"frames": strconv.Itoa(p.FrameCount),
		"result": p.Result,
	}
}

// TextToSpeech is the payload for the /tts capability.
type TextToSpeech struct {
	Text      string
	VoiceName string
}

func (p TextToSpeech) Type() CapabilityType { return CapTextToSpeech }

func (p TextToSpeech) Data() map[string]string {
	return map[string]string{"text": p.Text, "voiceName": p.VoiceName}
}

// Transcription is the payload for the /transcribe capability.
type Transcription struct {
	MimeType string
	Result   string
}

func (p Transcription) Type() CapabilityType { return CapTranscription }

func (p Transcription) Data() map[string]string {
	return map[string]string{"mimeType": p.MimeType, "result": p.Result}
}

