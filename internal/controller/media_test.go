package controller

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

type fakeMediaGateway struct {
	videoCalls      []api.VideoRequest
	ttsCalls        []api.TTSRequest
	multimodalCalls []api.MultimodalRequest
	blob            []byte
	contentType     string
	result          string
	err             error
}

func (g *fakeMediaGateway) GenerateVideo(ctx context.Context, req api.VideoRequest) ([]byte, string, error) {
	g.videoCalls = append(g.videoCalls, req)
	if g.err != nil {
		return nil, "", g.err
	}
	return g.blob, g.contentType, nil
}

func (g *fakeMediaGateway) Synthesize(ctx context.Context, req api.TTSRequest) ([]byte, string, error) {
	g.ttsCalls = append(g.ttsCalls, req)
	if g.err != nil {
		return nil, "", g.err
	}
	return g.blob, g.contentType, nil
}

func (g *fakeMediaGateway) Transcribe(ctx context.Context, req api.TranscribeRequest) (*api.TranscribeResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &api.TranscribeResponse{Result: g.result}, nil
}

func (g *fakeMediaGateway) Multimodal(ctx context.Context, req api.MultimodalRequest) (*api.MultimodalResponse, error) {
	g.multimodalCalls = append(g.multimodalCalls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &api.MultimodalResponse{Result: g.result}, nil
}

func (g *fakeMediaGateway) VoiceChat(ctx context.Context, req api.VoiceChatRequest) (*api.VoiceChatResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &api.VoiceChatResponse{Transcript: "hi", Text: g.result}, nil
}

// stubFrameSource serves a solid-color frame for every timestamp.
type stubFrameSource struct {
	duration time.Duration
	seeks    []time.Duration
}

func (s *stubFrameSource) Duration() time.Duration { return s.duration }

func (s *stubFrameSource) Seek(ts time.Duration) error {
	s.seeks = append(s.seeks, ts)
	return nil
}

func (s *stubFrameSource) Capture() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	return img, nil
}

func TestMediaGenerateVideoDefaultsAspect(t *testing.T) {
	gw := &fakeMediaGateway{blob: []byte{1, 2, 3}, contentType: "video/mp4"}
	rec := &fakeRecorder{}
	ctrl := NewMedia(gw, rec, "u1")

	blob, err := ctrl.GenerateVideo(context.Background(), "a sunrise", "", "", "")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, blob.Data)
	require.Equal(t, "video/mp4", blob.ContentType)

	require.Len(t, gw.videoCalls, 1)
	require.Equal(t, "16:9", gw.videoCalls[0].AspectRatio)

	records := rec.byType(models.CapVideoGeneration)
	require.Len(t, records, 1)
	require.Equal(t, "a sunrise", records[0].Data["prompt"])
}

func TestMediaSynthesize(t *testing.T) {
	gw := &fakeMediaGateway{blob: []byte{9}, contentType: "audio/mpeg"}
	rec := &fakeRecorder{}
	ctrl := NewMedia(gw, rec, "u1")

	blob, err := ctrl.Synthesize(context.Background(), "hello world", "aurora")
	require.NoError(t, err)
	require.Equal(t, "audio/mpeg", blob.ContentType)

	records := rec.byType(models.CapTextToSpeech)
	require.Len(t, records, 1)
	require.Equal(t, "aurora", records[0].Data["voiceName"])

	_, err = ctrl.Synthesize(context.Background(), "  ", "aurora")
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestMediaTranscribeRejectsBadMime(t *testing.T) {
	ctrl := NewMedia(&fakeMediaGateway{}, &fakeRecorder{}, "u1")

	_, err := ctrl.Transcribe(context.Background(), "AAAA", "image/png")
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "mimeType", ve.Field)
}

func TestMediaAnalyzeVideoSamplesFrames(t *testing.T) {
	gw := &fakeMediaGateway{result: "a dog chasing a ball"}
	rec := &fakeRecorder{}
	ctrl := NewMedia(gw, rec, "u1")

	src := &stubFrameSource{duration: 10 * time.Second}
	result, err := ctrl.AnalyzeVideo(context.Background(), src, "what happens?", 5)
	require.NoError(t, err)
	require.Equal(t, "a dog chasing a ball", result)

	// Five evenly spaced seeks, in order.
	require.Equal(t, []time.Duration{
		0, 2 * time.Second, 4 * time.Second, 6 * time.Second, 8 * time.Second,
	}, src.seeks)

	require.Len(t, gw.multimodalCalls, 1)
	require.Len(t, gw.multimodalCalls[0].Parts, 5)
	require.Equal(t, "image/jpeg", gw.multimodalCalls[0].Parts[0].MimeType)
	require.Equal(t, "what happens?", gw.multimodalCalls[0].Prompt)

	records := rec.byType(models.CapVideoAnalysis)
	require.Len(t, records, 1)
	require.Equal(t, "5", records[0].Data["frames"])
}

func TestMediaVoiceTurn(t *testing.T) {
	gw := &fakeMediaGateway{result: "spoken reply"}
	ctrl := NewMedia(gw, &fakeRecorder{}, "u1")

	resp, err := ctrl.VoiceTurn(context.Background(), "AAAA", "audio/wav", nil)
	require.NoError(t, err)
	require.Equal(t, "spoken reply", resp.Text)

	_, err = ctrl.VoiceTurn(context.Background(), "", "audio/wav", nil)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
}
