package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

type fakeImageGateway struct {
	generateCalls []api.ImageRequest
	analyzeCalls  []api.AnalyzeRequest
	editCalls     []api.EditRequest
	imageData     string
	mimeType      string
	analysis      string
	err           error
}

func (g *fakeImageGateway) GenerateImage(ctx context.Context, req api.ImageRequest) (*api.ImageResponse, error) {
	g.generateCalls = append(g.generateCalls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &api.ImageResponse{ImageData: g.imageData, MimeType: g.mimeType}, nil
}

func (g *fakeImageGateway) AnalyzeImage(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error) {
	g.analyzeCalls = append(g.analyzeCalls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &api.AnalyzeResponse{Result: g.analysis}, nil
}

func (g *fakeImageGateway) EditImage(ctx context.Context, req api.EditRequest) (*api.ImageResponse, error) {
	g.editCalls = append(g.editCalls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &api.ImageResponse{ImageData: g.imageData, MimeType: g.mimeType}, nil
}

func TestImageGenerate(t *testing.T) {
	gw := &fakeImageGateway{imageData: "AAAA", mimeType: "image/png"}
	rec := &fakeRecorder{}
	ctrl := NewImage(gw, rec, "u1")

	url, err := ctrl.Generate(context.Background(), "a cat", api.ImageModeRealistic)
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,AAAA", url)

	records := rec.byType(models.CapImageGeneration)
	require.Len(t, records, 1)
	require.Equal(t, "a cat", records[0].Data["prompt"])
	require.Equal(t, "realistic", records[0].Data["mode"])
	require.Equal(t, url, records[0].Data["imageUrl"])
}

func TestImageGenerateValidation(t *testing.T) {
	gw := &fakeImageGateway{}
	ctrl := NewImage(gw, &fakeRecorder{}, "u1")

	tests := []struct {
		name   string
		prompt string
		mode   string
		field  string
	}{
		{"empty prompt", "", api.ImageModeQuality, "prompt"},
		{"unknown mode", "a cat", "sketch", "mode"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ctrl.Generate(context.Background(), tc.prompt, tc.mode)
			var ve *utils.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
	require.Empty(t, gw.generateCalls)
}

func TestImageAnalyze(t *testing.T) {
	gw := &fakeImageGateway{analysis: "a tabby cat on a sofa"}
	rec := &fakeRecorder{}
	ctrl := NewImage(gw, rec, "u1")

	result, err := ctrl.Analyze(context.Background(), "AAAA", "image/jpeg", "what is this?")
	require.NoError(t, err)
	require.Equal(t, "a tabby cat on a sofa", result)

	require.Len(t, gw.analyzeCalls, 1)
	require.Equal(t, "AAAA", gw.analyzeCalls[0].ImageData)

	records := rec.byType(models.CapImageAnalysis)
	require.Len(t, records, 1)
	require.Equal(t, "what is this?", records[0].Data["prompt"])
}

func TestImageAnalyzeRejectsBadMime(t *testing.T) {
	ctrl := NewImage(&fakeImageGateway{}, &fakeRecorder{}, "u1")

	_, err := ctrl.Analyze(context.Background(), "AAAA", "application/pdf", "what is this?")
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "mimeType", ve.Field)
}

func TestImageEdit(t *testing.T) {
	gw := &fakeImageGateway{imageData: "BBBB", mimeType: "image/png"}
	rec := &fakeRecorder{}
	ctrl := NewImage(gw, rec, "u1")

	url, err := ctrl.Edit(context.Background(), "AAAA", "image/png", "make it night")
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,BBBB", url)

	records := rec.byType(models.CapImageEdit)
	require.Len(t, records, 1)
	require.Equal(t, "make it night", records[0].Data["editPrompt"])
}
