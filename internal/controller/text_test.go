package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

type fakeTextGateway struct {
	calls []api.TextRequest
	resp  string
	err   error
}

func (g *fakeTextGateway) GenerateText(ctx context.Context, req api.TextRequest) (*api.TextResponse, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &api.TextResponse{Result: g.resp}, nil
}

func TestTextGenerate(t *testing.T) {
	gw := &fakeTextGateway{resp: "a poem"}
	rec := &fakeRecorder{}
	ctrl := NewText(gw, rec, "u1")

	result, err := ctrl.Generate(context.Background(), "write a poem", "be brief", "")
	require.NoError(t, err)
	require.Equal(t, "a poem", result)
	require.False(t, ctrl.Loading())
	require.Empty(t, ctrl.Err())

	records := rec.byType(models.CapTextGeneration)
	require.Len(t, records, 1)
	require.Equal(t, "u1", records[0].UserID)
	require.Equal(t, "write a poem", records[0].Data["prompt"])
	require.Equal(t, "be brief", records[0].Data["systemInstruction"])
	require.Equal(t, "a poem", records[0].Data["result"])
	require.NotContains(t, records[0].Data, "model")
}

func TestTextGenerateRequiresPrompt(t *testing.T) {
	gw := &fakeTextGateway{}
	ctrl := NewText(gw, &fakeRecorder{}, "u1")

	_, err := ctrl.Generate(context.Background(), "   ", "", "")
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "prompt", ve.Field)
	require.Empty(t, gw.calls, "validation failures must not reach the gateway")
}

func TestTextGenerateGatewayFailure(t *testing.T) {
	gw := &fakeTextGateway{err: errGateway}
	rec := &fakeRecorder{}
	ctrl := NewText(gw, rec, "u1")

	_, err := ctrl.Generate(context.Background(), "hello", "", "")
	require.ErrorIs(t, err, errGateway)
	require.False(t, ctrl.Loading(), "loading must clear on failure")
	require.Equal(t, errGateway.Error(), ctrl.Err())
	require.Empty(t, rec.records, "no record for a failed call")

	// A later success clears the sticky error.
	gw.err = nil
	gw.resp = "ok"
	_, err = ctrl.Generate(context.Background(), "hello", "", "")
	require.NoError(t, err)
	require.Empty(t, ctrl.Err())
}

func TestTextGenerateHistoryFailureSwallowed(t *testing.T) {
	gw := &fakeTextGateway{resp: "ok"}
	rec := &fakeRecorder{err: errGateway}
	ctrl := NewText(gw, rec, "u1")

	result, err := ctrl.Generate(context.Background(), "hello", "", "")
	require.NoError(t, err, "a failed history write never surfaces")
	require.Equal(t, "ok", result)
	require.Empty(t, ctrl.Err())
}
