package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

type fakeCodeGateway struct {
	calls []api.CodeRequest
	resp  string
	err   error
}

func (g *fakeCodeGateway) CodeAssist(ctx context.Context, req api.CodeRequest) (*api.CodeResponse, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &api.CodeResponse{Result: g.resp}, nil
}

func TestCodeAssist(t *testing.T) {
	gw := &fakeCodeGateway{resp: "this function sorts a slice"}
	rec := &fakeRecorder{}
	ctrl := NewCode(gw, rec, "u1")

	result, err := ctrl.Assist(context.Background(), "func Sort()", CodeModeExplain, "go", "")
	require.NoError(t, err)
	require.Equal(t, "this function sorts a slice", result)

	require.Len(t, gw.calls, 1)
	require.Equal(t, "func Sort()", gw.calls[0].Code)
	require.Equal(t, "go", gw.calls[0].Language)

	records := rec.byType(models.CapCodeAssistant)
	require.Len(t, records, 1)
	require.Equal(t, CodeModeExplain, records[0].Data["mode"])
}

func TestCodeAssistDebugFoldsError(t *testing.T) {
	gw := &fakeCodeGateway{resp: "off-by-one in the loop bound"}
	ctrl := NewCode(gw, &fakeRecorder{}, "u1")

	_, err := ctrl.Assist(context.Background(), "for i := 0; i <= n; i++ {}", CodeModeDebug, "go", "index out of range")
	require.NoError(t, err)

	require.Len(t, gw.calls, 1)
	require.Equal(t,
		"for i := 0; i <= n; i++ {}\n\nObserved error:\nindex out of range",
		gw.calls[0].Code)
}

func TestCodeAssistDebugRequiresError(t *testing.T) {
	gw := &fakeCodeGateway{}
	ctrl := NewCode(gw, &fakeRecorder{}, "u1")

	_, err := ctrl.Assist(context.Background(), "some code", CodeModeDebug, "", "  ")
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "error", ve.Field)
	require.Empty(t, gw.calls)
}
