package controller

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/store"
)

type fakeChatGateway struct {
	calls []api.ChatRequest
	resp  api.ChatResponse
	err   error
}

func (g *fakeChatGateway) Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	resp := g.resp
	return &resp, nil
}

// fakeChatStore is an in-memory ChatStore.
type fakeChatStore struct {
	sessions  map[string]*models.ChatSession
	messages  map[string][]models.ChatMessage
	renameErr error
	appendErr error
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		sessions: make(map[string]*models.ChatSession),
		messages: make(map[string][]models.ChatMessage),
	}
}

func (s *fakeChatStore) CreateChat(ctx context.Context, userID, title string) (*models.ChatSession, error) {
	session := &models.ChatSession{ID: "chat-1", UserID: userID, Title: title}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *fakeChatStore) ListChats(ctx context.Context, userID string) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, session := range s.sessions {
		if session.UserID == userID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (s *fakeChatStore) ListMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	return s.messages[chatID], nil
}

func (s *fakeChatStore) AppendMessage(ctx context.Context, msg models.ChatMessage) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], msg)
	return nil
}

func (s *fakeChatStore) RenameChat(ctx context.Context, id, title string) error {
	if s.renameErr != nil {
		return s.renameErr
	}
	session, ok := s.sessions[id]
	if !ok {
		return store.ErrNotFound
	}
	session.Title = title
	return nil
}

func TestChatSendFirstTurn(t *testing.T) {
	gw := &fakeChatGateway{resp: api.ChatResponse{Text: "hello back"}}
	st := newFakeChatStore()
	ctrl := NewChat(gw, st, "u1")

	session, err := ctrl.NewSession(context.Background())
	require.NoError(t, err)
	require.Equal(t, "New chat", session.Title)

	reply, err := ctrl.Send(context.Background(), session.ID, "hello there", ChatOptions{})
	require.NoError(t, err)
	require.Equal(t, "hello back", reply.Text)
	require.Equal(t, models.RoleModel, reply.Role)

	// Exactly two messages, user then model.
	log := st.messages[session.ID]
	require.Len(t, log, 2)
	require.Equal(t, models.RoleUser, log[0].Role)
	require.Equal(t, "hello there", log[0].Text)
	require.Equal(t, models.RoleModel, log[1].Role)

	// The first turn titles the session and reaches the gateway with an
	// empty history.
	require.Equal(t, "hello there", st.sessions[session.ID].Title)
	require.Len(t, gw.calls, 1)
	require.Empty(t, gw.calls[0].History)
}

func TestChatSendSecondTurnCarriesHistory(t *testing.T) {
	gw := &fakeChatGateway{resp: api.ChatResponse{Text: "reply"}}
	st := newFakeChatStore()
	ctrl := NewChat(gw, st, "u1")

	session, err := ctrl.NewSession(context.Background())
	require.NoError(t, err)

	_, err = ctrl.Send(context.Background(), session.ID, "first", ChatOptions{})
	require.NoError(t, err)
	title := st.sessions[session.ID].Title

	_, err = ctrl.Send(context.Background(), session.ID, "second", ChatOptions{ReasoningMode: true})
	require.NoError(t, err)

	require.Len(t, gw.calls, 2)
	require.Len(t, gw.calls[1].History, 2, "prior user+model turns travel with the request")
	require.True(t, gw.calls[1].IsReasoningMode)
	require.Equal(t, title, st.sessions[session.ID].Title, "only the first turn renames")
	require.Len(t, st.messages[session.ID], 4)
}

func TestChatSendRenameFailureNonFatal(t *testing.T) {
	gw := &fakeChatGateway{resp: api.ChatResponse{Text: "ok"}}
	st := newFakeChatStore()
	st.renameErr = errGateway
	ctrl := NewChat(gw, st, "u1")

	session, err := ctrl.NewSession(context.Background())
	require.NoError(t, err)

	reply, err := ctrl.Send(context.Background(), session.ID, "hello", ChatOptions{})
	require.NoError(t, err, "a failed rename must not fail the turn")
	require.Equal(t, "ok", reply.Text)
}

func TestChatSendGatewayFailureKeepsUserMessage(t *testing.T) {
	gw := &fakeChatGateway{err: errGateway}
	st := newFakeChatStore()
	ctrl := NewChat(gw, st, "u1")

	session, err := ctrl.NewSession(context.Background())
	require.NoError(t, err)

	_, err = ctrl.Send(context.Background(), session.ID, "hello", ChatOptions{})
	require.ErrorIs(t, err, errGateway)
	require.False(t, ctrl.Loading())

	// The user message was persisted before the gateway call.
	log := st.messages[session.ID]
	require.Len(t, log, 1)
	require.Equal(t, models.RoleUser, log[0].Role)
}

func TestChatSendPersistsCitations(t *testing.T) {
	gw := &fakeChatGateway{resp: api.ChatResponse{
		Text: "grounded answer",
		GroundingLinks: []api.GroundingLink{
			{Title: "Source", URI: "https://example.com"},
		},
	}}
	st := newFakeChatStore()
	ctrl := NewChat(gw, st, "u1")

	session, err := ctrl.NewSession(context.Background())
	require.NoError(t, err)

	reply, err := ctrl.Send(context.Background(), session.ID, "question", ChatOptions{EnableSearch: true})
	require.NoError(t, err)
	require.Len(t, reply.Citations, 1)
	require.Equal(t, "https://example.com", reply.Citations[0].URI)
	require.True(t, gw.calls[0].EnableSearch)
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short stays whole", "hi", "hi"},
		{"exactly thirty", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"long truncates", strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{"multibyte counts runes", strings.Repeat("é", 31), strings.Repeat("é", 30) + "..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DeriveTitle(tc.message))
		})
	}
}
