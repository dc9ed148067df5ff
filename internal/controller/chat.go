package controller

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/logging"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// titlePrefixLen is how many characters of the first message become the
// session title.
const titlePrefixLen = 30

// ChatGateway is the slice of the gateway client used by chat.
type ChatGateway interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// ChatStore is the slice of the history store used by chat. Satisfied by
// *store.Store.
type ChatStore interface {
	CreateChat(ctx context.Context, userID, title string) (*models.ChatSession, error)
	ListChats(ctx context.Context, userID string) ([]models.ChatSession, error)
	ListMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error)
	AppendMessage(ctx context.Context, msg models.ChatMessage) error
	RenameChat(ctx context.Context, id, title string) error
}

// Chat drives the stateful chat capability: sessions and ordered message
// logs, both owned by the store.
type Chat struct {
	base
	gw    ChatGateway
	store ChatStore
	owner string
}

// ChatOptions toggles per-message gateway behavior.
type ChatOptions struct {
	ReasoningMode bool
	EnableSearch  bool
}

// NewChat creates a chat controller for the given principal.
func NewChat(gw ChatGateway, store ChatStore, ownerUID string) *Chat {
	return &Chat{gw: gw, store: store, owner: ownerUID}
}

// NewSession creates an empty session with a placeholder title.
func (c *Chat) NewSession(ctx context.Context) (*models.ChatSession, error) {
	return c.store.CreateChat(ctx, c.owner, "New chat")
}

// Sessions lists the principal's sessions, newest first.
func (c *Chat) Sessions(ctx context.Context) ([]models.ChatSession, error) {
	return c.store.ListChats(ctx, c.owner)
}

// Messages lists a session's log, oldest first.
func (c *Chat) Messages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	return c.store.ListMessages(ctx, chatID)
}

// Send runs one chat turn: persist the user message, derive the session
// title on the first turn, call the gateway with the full prior history,
// then persist the model's reply with its grounding citations. Each write
// is awaited before the next step, so the persisted log stays in causal
// order.
func (c *Chat) Send(ctx context.Context, chatID, text string, opts ChatOptions) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.NewValidationError("message", "message is required")
	}

	var reply *models.ChatMessage
	err := c.run(func() error {
		history, err := c.store.ListMessages(ctx, chatID)
		if err != nil {
			return err
		}

		userMsg := models.ChatMessage{
			ID:        uuid.NewString(),
			SessionID: chatID,
			Role:      models.RoleUser,
			Text:      text,
			CreatedAt: time.Now().UTC(),
		}
		if err := c.store.AppendMessage(ctx, userMsg); err != nil {
			return err
		}

		if len(history) == 0 {
			if err := c.store.RenameChat(ctx, chatID, DeriveTitle(text)); err != nil {
				logging.L().Warnw("session rename failed", "chat", chatID, "error", err)
			}
		}

		turns := make([]api.ChatTurn, 0, len(history))
		for _, m := range history {
			turns = append(turns, api.ChatTurn{Role: string(m.Role), Text: m.Text})
		}

		resp, err := c.gw.Chat(ctx, api.ChatRequest{
			Message:         text,
			History:         turns,
			IsReasoningMode: opts.ReasoningMode,
			EnableSearch:    opts.EnableSearch,
		})
		if err != nil {
			return err
		}

		modelMsg := models.ChatMessage{
			ID:        uuid.NewString(),
			SessionID: chatID,
			Role:      models.RoleModel,
			Text:      resp.Text,
			CreatedAt: time.Now().UTC(),
		}
		for _, link := range resp.GroundingLinks {
			modelMsg.Citations = append(modelMsg.Citations, models.Citation{
				Title: link.Title,
				URI:   link.URI,
			})
		}
		if err := c.store.AppendMessage(ctx, modelMsg); err != nil {
			return err
		}

		reply = &modelMsg
		return nil
	})
	return reply, err
}

// DeriveTitle truncates a first message into a session title: the first 30
// characters, with "..." appended when the message is longer.
func DeriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titlePrefixLen {
		return message
	}
	return string(runes[:titlePrefixLen]) + "..."
}
