package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumenlabs/lumen-cli/internal/models"
)

func chatsTopic(userID string) string { return "chats/" + userID }

func messagesTopic(chatID string) string { return "messages/" + chatID }

// CreateChat creates a named session for the owner.
func (s *Store) CreateChat(ctx context.Context, userID, title string) (*models.ChatSession, error) {
	session := &models.ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (id, user_id, title, created_at) VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, session.Title, session.CreatedAt,
	)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	s.hub.broadcast(chatsTopic(userID))
	return session, nil
}

// GetChat returns one session by id, or ErrNotFound.
func (s *Store) GetChat(ctx context.Context, id string) (*models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var session models.ChatSession
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, created_at FROM chats WHERE id = ?`, id,
	).Scan(&session.ID, &session.UserID, &session.Title, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select chat: %w", err)
	}
	return &session, nil
}

// ListChats returns the owner's sessions, newest first.
func (s *Store) ListChats(ctx context.Context, userID string) ([]models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, created_at FROM chats
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select chats: %w", err)
	}
	defer rows.Close()

	var result []models.ChatSession
	for rows.Next() {
		var session models.ChatSession
		if err := rows.Scan(&session.ID, &session.UserID, &session.Title, &session.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, session)
	}
	return result, rows.Err()
}

// RenameChat sets a session's title. Used for first-turn title derivation.
func (s *Store) RenameChat(ctx context.Context, id, title string) error {
	s.mu.Lock()
	var userID string
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM chats WHERE id = ?`, id).Scan(&userID)
	if err == nil {
		_, err = s.db.ExecContext(ctx, `UPDATE chats SET title = ? WHERE id = ?`, title, id)
	}
	s.mu.Unlock()
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}

	s.hub.broadcast(chatsTopic(userID))
	return nil
}

// AppendMessage inserts a message into its session's log.
func (s *Store) AppendMessage(ctx context.Context, msg models.ChatMessage) error {
	citations, err := json.Marshal(msg.Citations)
	if err != nil {
		return fmt.Errorf("failed to encode citations: %w", err)
	}

	s.mu.Lock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, chat_id, role, body, citations, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, string(msg.Role), msg.Text, string(citations), msg.CreatedAt,
	)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	s.hub.broadcast(messagesTopic(msg.SessionID))
	return nil
}

// ListMessages returns a session's messages ordered by timestamp ascending.
func (s *Store) ListMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, role, body, citations, created_at FROM chat_messages
		 WHERE chat_id = ? ORDER BY created_at ASC, id ASC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		var role, citations string
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Text, &citations, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Role = models.Role(role)
		if err := json.Unmarshal([]byte(citations), &msg.Citations); err != nil {
			return nil, fmt.Errorf("failed to decode citations: %w", err)
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// WatchChats subscribes to the owner's session list.
func (s *Store) WatchChats(userID string) (<-chan []models.ChatSession, CancelFunc) {
	return watch(s.hub, chatsTopic(userID), func() ([]models.ChatSession, error) {
		return s.ListChats(context.Background(), userID)
	})
}

// WatchMessages subscribes to a session's ordered message log.
func (s *Store) WatchMessages(chatID string) (<-chan []models.ChatMessage, CancelFunc) {
	return watch(s.hub, messagesTopic(chatID), func() ([]models.ChatMessage, error) {
		return s.ListMessages(context.Background(), chatID)
	})
}
