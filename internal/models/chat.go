package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Citation is a grounding source link returned alongside a generated answer.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ChatSession is a named, timestamped container for messages. Sessions are
// listed newest first.
type ChatSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatMessage belongs to exactly one session. Messages are ordered by
// timestamp ascending within a session.
type ChatMessage struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId"`
	Role      Role       `json:"role"`
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
