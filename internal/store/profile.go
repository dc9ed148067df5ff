package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumenlabs/lumen-cli/internal/models"
)

func profileTopic(uid string) string { return "profiles/" + uid }

// SaveProfile upserts the profile document keyed by principal id.
func (s *Store) SaveProfile(ctx context.Context, p models.Profile) error {
	if p.UID == "" {
		return fmt.Errorf("profile uid is required")
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (uid, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(uid) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		p.UID, string(doc), p.UpdatedAt,
	)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	s.hub.broadcast(profileTopic(p.UID))
	return nil
}

// GetProfile returns the profile for uid, or ErrNotFound when onboarding
// has never completed for this principal.
func (s *Store) GetProfile(ctx context.Context, uid string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE uid = ?`, uid).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

// WatchProfile subscribes to the profile document for uid. A nil snapshot
// means the document is absent.
func (s *Store) WatchProfile(uid string) (<-chan *models.Profile, CancelFunc) {
	return watch(s.hub, profileTopic(uid), func() (*models.Profile, error) {
		p, err := s.GetProfile(context.Background(), uid)
		if err == ErrNotFound {
			return nil, nil
		}
		return p, err
	})
}
