package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumenlabs/lumen-cli/internal/models"
)

const topicActivities = "activities"

// AppendActivity inserts an immutable activity record. There is no update
// or delete path for activities.
func (s *Store) AppendActivity(ctx context.Context, rec models.Activity) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("failed to encode activity data: %w", err)
	}

	s.mu.Lock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO activities (id, user_id, type, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, string(rec.Type), rec.CreatedAt, string(data),
	)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	s.hub.broadcast(topicActivities)
	return nil
}

// ListActivities returns the owner's records for one capability type,
// most recent first. An empty capType matches every type.
func (s *Store) ListActivities(ctx context.Context, userID string, capType models.CapabilityType) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, user_id, type, created_at, data FROM activities
		WHERE user_id = ? AND (? = '' OR type = ?)
		ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query, userID, string(capType), string(capType))
	if err != nil {
		return nil, fmt.Errorf("failed to select activities: %w", err)
	}
	defer rows.Close()

	var result []models.Activity
	for rows.Next() {
		rec, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// GetActivity returns one record by id, or ErrNotFound.
func (s *Store) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, type, created_at, data FROM activities WHERE id = ?`, id)

	rec, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// WatchActivities subscribes to the live, ordered set of records for
// (owner, capability type). Each push replaces the previous snapshot.
func (s *Store) WatchActivities(userID string, capType models.CapabilityType) (<-chan []models.Activity, CancelFunc) {
	return watch(s.hub, topicActivities, func() ([]models.Activity, error) {
		return s.ListActivities(context.Background(), userID, capType)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (models.Activity, error) {
	var rec models.Activity
	var typ, data string
	var created time.Time
	if err := row.Scan(&rec.ID, &rec.UserID, &typ, &created, &data); err != nil {
		return rec, err
	}
	rec.Type = models.CapabilityType(typ)
	rec.CreatedAt = created
	if err := json.Unmarshal([]byte(data), &rec.Data); err != nil {
		return rec, fmt.Errorf("failed to decode activity data: %w", err)
	}
	return rec, nil
}
