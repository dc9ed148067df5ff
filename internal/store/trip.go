package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumenlabs/lumen-cli/internal/models"
)

func tripsTopic(userID string) string { return "trips/" + userID }

// InsertTrip stores a freshly planned trip.
func (s *Store) InsertTrip(ctx context.Context, trip models.Trip) error {
	doc, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	s.mu.Lock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trips (id, user_id, doc, created_at) VALUES (?, ?, ?, ?)`,
		trip.ID, trip.UserID, string(doc), trip.CreatedAt,
	)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	s.hub.broadcast(tripsTopic(trip.UserID))
	return nil
}

// GetTrip returns one trip by id, or ErrNotFound.
func (s *Store) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getTripLocked(ctx, id)
}

func (s *Store) getTripLocked(ctx context.Context, id string) (*models.Trip, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM trips WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select trip: %w", err)
	}

	var trip models.Trip
	if err := json.Unmarshal([]byte(doc), &trip); err != nil {
		return nil, fmt.Errorf("failed to decode trip: %w", err)
	}
	return &trip, nil
}

// ListTrips returns the owner's trips, newest first.
func (s *Store) ListTrips(ctx context.Context, userID string) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM trips WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select trips: %w", err)
	}
	defer rows.Close()

	var result []models.Trip
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var trip models.Trip
		if err := json.Unmarshal([]byte(doc), &trip); err != nil {
			return nil, fmt.Errorf("failed to decode trip: %w", err)
		}
		result = append(result, trip)
	}
	return result, rows.Err()
}

// UpdateTripExtra attaches generated packing-list or budget-breakdown text
// to an existing trip. This is the one mutate-in-place path in the store;
// it assumes the record still exists.
func (s *Store) UpdateTripExtra(ctx context.Context, id string, kind models.TripExtraKind, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.getTripLocked(ctx, id)
	if err != nil {
		return err
	}

	switch kind {
	case models.TripExtraPacking:
		trip.PackingList = text
	case models.TripExtraBudget:
		trip.BudgetBreakdown = text
	default:
		return fmt.Errorf("unknown trip extra kind %q", kind)
	}

	doc, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE trips SET doc = ? WHERE id = ?`, string(doc), id); err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	s.hub.broadcast(tripsTopic(trip.UserID))
	return nil
}

// WatchTrips subscribes to the owner's trip list.
func (s *Store) WatchTrips(userID string) (<-chan []models.Trip, CancelFunc) {
	return watch(s.hub, tripsTopic(userID), func() ([]models.Trip, error) {
		return s.ListTrips(context.Background(), userID)
	})
}
