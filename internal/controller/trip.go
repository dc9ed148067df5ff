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

// TripGateway is the slice of the gateway client used by the trip planner.
type TripGateway interface {
	PlanTrip(ctx context.Context, req api.TripPlanRequest) (*api.TripPlanResponse, error)
	TripExtra(ctx context.Context, req api.TripExtraRequest) (*api.TripExtraResponse, error)
}

// TripStore is the slice of the history store used by the trip planner.
type TripStore interface {
	InsertTrip(ctx context.Context, trip models.Trip) error
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	ListTrips(ctx context.Context, userID string) ([]models.Trip, error)
	UpdateTripExtra(ctx context.Context, id string, kind models.TripExtraKind, text string) error
}

// TripForm is the user's trip-planning input.
type TripForm struct {
	Origin         string
	Destination    string
	Days           int
	Budget         string
	Interests      []string
	UseSearch      bool
	FamilyFriendly bool
}

// Trip drives the trip planner: itinerary generation plus the
// update-in-place packing/budget extras.
type Trip struct {
	base
	gw    TripGateway
	store TripStore
	owner string
}

// NewTrip creates a trip controller for the given principal.
func NewTrip(gw TripGateway, store TripStore, ownerUID string) *Trip {
	return &Trip{gw: gw, store: store, owner: ownerUID}
}

// Plan generates an itinerary and stores the trip record. The record write
// follows the display path: a failed write is logged, not surfaced.
func (t *Trip) Plan(ctx context.Context, form TripForm) (*models.Trip, error) {
	if strings.TrimSpace(form.Origin) == "" {
		return nil, utils.NewValidationError("origin", "origin is required")
	}
	if strings.TrimSpace(form.Destination) == "" {
		return nil, utils.NewValidationError("destination", "destination is required")
	}
	if form.Days <= 0 {
		return nil, utils.NewValidationError("days", "duration must be at least one day")
	}

	var trip *models.Trip
	err := t.run(func() error {
		resp, err := t.gw.PlanTrip(ctx, api.TripPlanRequest{
			Origin:         form.Origin,
			Destination:    form.Destination,
			Days:           form.Days,
			Budget:         form.Budget,
			Interests:      form.Interests,
			UseSearch:      form.UseSearch,
			FamilyFriendly: form.FamilyFriendly,
		})
		if err != nil {
			return err
		}

		trip = &models.Trip{
			ID:          uuid.NewString(),
			UserID:      t.owner,
			Origin:      form.Origin,
			Destination: form.Destination,
			Days:        form.Days,
			Budget:      form.Budget,
			Interests:   form.Interests,
			Itinerary:   resp.Itinerary,
			CreatedAt:   time.Now().UTC(),
		}
		if err := t.store.InsertTrip(ctx, *trip); err != nil {
			logging.L().Warnw("trip write failed", "trip", trip.ID, "error", err)
		}
		return nil
	})
	return trip, err
}

// Extra generates a packing list or budget breakdown for an existing trip
// and attaches it to the record in place.
func (t *Trip) Extra(ctx context.Context, tripID string, kind models.TripExtraKind) (string, error) {
	trip, err := t.store.GetTrip(ctx, tripID)
	if err != nil {
		return "", err
	}

	var result string
	err = t.run(func() error {
		resp, err := t.gw.TripExtra(ctx, api.TripExtraRequest{
			Type:        string(kind),
			Origin:      trip.Origin,
			Destination: trip.Destination,
			Days:        trip.Days,
			Budget:      trip.Budget,
		})
		if err != nil {
			return err
		}
		result = resp.Result

		return t.store.UpdateTripExtra(ctx, tripID, kind, result)
	})
	return result, err
}

// Trips lists the principal's planned trips, newest first.
func (t *Trip) Trips(ctx context.Context) ([]models.Trip, error) {
	return t.store.ListTrips(ctx, t.owner)
}
