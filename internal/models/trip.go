package models

import "time"

// Trip is the trip planner's record: route, constraints and the generated
// itinerary. Unlike activity records it is mutated once after creation,
// when a packing list or budget breakdown is generated for it.
type Trip struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Days            int       `json:"days"`
	Budget          string    `json:"budget,omitempty"`
	Interests       []string  `json:"interests,omitempty"`
	Itinerary       string    `json:"itinerary"`
	PackingList     string    `json:"packingList,omitempty"`
	BudgetBreakdown string    `json:"budgetBreakdown,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TripExtraKind selects which supplementary content to generate for a trip.
type TripExtraKind string

const (
	TripExtraPacking TripExtraKind = "packing"
	TripExtraBudget  TripExtraKind = "budget"
)
