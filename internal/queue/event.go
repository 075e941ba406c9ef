// Package queue defines message payloads exchanged over the message broker.
package queue

// LayoutSavedEvent is published after a venue layout is persisted. It carries
// a small summary so downstream consumers can log or feed analytics without
// reading the layout document back from the database.
type LayoutSavedEvent struct {
	VenueID    uint64 `json:"venue_id"`
	OwnerID    uint64 `json:"owner_id"`
	SeatCount  int    `json:"seat_count"`
	TableCount int    `json:"table_count"`
	SavedAt    string `json:"saved_at"`
}
