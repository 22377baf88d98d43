package domain

import "time"

// SavedNetwork is a network as stored by the persistence service
type SavedNetwork struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Network     Network    `json:"network"`
	Checksum    string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NetworkSummary is one row of the saved-network listing
type NetworkSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Fluid       string    `json:"fluid,omitempty"`
}

// SaveRequest is the body accepted when storing a network
type SaveRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Network     Network `json:"network"`
}
