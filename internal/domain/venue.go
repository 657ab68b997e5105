package domain

import "time"

// VenueConfig is one entry of the markets allowlist.
type VenueConfig struct {
	ID      string `json:"id"`       // internal venue identifier, e.g. "CME_GLBX"
	Key     string `json:"key"`      // schedule dataset key, e.g. "tv.GLBX"
	ItemKey string `json:"item_key"` // monitoring item key the 0/1 state is reported under
}

// VenueState is the persisted last-known open/closed state of a venue.
// It is the only value that survives across evaluation runs.
type VenueState struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Open      bool      `json:"open"`
	UpdatedAt time.Time `json:"updated_at"`
}
