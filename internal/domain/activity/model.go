package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeCounterAdded   ActivityType = "counter_added"
	TypeCounterRemoved ActivityType = "counter_removed"
	TypeCounterUpdated ActivityType = "counter_updated"
	TypeCountChanged   ActivityType = "count_changed"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeCounterAdded, TypeCounterRemoved, TypeCounterUpdated, TypeCountChanged:
		return true
	}
	return false
}

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	CounterID    *string      `json:"counter_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
