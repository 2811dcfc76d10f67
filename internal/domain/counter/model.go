package counter

// DefaultTarget is the target value of newly created counters.
const DefaultTarget = 100

// Counter is one bounded tally. Count stays within [0, TargetValue] at rest
// unless an edit lowered the target below the current count.
type Counter struct {
	ID          string `json:"id"`
	Count       int    `json:"count"`
	TargetValue int    `json:"targetValue"`
	Name        string `json:"name,omitempty"`
	Color       string `json:"color,omitempty"`
}

// Progress returns Count/TargetValue clamped to [0, 1].
func (c Counter) Progress() float64 {
	if c.TargetValue <= 0 {
		return 0
	}
	r := float64(c.Count) / float64(c.TargetValue)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// Update is a partial set of counter fields. Nil fields are left unchanged.
type Update struct {
	Count       *int
	TargetValue *int
	Name        *string
	Color       *string
}

// Empty reports whether the update carries no fields.
func (u Update) Empty() bool {
	return u.Count == nil && u.TargetValue == nil && u.Name == nil && u.Color == nil
}

func (u Update) apply(c Counter) Counter {
	if u.Count != nil {
		c.Count = *u.Count
	}
	if u.TargetValue != nil {
		c.TargetValue = *u.TargetValue
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	return c
}

// ChangeKind classifies a persisted mutation.
type ChangeKind string

const (
	ChangeAdded        ChangeKind = "counter_added"
	ChangeRemoved      ChangeKind = "counter_removed"
	ChangeUpdated      ChangeKind = "counter_updated"
	ChangeCountChanged ChangeKind = "count_changed"
)

// Change describes one mutation that was written to the collection.
// Before is the zero Counter for additions; After for removals.
type Change struct {
	Kind   ChangeKind
	Before Counter
	After  Counter
}

// CounterID returns the id of the counter the change touched.
func (c Change) CounterID() string {
	if c.After.ID != "" {
		return c.After.ID
	}
	return c.Before.ID
}
