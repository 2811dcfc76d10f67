package activity

// DefaultListLimit applies when ListActivityOptions.Limit is not positive.
const DefaultListLimit = 50

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	CounterID    *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
