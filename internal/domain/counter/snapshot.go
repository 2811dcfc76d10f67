package counter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/swipecount/internal/repository"
)

// EncodeSnapshot renders the collection as the persisted JSON array.
func EncodeSnapshot(counters []Counter) ([]byte, error) {
	if counters == nil {
		counters = []Counter{}
	}
	data, err := json.Marshal(counters)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and shape-checks a persisted JSON array. Unknown
// object fields are ignored.
func DecodeSnapshot(data []byte) ([]Counter, error) {
	var counters []Counter
	if err := json.Unmarshal(data, &counters); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if len(counters) == 0 {
		return nil, fmt.Errorf("%w: empty collection", ErrInvalidSnapshot)
	}

	seen := make(map[string]struct{}, len(counters))
	for i, c := range counters {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: counter %d has no id", ErrInvalidSnapshot, i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSnapshot, c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Count < 0 {
			return nil, fmt.Errorf("%w: counter %q has negative count", ErrInvalidSnapshot, c.ID)
		}
		if c.TargetValue <= 0 {
			return nil, fmt.Errorf("%w: counter %q has non-positive target", ErrInvalidSnapshot, c.ID)
		}
	}
	return counters, nil
}

// Restore loads the persisted collection. Any failure, including a missing
// snapshot, yields nil so the caller starts from the default collection;
// the reason is only logged.
func Restore(ctx context.Context, repo Repository, logger *slog.Logger) []Counter {
	data, err := repo.LoadSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && logger != nil {
			logger.Warn("counter snapshot unreadable, using defaults", "error", err)
		}
		return nil
	}

	counters, err := DecodeSnapshot(data)
	if err != nil {
		if logger != nil {
			logger.Warn("counter snapshot rejected, using defaults", "error", err)
		}
		return nil
	}
	return counters
}
