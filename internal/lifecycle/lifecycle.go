package lifecycle

import (
	"sort"
	"time"

	"github.com/SchoolApp/content-service/internal/model"
)

// Phase is never persisted. It is re-derived from the item's timestamps and
// flags on every read so it cannot drift from the fields it depends on.
type Phase string

const (
	PhaseCompleted Phase = "completed"
	PhaseActive    Phase = "active"
	PhaseScheduled Phase = "scheduled"
	PhaseExpired   Phase = "expired"
)

const recentCount = 3

// Classify derives the item's phase at the given instant. Rule order matters:
// a completed item is Completed whatever its timestamps, and a future
// schedule_at wins over an already-passed expire_at.
func Classify(item model.ContentItem, now time.Time) Phase {
	if item.Completed {
		return PhaseCompleted
	}
	if item.ScheduleAt != nil && item.ScheduleAt.After(now) {
		return PhaseScheduled
	}
	if item.ExpireAt != nil && !item.ExpireAt.After(now) {
		return PhaseExpired
	}
	return PhaseActive
}

// SortForDisplay orders items pinned-first (pinned_at descending, falling back
// to created_at when unset), then created_at descending. The sort is stable.
func SortForDisplay(items []model.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.Pinned {
			return pinKey(a).After(pinKey(b))
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func pinKey(item model.ContentItem) time.Time {
	if item.PinnedAt != nil {
		return *item.PinnedAt
	}
	return item.CreatedAt
}

// Split sorts the items for display and returns the first three as the
// "recent" strip, the remainder as the general list.
func Split(items []model.ContentItem) (recent, rest []model.ContentItem) {
	SortForDisplay(items)
	if len(items) <= recentCount {
		return items, nil
	}
	return items[:recentCount], items[recentCount:]
}

// FilterPhase returns the items classified into the given phase at now,
// preserving input order.
func FilterPhase(items []model.ContentItem, phase Phase, now time.Time) []model.ContentItem {
	var out []model.ContentItem
	for _, item := range items {
		if Classify(item, now) == phase {
			out = append(out, item)
		}
	}
	return out
}
