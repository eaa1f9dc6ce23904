package entities

import "time"

// RunState is the dungeon run lifecycle state.
type RunState string

// Run states. Idle is represented by Profile.Run == nil; Completed and
// Failed are terminal and cleared on the same write that records them.
const (
	RunInProgress RunState = "in_progress"
	RunCompleted  RunState = "completed"
	RunFailed     RunState = "failed"
)

// RewardBundle accumulates rewards pending commit. Nothing in a bundle
// touches a profile until the run completes.
type RewardBundle struct {
	Coins      int64          `json:"coins"`
	Experience int64          `json:"experience"`
	Items      map[string]int `json:"items,omitempty"`
}

// Merge folds other into the bundle.
func (b *RewardBundle) Merge(other RewardBundle) {
	b.Coins += other.Coins
	b.Experience += other.Experience
	if len(other.Items) > 0 {
		if b.Items == nil {
			b.Items = make(map[string]int, len(other.Items))
		}
		for id, qty := range other.Items {
			b.Items[id] += qty
		}
	}
}

// Empty reports whether the bundle grants nothing.
func (b *RewardBundle) Empty() bool {
	return b.Coins == 0 && b.Experience == 0 && len(b.Items) == 0
}

// DungeonRun is the per-profile multi-floor run. At most one run is in
// progress per profile; it lives on the profile record so it inherits the
// versioned-write discipline.
type DungeonRun struct {
	ID        string       `json:"id"`
	Floor     int          `json:"floor"`
	State     RunState     `json:"state"`
	Pending   RewardBundle `json:"pending"`
	StartedAt time.Time    `json:"started_at"`
}

// Clone returns a deep copy of the run.
func (r *DungeonRun) Clone() *DungeonRun {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Pending.Items != nil {
		cp.Pending.Items = make(map[string]int, len(r.Pending.Items))
		for id, qty := range r.Pending.Items {
			cp.Pending.Items[id] = qty
		}
	}
	return &cp
}
