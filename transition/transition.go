// Package transition implements the sequence transitioner:
// a monotonic state machine that migrates items one at a time from an old
// backing list to a new one, so that the reconciliation engine can observe
// "what the system looks like right now" at any point during a partially
// applied action plan.
package transition

import "fmt"

// Transitioner holds the old sequence an action plan starts from and the
// new sequence it accumulates as actions commit.
type Transitioner[T comparable] struct {
	remainingOld  []T
	accumulatedNew []T
}

// New seeds a Transitioner from an old sequence. accumulatedNew starts empty.
func New[T comparable](old []T) *Transitioner[T] {
	remaining := make([]T, len(old))
	copy(remaining, old)
	return &Transitioner[T]{remainingOld: remaining}
}

// Update commits one step of the transition: old-only removes an item
// from the remaining-old side, new-only appends to the accumulated-new
// side, and both performs both in the same call. Calling Update with
// neither set is a caller error.
func (t *Transitioner[T]) Update(old *T, new_ *T) error {
	if old == nil && new_ == nil {
		return fmt.Errorf("transition: Update requires at least one of old, new")
	}
	if old != nil {
		idx := -1
		for i, v := range t.remainingOld {
			if v == *old {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("transition: old value %v is not present in the remaining old sequence", *old)
		}
		t.remainingOld = append(t.remainingOld[:idx], t.remainingOld[idx+1:]...)
	}
	if new_ != nil {
		for _, v := range t.accumulatedNew {
			if v == *new_ {
				return fmt.Errorf("transition: new value %v is already present in the accumulated new sequence", *new_)
			}
		}
		t.accumulatedNew = append(t.accumulatedNew, *new_)
	}
	return nil
}

// Current returns the projection: accumulated-new items first (in their
// append order), then whatever of the old sequence has not yet been
// consumed (in its original order). The returned slice is a fresh copy;
// callers may not mutate the Transitioner's internal state through it.
func (t *Transitioner[T]) Current() []T {
	out := make([]T, 0, len(t.accumulatedNew)+len(t.remainingOld))
	out = append(out, t.accumulatedNew...)
	out = append(out, t.remainingOld...)
	return out
}

// RemainingOld returns a copy of the old items not yet consumed.
func (t *Transitioner[T]) RemainingOld() []T {
	out := make([]T, len(t.remainingOld))
	copy(out, t.remainingOld)
	return out
}

// AccumulatedNew returns a copy of the new items committed so far.
func (t *Transitioner[T]) AccumulatedNew() []T {
	out := make([]T, len(t.accumulatedNew))
	copy(out, t.accumulatedNew)
	return out
}
