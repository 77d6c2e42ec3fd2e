// Package tracker keeps per-entity high-water marks deciding what is new on the next fetch.
// A mark only moves forward, and only to the timestamp of an item that was actually persisted.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store persists marks, AdvancePosition must update only when candidate is greater than the stored value
type Store interface {
	GetPosition(ctx context.Context, ref domain.EntityRef) (int64, error)
	AdvancePosition(ctx context.Context, ref domain.EntityRef, candidate int64) (bool, error)
}

// Tracker reads and advances high-water marks
type Tracker struct {
	store Store
	now   func() time.Time
}

// New makes a tracker on top of the store
func New(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Position returns the mark of an entity, 0 if it was never fetched
func (t *Tracker) Position(ctx context.Context, ref domain.EntityRef) (int64, error) {
	pos, err := t.store.GetPosition(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("get position: %w", err)
	}
	return pos, nil
}

// Advance moves the mark to maxPersisted, the newest source timestamp among items persisted
// in this cycle. Zero means nothing was persisted and the mark is held.
func (t *Tracker) Advance(ctx context.Context, ref domain.EntityRef, maxPersisted int64) (domain.AdvanceOutcome, error) {
	current, err := t.Position(ctx, ref)
	if err != nil {
		return domain.AdvanceOutcome{}, err
	}
	if maxPersisted <= 0 {
		return held(current, "nothing persisted"), nil
	}
	if maxPersisted <= current {
		return held(current, "no newer items"), nil
	}

	updated, err := t.store.AdvancePosition(ctx, ref, maxPersisted)
	if err != nil {
		return domain.AdvanceOutcome{}, fmt.Errorf("advance position: %w", err)
	}
	if !updated {
		// another writer moved it further meanwhile
		return held(current, "concurrent update"), nil
	}
	lgr.Printf("[DEBUG] %s position advanced %d -> %d", ref, current, maxPersisted)
	return domain.AdvanceOutcome{Kind: domain.Advanced, From: current, To: maxPersisted}, nil
}

// Hold reports a cycle that must not move the mark, e.g. because fetching failed
func (t *Tracker) Hold(ctx context.Context, ref domain.EntityRef, reason string) domain.AdvanceOutcome {
	current, err := t.Position(ctx, ref)
	if err != nil {
		lgr.Printf("[WARN] can't read position of %s: %v", ref, err)
	}
	return held(current, reason)
}

// ForceNow moves the mark to the current time without persisted items. It is meant for entities
// which can't produce data anymore (removed channel, missing handle), so the next cycle doesn't
// rescan their whole history. Like Advance, it never moves the mark back.
func (t *Tracker) ForceNow(ctx context.Context, ref domain.EntityRef, reason string) (domain.AdvanceOutcome, error) {
	current, err := t.Position(ctx, ref)
	if err != nil {
		return domain.AdvanceOutcome{}, err
	}
	now := t.now().Unix()
	if now <= current {
		return held(current, reason), nil
	}
	updated, err := t.store.AdvancePosition(ctx, ref, now)
	if err != nil {
		return domain.AdvanceOutcome{}, fmt.Errorf("force position: %w", err)
	}
	if !updated {
		return held(current, "concurrent update"), nil
	}
	lgr.Printf("[INFO] %s position forced to now %d (%s)", ref, now, reason)
	return domain.AdvanceOutcome{Kind: domain.ForcedToNow, From: current, To: now, Reason: reason}, nil
}

// EffectiveCutoff returns the exclusive lower bound for items of the next cycle:
// the later of the stored mark and now minus max lookback
func EffectiveCutoff(position int64, lookback time.Duration, now time.Time) int64 {
	floor := now.Add(-lookback).Unix()
	if lookback <= 0 || position > floor {
		return position
	}
	return floor
}

func held(current int64, reason string) domain.AdvanceOutcome {
	return domain.AdvanceOutcome{Kind: domain.Held, From: current, To: current, Reason: reason}
}
