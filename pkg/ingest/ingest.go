// Package ingest runs incremental fetch cycles: it pulls items newer than an entity's high-water mark
// from a source, persists them idempotently and moves the mark only when that can't skip unseen items.
package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// Tracker reads and moves high-water marks, implemented by tracker.Tracker
type Tracker interface {
	Position(ctx context.Context, ref domain.EntityRef) (int64, error)
	Advance(ctx context.Context, ref domain.EntityRef, maxPersisted int64) (domain.AdvanceOutcome, error)
	Hold(ctx context.Context, ref domain.EntityRef, reason string) domain.AdvanceOutcome
	ForceNow(ctx context.Context, ref domain.EntityRef, reason string) (domain.AdvanceOutcome, error)
}

// VideoOutcome is the result of processing one listed video
type VideoOutcome string

const (
	VideoAdded                 VideoOutcome = "added"
	VideoSkippedExisting       VideoOutcome = "skipped_existing"
	VideoSkippedOld            VideoOutcome = "skipped_old"
	VideoMetadataFailed        VideoOutcome = "metadata_failed"
	VideoTranscriptFetched     VideoOutcome = "transcript_fetched"
	VideoTranscriptUnavailable VideoOutcome = "transcript_unavailable"
	VideoTranscriptFailed      VideoOutcome = "transcript_failed"
	VideoError                 VideoOutcome = "error"
)

// CycleResult describes one fetch cycle of a single entity
type CycleResult struct {
	Ref       domain.EntityRef
	Pages     int // steam pages requested
	Fetched   int // items above the cutoff handed to the persister
	Persisted int // items actually inserted, duplicates excluded
	Videos    map[VideoOutcome]int
	Outcome   domain.AdvanceOutcome
	Err       error
}

// String returns a one line description for logs
func (r CycleResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: fetched %d, persisted %d", r.Ref, r.Fetched, r.Persisted)
	if r.Pages > 0 {
		fmt.Fprintf(&sb, ", pages %d", r.Pages)
	}
	if len(r.Videos) > 0 {
		keys := make([]string, 0, len(r.Videos))
		for k := range r.Videos {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, ", %s %d", k, r.Videos[VideoOutcome(k)])
		}
	}
	fmt.Fprintf(&sb, ", %s", r.Outcome)
	if r.Err != nil {
		fmt.Fprintf(&sb, ", error: %v", r.Err)
	}
	return sb.String()
}

// CycleSummary aggregates cycles over all tracked entities of a kind
type CycleSummary struct {
	Processed int
	Failed    int
	Persisted int
	Results   []CycleResult
}

// entity is a tracked app or channel
type entity interface{ Ref() domain.EntityRef }

// runEntities runs fn for every entity with bounded parallelism. A failing or panicking entity
// is contained and counted, siblings continue.
func runEntities[T entity](ctx context.Context, entities []T, limit int,
	fn func(context.Context, T) CycleResult) CycleSummary {
	if limit <= 0 {
		limit = 1
	}
	var (
		mu      sync.Mutex
		summary CycleSummary
	)
	var g errgroup.Group
	g.SetLimit(limit)
	for _, e := range entities {
		g.Go(func() error {
			res := safeRun(ctx, e, fn)
			if res.Err != nil {
				lgr.Printf("[WARN] fetch cycle %s", res)
			} else {
				lgr.Printf("[INFO] fetch cycle %s", res)
			}
			mu.Lock()
			defer mu.Unlock()
			summary.Processed++
			summary.Persisted += res.Persisted
			if res.Err != nil {
				summary.Failed++
			}
			summary.Results = append(summary.Results, res)
			return nil
		})
	}
	_ = g.Wait()
	sort.Slice(summary.Results, func(i, j int) bool { return summary.Results[i].Ref.String() < summary.Results[j].Ref.String() })
	return summary
}

func safeRun[T entity](ctx context.Context, e T, fn func(context.Context, T) CycleResult) (res CycleResult) {
	defer func() {
		if r := recover(); r != nil {
			res = CycleResult{Ref: e.Ref(), Err: fmt.Errorf("panic: %v", r)}
			res.Outcome = domain.AdvanceOutcome{Kind: domain.Held, Reason: "panic"}
		}
	}()
	return fn(ctx, e)
}
