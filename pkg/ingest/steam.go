package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/source/steam"
	"github.com/reviewscope/reviewscope/pkg/tracker"
)

//go:generate moq -out mocks/review_source.go -pkg mocks -skip-ensure -fmt goimports . ReviewSource
//go:generate moq -out mocks/review_store.go -pkg mocks -skip-ensure -fmt goimports . ReviewStore
//go:generate moq -out mocks/app_lister.go -pkg mocks -skip-ensure -fmt goimports . AppLister

// ReviewSource returns pages of reviews newest first
type ReviewSource interface {
	FetchPage(ctx context.Context, appID int64, cursor string, pageSize int, language string) (steam.Page, error)
}

// ReviewStore persists reviews, duplicates are ignored
type ReviewStore interface {
	InsertReviews(ctx context.Context, reviews []domain.Review) (int, error)
}

// AppLister lists tracked apps
type AppLister interface {
	ListApps(ctx context.Context, activeOnly bool) ([]domain.TrackedApp, error)
}

// SteamParams configures steam cycles
type SteamParams struct {
	PageSize    int
	Language    string
	MaxLookback time.Duration // zero means no lookback floor
	MaxPages    int
	Concurrency int // apps fetched in parallel by RunAll
}

// SteamFetcher runs incremental review fetch cycles
type SteamFetcher struct {
	source  ReviewSource
	store   ReviewStore
	apps    AppLister
	tracker Tracker
	params  SteamParams
	now     func() time.Time
}

// NewSteamFetcher makes a steam fetcher
func NewSteamFetcher(source ReviewSource, store ReviewStore, apps AppLister, tr Tracker, params SteamParams) *SteamFetcher {
	if params.PageSize <= 0 || params.PageSize > 100 {
		params.PageSize = 100
	}
	if params.Language == "" {
		params.Language = "all"
	}
	if params.MaxPages <= 0 {
		params.MaxPages = 200
	}
	return &SteamFetcher{source: source, store: store, apps: apps, tracker: tr, params: params, now: time.Now}
}

// RunAll runs a cycle for every active app
func (f *SteamFetcher) RunAll(ctx context.Context) (CycleSummary, error) {
	apps, err := f.apps.ListApps(ctx, true)
	if err != nil {
		return CycleSummary{}, fmt.Errorf("list apps: %w", err)
	}
	lgr.Printf("[INFO] fetching reviews of %d apps", len(apps))
	return runEntities(ctx, apps, f.params.Concurrency, func(ctx context.Context, app domain.TrackedApp) CycleResult {
		return f.RunApp(ctx, app.AppID)
	}), nil
}

// RunApp fetches reviews newer than the app's cutoff page by page, persisting every page right away.
// The mark advances to the newest persisted review only after a complete cycle, an aborted one holds it.
func (f *SteamFetcher) RunApp(ctx context.Context, appID int64) CycleResult {
	ref := domain.AppRef(appID)
	pos, err := f.tracker.Position(ctx, ref)
	if err != nil {
		return CycleResult{Ref: ref, Err: err, Outcome: domain.AdvanceOutcome{Kind: domain.Held, Reason: "position unavailable"}}
	}
	cutoff := tracker.EffectiveCutoff(pos, f.params.MaxLookback, f.now())
	lgr.Printf("[DEBUG] fetching reviews of app %d, position %d, cutoff %d", appID, pos, cutoff)
	return f.cycle(ctx, appID, cutoff, f.params.MaxPages)
}

// Backfill fetches the whole review history of the app, ignoring the mark, the lookback floor and
// the page limit. Stored reviews are skipped by the persister, a complete run advances the mark
// like a regular cycle.
func (f *SteamFetcher) Backfill(ctx context.Context, appID int64) CycleResult {
	lgr.Printf("[INFO] backfilling reviews of app %d", appID)
	return f.cycle(ctx, appID, 0, 0)
}

// cycle reads pages until a review at or below cutoff, the end of history or maxPages, zero is unlimited
func (f *SteamFetcher) cycle(ctx context.Context, appID, cutoff int64, maxPages int) CycleResult {
	ref := domain.AppRef(appID)
	res := CycleResult{Ref: ref}
	var maxPersisted int64
	cursor := steam.InitialCursor
	seen := map[string]bool{cursor: true}
	complete := false

	for maxPages <= 0 || res.Pages < maxPages {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		page, err := f.source.FetchPage(ctx, appID, cursor, f.params.PageSize, f.params.Language)
		if err != nil {
			res.Err = fmt.Errorf("page %d: %w", res.Pages+1, err)
			break
		}
		res.Pages++

		fresh, reached := aboveCutoff(page.Reviews, cutoff)
		if len(fresh) > 0 {
			n, err := f.store.InsertReviews(ctx, fresh)
			if err != nil {
				res.Err = fmt.Errorf("persist page %d: %w", res.Pages, err)
				break
			}
			res.Fetched += len(fresh)
			res.Persisted += n
			for _, r := range fresh {
				maxPersisted = max(maxPersisted, r.TimestampCreated)
			}
		}

		if reached || page.Empty() || page.NextCursor == "" || seen[page.NextCursor] {
			complete = true
			break
		}
		seen[page.NextCursor] = true
		cursor = page.NextCursor
	}

	switch {
	case res.Err != nil:
		res.Outcome = f.tracker.Hold(ctx, ref, "cycle aborted")
	case !complete:
		res.Outcome = f.tracker.Hold(ctx, ref, fmt.Sprintf("page limit %d reached before cutoff", maxPages))
	default:
		out, err := f.tracker.Advance(ctx, ref, maxPersisted)
		if err != nil {
			res.Err = err
			out = f.tracker.Hold(ctx, ref, "advance failed")
		}
		res.Outcome = out
	}
	return res
}

// aboveCutoff returns the leading reviews newer than cutoff, reached is set once an older one is seen
func aboveCutoff(reviews []domain.Review, cutoff int64) (fresh []domain.Review, reached bool) {
	for i, r := range reviews {
		if r.TimestampCreated <= cutoff {
			return reviews[:i], true
		}
	}
	return reviews, false
}
