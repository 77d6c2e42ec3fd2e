package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/repository"
	"github.com/reviewscope/reviewscope/pkg/source/supadata"
	"github.com/reviewscope/reviewscope/pkg/tracker"
)

//go:generate moq -out mocks/video_source.go -pkg mocks -skip-ensure -fmt goimports . VideoSource
//go:generate moq -out mocks/feed_lister.go -pkg mocks -skip-ensure -fmt goimports . FeedLister
//go:generate moq -out mocks/channel_lister.go -pkg mocks -skip-ensure -fmt goimports . ChannelLister
//go:generate moq -out mocks/video_store.go -pkg mocks -skip-ensure -fmt goimports . VideoStore
//go:generate moq -out mocks/session_provider.go -pkg mocks -skip-ensure -fmt goimports . SessionProvider

// VideoSource lists channel uploads and fetches video metadata and transcripts
type VideoSource interface {
	ChannelVideos(ctx context.Context, handle string, limit int) ([]string, error)
	VideoMetadata(ctx context.Context, videoID string) (supadata.VideoMetadata, error)
	Transcript(ctx context.Context, videoID, lang string) (supadata.TranscriptResult, error)
}

// FeedLister lists recent uploads by channel id, used when the primary listing fails
type FeedLister interface {
	ChannelVideos(ctx context.Context, channelID string, limit int) ([]string, error)
}

// ChannelLister lists tracked channels
type ChannelLister interface {
	ListChannels(ctx context.Context, activeOnly bool) ([]domain.Channel, error)
}

// VideoStore persists videos and transcripts
type VideoStore interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
	InsertVideo(ctx context.Context, v *domain.Video) (bool, error)
	SaveTranscript(ctx context.Context, t domain.Transcript) error
	MarkTranscript(ctx context.Context, videoID string, status domain.TranscriptStatus, reason string) error
}

// SessionProvider hands a video store bound to its own connection to each worker
type SessionProvider interface {
	WithVideoSession(ctx context.Context, fn func(store VideoStore) error) error
}

// RepositorySessions provides video sessions from repositories
type RepositorySessions struct {
	Repos *repository.Repositories
}

// WithVideoSession runs fn with the video repository of a dedicated session
func (r RepositorySessions) WithVideoSession(ctx context.Context, fn func(store VideoStore) error) error {
	return r.Repos.WithSession(ctx, func(s *repository.Session) error { return fn(s.Video) })
}

// YouTubeParams configures youtube cycles
type YouTubeParams struct {
	FetchLimit  int           // videos listed per channel
	MaxWorkers  int           // videos processed in parallel per channel
	MaxAge      time.Duration // zero means no lookback floor
	Language    string        // transcript language
	Concurrency int           // channels fetched in parallel by RunAll
}

// YouTubeFetcher runs incremental video fetch cycles
type YouTubeFetcher struct {
	source   VideoSource
	feed     FeedLister
	channels ChannelLister
	sessions SessionProvider
	tracker  Tracker
	params   YouTubeParams
	now      func() time.Time
}

// NewYouTubeFetcher makes a youtube fetcher, feed is optional
func NewYouTubeFetcher(source VideoSource, feed FeedLister, channels ChannelLister, sessions SessionProvider,
	tr Tracker, params YouTubeParams) *YouTubeFetcher {
	if params.FetchLimit <= 0 {
		params.FetchLimit = 30
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 8
	}
	if params.Language == "" {
		params.Language = "en"
	}
	return &YouTubeFetcher{source: source, feed: feed, channels: channels, sessions: sessions, tracker: tr,
		params: params, now: time.Now}
}

// RunAll runs a cycle for every active channel
func (f *YouTubeFetcher) RunAll(ctx context.Context) (CycleSummary, error) {
	channels, err := f.channels.ListChannels(ctx, true)
	if err != nil {
		return CycleSummary{}, fmt.Errorf("list channels: %w", err)
	}
	lgr.Printf("[INFO] fetching videos of %d channels", len(channels))
	return runEntities(ctx, channels, f.params.Concurrency, f.RunChannel), nil
}

type videoResult struct {
	outcomes []VideoOutcome
	uploaded time.Time // set for added videos only
}

// RunChannel lists the channel's recent uploads and ingests the ones newer than its cutoff.
// Videos are processed by a bounded pool, each worker with its own store session.
func (f *YouTubeFetcher) RunChannel(ctx context.Context, ch domain.Channel) CycleResult {
	ref := ch.Ref()
	res := CycleResult{Ref: ref, Videos: map[VideoOutcome]int{}}

	if strings.TrimSpace(ch.Handle) == "" {
		res.Outcome, res.Err = f.tracker.ForceNow(ctx, ref, "channel has no handle")
		return res
	}

	pos, err := f.tracker.Position(ctx, ref)
	if err != nil {
		res.Err = err
		res.Outcome = domain.AdvanceOutcome{Kind: domain.Held, Reason: "position unavailable"}
		return res
	}
	cutoff := tracker.EffectiveCutoff(pos, f.params.MaxAge, f.now())

	ids, err := f.listVideos(ctx, ch)
	if err != nil {
		res.Err = err
		res.Outcome = f.tracker.Hold(ctx, ref, "listing failed")
		return res
	}
	if len(ids) == 0 {
		res.Outcome, res.Err = f.tracker.ForceNow(ctx, ref, "channel has no videos")
		return res
	}
	lgr.Printf("[DEBUG] channel %s listed %d videos, cutoff %d", ch.ChannelID, len(ids), cutoff)

	var (
		mu       sync.Mutex
		maxAdded int64
	)
	var g errgroup.Group
	g.SetLimit(f.params.MaxWorkers)
	for _, id := range ids {
		g.Go(func() error {
			vr := f.processVideo(ctx, ch, id, cutoff)
			mu.Lock()
			defer mu.Unlock()
			for _, o := range vr.outcomes {
				res.Videos[o]++
			}
			if !vr.uploaded.IsZero() {
				res.Persisted++
				maxAdded = max(maxAdded, vr.uploaded.Unix())
			}
			return nil
		})
	}
	_ = g.Wait()
	res.Fetched = len(ids) - res.Videos[VideoSkippedExisting] - res.Videos[VideoSkippedOld]

	// a video whose metadata failed has an unknown upload time, moving past it could lose it for good
	if failed := res.Videos[VideoMetadataFailed] + res.Videos[VideoError]; failed > 0 {
		res.Outcome = f.tracker.Hold(ctx, ref, fmt.Sprintf("%d videos failed", failed))
		return res
	}
	out, err := f.tracker.Advance(ctx, ref, maxAdded)
	if err != nil {
		res.Err = err
		out = f.tracker.Hold(ctx, ref, "advance failed")
	}
	res.Outcome = out
	return res
}

// listVideos lists uploads by handle, falling back to the channel feed
func (f *YouTubeFetcher) listVideos(ctx context.Context, ch domain.Channel) ([]string, error) {
	ids, err := f.source.ChannelVideos(ctx, ch.Handle, f.params.FetchLimit)
	if err == nil {
		return ids, nil
	}
	if f.feed == nil {
		return nil, fmt.Errorf("list videos of %s: %w", ch.Handle, err)
	}
	lgr.Printf("[WARN] listing %s failed, trying channel feed: %v", ch.Handle, err)
	ids, ferr := f.feed.ChannelVideos(ctx, ch.ChannelID, f.params.FetchLimit)
	if ferr != nil {
		return nil, fmt.Errorf("list videos of %s: %w, feed: %w", ch.Handle, err, ferr)
	}
	return ids, nil
}

func (f *YouTubeFetcher) processVideo(ctx context.Context, ch domain.Channel, videoID string, cutoff int64) (vr videoResult) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] panic processing video %s: %v", videoID, r)
			vr = videoResult{outcomes: []VideoOutcome{VideoError}}
		}
	}()

	err := f.sessions.WithVideoSession(ctx, func(store VideoStore) error {
		exists, err := store.VideoExists(ctx, videoID)
		if err != nil {
			return err
		}
		if exists {
			vr.outcomes = append(vr.outcomes, VideoSkippedExisting)
			return nil
		}

		md, err := f.source.VideoMetadata(ctx, videoID)
		if err != nil {
			lgr.Printf("[WARN] metadata of video %s: %v", videoID, err)
			vr.outcomes = append(vr.outcomes, VideoMetadataFailed)
			return nil
		}
		if md.UploadTime.Unix() <= cutoff {
			vr.outcomes = append(vr.outcomes, VideoSkippedOld)
			return nil
		}

		v := &domain.Video{
			VideoID:          videoID,
			ChannelID:        ch.ChannelID,
			Title:            md.Title,
			Description:      md.Description,
			UploadTime:       md.UploadTime,
			TranscriptStatus: domain.TranscriptPending,
			AnalysisStatus:   domain.AnalysisPending,
		}
		inserted, err := store.InsertVideo(ctx, v)
		if err != nil {
			return err
		}
		if !inserted {
			vr.outcomes = append(vr.outcomes, VideoSkippedExisting)
			return nil
		}
		vr.outcomes = append(vr.outcomes, VideoAdded)
		vr.uploaded = md.UploadTime

		vr.outcomes = append(vr.outcomes, f.fetchTranscript(ctx, store, videoID))
		return nil
	})
	if err != nil {
		lgr.Printf("[WARN] video %s: %v", videoID, err)
		vr.outcomes = append(vr.outcomes, VideoError)
	}
	return vr
}

// fetchTranscript stores the transcript of an added video or records why there is none
func (f *YouTubeFetcher) fetchTranscript(ctx context.Context, store VideoStore, videoID string) VideoOutcome {
	tr, err := f.source.Transcript(ctx, videoID, f.params.Language)
	if err != nil {
		lgr.Printf("[WARN] transcript of video %s: %v", videoID, err)
		if merr := store.MarkTranscript(ctx, videoID, domain.TranscriptFailed, err.Error()); merr != nil {
			lgr.Printf("[WARN] can't mark transcript of %s: %v", videoID, merr)
		}
		return VideoTranscriptFailed
	}
	if tr.Unavailable {
		reason := "no transcript"
		if len(tr.Available) > 0 {
			reason = "transcript available only in " + strings.Join(tr.Available, ", ")
		}
		if err := store.MarkTranscript(ctx, videoID, domain.TranscriptUnavailable, reason); err != nil {
			lgr.Printf("[WARN] can't mark transcript of %s: %v", videoID, err)
		}
		return VideoTranscriptUnavailable
	}
	t := domain.Transcript{VideoID: videoID, Language: f.params.Language, Text: tr.Text, FetchedAt: f.now()}
	if err := store.SaveTranscript(ctx, t); err != nil {
		lgr.Printf("[WARN] can't save transcript of %s: %v", videoID, err)
		return VideoTranscriptFailed
	}
	return VideoTranscriptFetched
}
