package ingest_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/ingest"
	"github.com/reviewscope/reviewscope/pkg/ingest/mocks"
	"github.com/reviewscope/reviewscope/pkg/source/supadata"
)

// videoStore is an in-memory video store
type videoStore struct {
	mu          sync.Mutex
	videos      map[string]domain.Video
	transcripts map[string]string
	reasons     map[string]string
}

func newVideoStore(existing ...string) *videoStore {
	s := &videoStore{videos: map[string]domain.Video{}, transcripts: map[string]string{}, reasons: map[string]string{}}
	for _, id := range existing {
		s.videos[id] = domain.Video{VideoID: id}
	}
	return s
}

func (s *videoStore) mock() *mocks.VideoStoreMock {
	return &mocks.VideoStoreMock{
		VideoExistsFunc: func(_ context.Context, id string) (bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			_, ok := s.videos[id]
			return ok, nil
		},
		InsertVideoFunc: func(_ context.Context, v *domain.Video) (bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.videos[v.VideoID]; ok {
				return false, nil
			}
			s.videos[v.VideoID] = *v
			return true, nil
		},
		SaveTranscriptFunc: func(_ context.Context, t domain.Transcript) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.transcripts[t.VideoID] = t.Text
			v := s.videos[t.VideoID]
			v.TranscriptStatus = domain.TranscriptFetched
			s.videos[t.VideoID] = v
			return nil
		},
		MarkTranscriptFunc: func(_ context.Context, id string, status domain.TranscriptStatus, reason string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			v := s.videos[id]
			v.TranscriptStatus = status
			s.videos[id] = v
			s.reasons[id] = reason
			return nil
		},
	}
}

// sessions hands out the same store, counting sessions
func sessions(store ingest.VideoStore) *mocks.SessionProviderMock {
	return &mocks.SessionProviderMock{
		WithVideoSessionFunc: func(_ context.Context, fn func(store ingest.VideoStore) error) error { return fn(store) },
	}
}

type fakeVideo struct {
	uploaded   int64
	metaErr    error
	transcript string
	available  []string // set when no transcript in requested language
	trErr      error
}

func videoSource(ids []string, listErr error, videos map[string]fakeVideo) *mocks.VideoSourceMock {
	return &mocks.VideoSourceMock{
		ChannelVideosFunc: func(_ context.Context, handle string, limit int) ([]string, error) {
			return ids, listErr
		},
		VideoMetadataFunc: func(_ context.Context, id string) (supadata.VideoMetadata, error) {
			v := videos[id]
			if v.metaErr != nil {
				return supadata.VideoMetadata{}, v.metaErr
			}
			return supadata.VideoMetadata{ID: id, Title: "title " + id, UploadTime: time.Unix(v.uploaded, 0)}, nil
		},
		TranscriptFunc: func(_ context.Context, id, lang string) (supadata.TranscriptResult, error) {
			v := videos[id]
			if v.trErr != nil {
				return supadata.TranscriptResult{}, v.trErr
			}
			if v.transcript == "" {
				return supadata.TranscriptResult{Unavailable: true, Available: v.available}, nil
			}
			return supadata.TranscriptResult{Text: v.transcript}, nil
		},
	}
}

var testChannel = domain.Channel{ChannelID: "UC1", Handle: "@gamer", Name: "Gamer"}

func TestYouTubeFetcher_RunChannel(t *testing.T) {
	m := newMarks(map[string]int64{testChannel.Ref().String(): 1000})
	store := newVideoStore("v3")
	source := videoSource([]string{"v3", "v2", "v1", "v0"}, nil, map[string]fakeVideo{
		"v2": {uploaded: 2000, transcript: "hello world"},
		"v1": {uploaded: 1500, available: []string{"de", "fr"}},
		"v0": {uploaded: 900, transcript: "old"},
	})
	sp := sessions(store.mock())
	f := ingest.NewYouTubeFetcher(source, nil, nil, sp, m.tracker(), ingest.YouTubeParams{FetchLimit: 10, MaxWorkers: 2})

	res := f.RunChannel(context.Background(), testChannel)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Videos[ingest.VideoSkippedExisting])
	assert.Equal(t, 1, res.Videos[ingest.VideoSkippedOld])
	assert.Equal(t, 2, res.Videos[ingest.VideoAdded])
	assert.Equal(t, 1, res.Videos[ingest.VideoTranscriptFetched])
	assert.Equal(t, 1, res.Videos[ingest.VideoTranscriptUnavailable])
	assert.Equal(t, 2, res.Persisted)
	assert.Len(t, sp.WithVideoSessionCalls(), 4, "one session per video")

	assert.Equal(t, domain.Advanced, res.Outcome.Kind)
	assert.Equal(t, int64(2000), m.get(testChannel.Ref()))

	assert.Equal(t, "hello world", store.transcripts["v2"])
	assert.Equal(t, domain.TranscriptUnavailable, store.videos["v1"].TranscriptStatus)
	assert.Equal(t, "transcript available only in de, fr", store.reasons["v1"])
	assert.Equal(t, "UC1", store.videos["v2"].ChannelID)
	_, stored := store.videos["v0"]
	assert.False(t, stored)

	call := source.ChannelVideosCalls()[0]
	assert.Equal(t, "@gamer", call.Handle)
	assert.Equal(t, 10, call.Limit)
	assert.Equal(t, "en", source.TranscriptCalls()[0].Lang)
}

func TestYouTubeFetcher_RunChannel_TranscriptFailure(t *testing.T) {
	m := newMarks(nil)
	store := newVideoStore()
	source := videoSource([]string{"v1"}, nil, map[string]fakeVideo{"v1": {uploaded: 1500, trErr: errors.New("timeout")}})
	f := ingest.NewYouTubeFetcher(source, nil, nil, sessions(store.mock()), m.tracker(), ingest.YouTubeParams{})

	res := f.RunChannel(context.Background(), testChannel)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Videos[ingest.VideoTranscriptFailed])
	assert.Equal(t, domain.TranscriptFailed, store.videos["v1"].TranscriptStatus)
	assert.Equal(t, "timeout", store.reasons["v1"])
	assert.Equal(t, int64(1500), m.get(testChannel.Ref()), "video itself was persisted")
}

func TestYouTubeFetcher_RunChannel_MetadataFailureHolds(t *testing.T) {
	m := newMarks(map[string]int64{testChannel.Ref().String(): 1000})
	store := newVideoStore()
	source := videoSource([]string{"v2", "v1"}, nil, map[string]fakeVideo{
		"v2": {metaErr: errors.New("quota")},
		"v1": {uploaded: 1500, transcript: "text"},
	})
	f := ingest.NewYouTubeFetcher(source, nil, nil, sessions(store.mock()), m.tracker(), ingest.YouTubeParams{})

	res := f.RunChannel(context.Background(), testChannel)
	assert.Equal(t, 1, res.Videos[ingest.VideoMetadataFailed])
	assert.Equal(t, 1, res.Videos[ingest.VideoAdded])
	assert.Equal(t, domain.Held, res.Outcome.Kind)
	assert.Equal(t, int64(1000), m.get(testChannel.Ref()))
}

func TestYouTubeFetcher_RunChannel_Listing(t *testing.T) {
	t.Run("feed fallback", func(t *testing.T) {
		m := newMarks(nil)
		store := newVideoStore()
		source := videoSource(nil, errors.New("supadata down"), map[string]fakeVideo{"v1": {uploaded: 1500, transcript: "t"}})
		feed := &mocks.FeedListerMock{
			ChannelVideosFunc: func(_ context.Context, channelID string, limit int) ([]string, error) {
				assert.Equal(t, "UC1", channelID)
				return []string{"v1"}, nil
			},
		}
		f := ingest.NewYouTubeFetcher(source, feed, nil, sessions(store.mock()), m.tracker(), ingest.YouTubeParams{})
		res := f.RunChannel(context.Background(), testChannel)
		require.NoError(t, res.Err)
		assert.Equal(t, 1, res.Videos[ingest.VideoAdded])
		assert.Len(t, feed.ChannelVideosCalls(), 1)
	})

	t.Run("listing failure holds", func(t *testing.T) {
		m := newMarks(map[string]int64{testChannel.Ref().String(): 1000})
		source := videoSource(nil, errors.New("supadata down"), nil)
		feed := &mocks.FeedListerMock{
			ChannelVideosFunc: func(context.Context, string, int) ([]string, error) { return nil, errors.New("feed down") },
		}
		sp := sessions(newVideoStore().mock())
		f := ingest.NewYouTubeFetcher(source, feed, nil, sp, m.tracker(), ingest.YouTubeParams{})
		res := f.RunChannel(context.Background(), testChannel)
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "feed down")
		assert.Equal(t, domain.Held, res.Outcome.Kind)
		assert.Equal(t, int64(1000), m.get(testChannel.Ref()))
		assert.Empty(t, sp.WithVideoSessionCalls())
	})

	t.Run("empty listing forces now", func(t *testing.T) {
		m := newMarks(map[string]int64{testChannel.Ref().String(): 1000})
		f := ingest.NewYouTubeFetcher(videoSource(nil, nil, nil), nil, nil, sessions(newVideoStore().mock()), m.tracker(),
			ingest.YouTubeParams{})
		res := f.RunChannel(context.Background(), testChannel)
		require.NoError(t, res.Err)
		assert.Equal(t, domain.ForcedToNow, res.Outcome.Kind)
		assert.InDelta(t, time.Now().Unix(), m.get(testChannel.Ref()), 60)
	})

	t.Run("no handle forces now", func(t *testing.T) {
		m := newMarks(nil)
		source := videoSource(nil, nil, nil)
		f := ingest.NewYouTubeFetcher(source, nil, nil, sessions(newVideoStore().mock()), m.tracker(), ingest.YouTubeParams{})
		res := f.RunChannel(context.Background(), domain.Channel{ChannelID: "UC2"})
		require.NoError(t, res.Err)
		assert.Equal(t, domain.ForcedToNow, res.Outcome.Kind)
		assert.Empty(t, source.ChannelVideosCalls())
	})
}

func TestYouTubeFetcher_RunChannel_SessionFailure(t *testing.T) {
	m := newMarks(nil)
	source := videoSource([]string{"v1", "v2"}, nil, map[string]fakeVideo{"v1": {uploaded: 10}, "v2": {uploaded: 20}})
	sp := &mocks.SessionProviderMock{
		WithVideoSessionFunc: func(context.Context, func(store ingest.VideoStore) error) error {
			return errors.New("pool exhausted")
		},
	}
	f := ingest.NewYouTubeFetcher(source, nil, nil, sp, m.tracker(), ingest.YouTubeParams{})
	res := f.RunChannel(context.Background(), testChannel)
	assert.Equal(t, 2, res.Videos[ingest.VideoError])
	assert.Equal(t, domain.Held, res.Outcome.Kind)
}

func TestYouTubeFetcher_RunAll(t *testing.T) {
	m := newMarks(nil)
	store := newVideoStore()
	source := &mocks.VideoSourceMock{
		ChannelVideosFunc: func(_ context.Context, handle string, limit int) ([]string, error) {
			if handle == "@broken" {
				return nil, errors.New("not found")
			}
			return []string{handle + "-v"}, nil
		},
		VideoMetadataFunc: func(_ context.Context, id string) (supadata.VideoMetadata, error) {
			return supadata.VideoMetadata{ID: id, UploadTime: time.Unix(100, 0)}, nil
		},
		TranscriptFunc: func(context.Context, string, string) (supadata.TranscriptResult, error) {
			return supadata.TranscriptResult{Text: "t"}, nil
		},
	}
	channels := &mocks.ChannelListerMock{
		ListChannelsFunc: func(context.Context, bool) ([]domain.Channel, error) {
			return []domain.Channel{{ChannelID: "UC1", Handle: "@a"}, {ChannelID: "UC2", Handle: "@broken"}}, nil
		},
	}
	f := ingest.NewYouTubeFetcher(source, nil, channels, sessions(store.mock()), m.tracker(), ingest.YouTubeParams{Concurrency: 2})
	summary, err := f.RunAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Persisted)
	assert.Equal(t, int64(100), m.get(domain.ChannelRef("UC1")))
	assert.Equal(t, int64(0), m.get(domain.ChannelRef("UC2")))
}
