package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

const pageJSON = `{
  "success": 1,
  "cursor": "AoJ4next",
  "reviews": [
    {
      "recommendationid": "1001",
      "author": {"steamid": "7656", "num_games_owned": 12, "num_reviews": 3, "playtime_forever": 600,
                 "playtime_last_two_weeks": 30, "playtime_at_review": 500, "last_played": 1700000000},
      "language": "english",
      "review": "great game",
      "timestamp_created": 1200,
      "timestamp_updated": 1210,
      "voted_up": true,
      "votes_up": 4,
      "votes_funny": 1,
      "weighted_vote_score": "0.523809552192687988",
      "comment_count": 2,
      "steam_purchase": true,
      "received_for_free": false,
      "written_during_early_access": true,
      "developer_response": "<b>thanks</b> for playing",
      "timestamp_dev_responded": 1300
    },
    {
      "recommendationid": "1002",
      "author": {"steamid": "7657"},
      "language": "schinese",
      "review": "很好玩",
      "timestamp_created": 1100,
      "weighted_vote_score": 0.25
    },
    {
      "recommendationid": "bad-id",
      "language": "english",
      "review": "dropped",
      "timestamp_created": 1050
    }
  ]
}`

func TestClient_FetchPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appreviews/440", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("json"))
		assert.Equal(t, "*", q.Get("cursor"))
		assert.Equal(t, "100", q.Get("num_per_page"))
		assert.Equal(t, "all", q.Get("language"))
		assert.Equal(t, "recent", q.Get("filter"))
		assert.Equal(t, "all", q.Get("review_type"))
		assert.Equal(t, "all", q.Get("purchase_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageJSON))
	}))
	defer ts.Close()

	c := NewClient(Params{BaseURL: ts.URL})
	page, err := c.FetchPage(context.Background(), 440, "", 100, "")
	require.NoError(t, err)

	assert.Equal(t, "AoJ4next", page.NextCursor)
	require.Len(t, page.Reviews, 2, "malformed review skipped")
	assert.Equal(t, 1, page.Skipped)
	assert.False(t, page.Empty())

	en := page.Reviews[0]
	assert.Equal(t, int64(1001), en.RecommendationID)
	assert.Equal(t, int64(440), en.AppID)
	assert.Equal(t, "7656", en.AuthorSteamID)
	assert.Equal(t, domain.TranslationNotRequired, en.TranslationStatus)
	assert.Equal(t, "great game", en.EnglishText)
	assert.Equal(t, domain.AnalysisPending, en.AnalysisStatus)
	assert.InDelta(t, 0.5238, en.WeightedScore, 0.001)
	assert.Equal(t, "thanks for playing", en.DeveloperReply)
	assert.Equal(t, int64(1300), en.DeveloperReplyAt)
	assert.True(t, en.EarlyAccess)
	assert.Equal(t, 600, en.PlaytimeForever)
	assert.Equal(t, 12, en.AuthorGamesOwned)

	zh := page.Reviews[1]
	assert.Equal(t, "schinese", zh.OriginalLanguage)
	assert.Equal(t, domain.TranslationPending, zh.TranslationStatus)
	assert.Empty(t, zh.EnglishText)
	assert.InDelta(t, 0.25, zh.WeightedScore, 0.001)
}

func TestClient_FetchPage_RetriesTransient(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"success":1,"cursor":"c2","reviews":[]}`))
	}))
	defer ts.Close()

	c := NewClient(Params{BaseURL: ts.URL, RetryDelay: time.Millisecond})
	page, err := c.FetchPage(context.Background(), 1, "c1", 100, "all")
	require.NoError(t, err)
	assert.Empty(t, page.Reviews)
	assert.Equal(t, "c2", page.NextCursor)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_FetchPage_Errors(t *testing.T) {
	t.Run("client error is not retried", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		c := NewClient(Params{BaseURL: ts.URL, RetryDelay: time.Millisecond})
		_, err := c.FetchPage(context.Background(), 1, "", 100, "all")
		require.Error(t, err)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusForbidden, se.Code)
		assert.False(t, se.Transient())
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("persistent server error gives up", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		c := NewClient(Params{BaseURL: ts.URL, Attempts: 2, RetryDelay: time.Millisecond})
		_, err := c.FetchPage(context.Background(), 1, "", 100, "all")
		require.Error(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("unsuccessful response", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":2}`))
		}))
		defer ts.Close()

		_, err := NewClient(Params{BaseURL: ts.URL}).FetchPage(context.Background(), 1, "", 100, "all")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "success=2")
	})

	t.Run("bad json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer ts.Close()

		_, err := NewClient(Params{BaseURL: ts.URL}).FetchPage(context.Background(), 1, "", 100, "all")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})
}

func TestFlexFloat(t *testing.T) {
	tbl := []struct {
		in   string
		want float64
	}{
		{`0.5`, 0.5},
		{`"0.75"`, 0.75},
		{`""`, 0},
		{`null`, 0},
		{`"abc"`, 0},
	}
	for _, tt := range tbl {
		var f flexFloat
		require.NoError(t, f.UnmarshalJSON([]byte(tt.in)))
		assert.InDelta(t, tt.want, float64(f), 0.0001, tt.in)
	}
}
