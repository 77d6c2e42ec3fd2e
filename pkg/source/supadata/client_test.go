package supadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts, NewClient(Params{BaseURL: ts.URL, APIKey: "secret", RetryDelay: time.Millisecond})
}

func TestClient_ChannelVideos(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channel/videos", r.URL.Path)
		assert.Equal(t, "@gamer", r.URL.Query().Get("id"))
		assert.Equal(t, "30", r.URL.Query().Get("limit"))
		assert.Equal(t, "video", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{"videoIds":["v1","v2"]}`))
	})

	ids, err := c.ChannelVideos(context.Background(), "@gamer", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, ids)
}

func TestClient_ChannelVideos_BadFormat(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"something":"else"}`))
	})
	_, err := c.ChannelVideos(context.Background(), "@gamer", 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no videoIds")
}

func TestClient_VideoMetadata(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/video", r.URL.Path)
		assert.Equal(t, "v1", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"id":"v1","title":"Patch review","description":"<p>new <i>patch</i></p>",
			"uploadDate":"2024-03-01T10:00:00.000Z","channel":{"id":"UC1","name":"Gamer"}}`))
	})

	md, err := c.VideoMetadata(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", md.ID)
	assert.Equal(t, "Patch review", md.Title)
	assert.Equal(t, "new patch", md.Description)
	assert.Equal(t, "UC1", md.ChannelID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), md.UploadTime)
}

func TestClient_VideoMetadata_BadDate(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"v1","uploadDate":"yesterday"}`))
	})
	_, err := c.VideoMetadata(context.Background(), "v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized upload date")
}

func TestClient_Transcript(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transcript", r.URL.Path)
			assert.Equal(t, "v1", r.URL.Query().Get("videoId"))
			assert.Equal(t, "en", r.URL.Query().Get("lang"))
			assert.Equal(t, "true", r.URL.Query().Get("text"))
			_, _ = w.Write([]byte(`{"content":"hello world","lang":"en","availableLangs":["en"]}`))
		})
		res, err := c.Transcript(context.Background(), "v1", "")
		require.NoError(t, err)
		assert.False(t, res.Unavailable)
		assert.Equal(t, "hello world", res.Text)
	})

	t.Run("other languages only", func(t *testing.T) {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"availableLangs":["de","fr"]}`))
		})
		res, err := c.Transcript(context.Background(), "v1", "en")
		require.NoError(t, err)
		assert.True(t, res.Unavailable)
		assert.Equal(t, []string{"de", "fr"}, res.Available)
	})

	t.Run("not found", func(t *testing.T) {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"transcript-unavailable"}`))
		})
		res, err := c.Transcript(context.Background(), "v1", "en")
		require.NoError(t, err)
		assert.True(t, res.Unavailable)
	})

	t.Run("empty response", func(t *testing.T) {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		_, err := c.Transcript(context.Background(), "v1", "en")
		require.Error(t, err)
	})
}

func TestClient_Retries(t *testing.T) {
	var calls int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"videoIds":["v1"]}`))
	})
	ids, err := c.ChannelVideos(context.Background(), "@gamer", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, ids)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	})
	_, err := c.ChannelVideos(context.Background(), "@gamer", 5)
	require.Error(t, err)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "invalid key", ae.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_NoAPIKey(t *testing.T) {
	c := NewClient(Params{BaseURL: "http://127.0.0.1:1"})
	_, err := c.ChannelVideos(context.Background(), "@gamer", 5)
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestParseUploadTime(t *testing.T) {
	for _, s := range []string{"2024-03-01T10:00:00Z", "2024-03-01T10:00:00.000Z", "2024-03-01T10:00:00"} {
		ts, err := ParseUploadTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), ts, s)
	}
	ts, err := ParseUploadTime("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ts)

	_, err = ParseUploadTime("")
	require.Error(t, err)
}
