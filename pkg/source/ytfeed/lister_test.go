package ytfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
	<title>Gamer</title>
	<entry>
		<id>yt:video:old1</id>
		<yt:videoId>old1</yt:videoId>
		<yt:channelId>UC1</yt:channelId>
		<title>Old video</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=old1"/>
		<published>2024-02-01T10:00:00+00:00</published>
		<updated>2024-02-02T10:00:00+00:00</updated>
	</entry>
	<entry>
		<id>yt:video:new1</id>
		<yt:videoId>new1</yt:videoId>
		<yt:channelId>UC1</yt:channelId>
		<title>New video</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=new1"/>
		<published>2024-03-01T10:00:00+00:00</published>
		<updated>2024-03-01T11:00:00+00:00</updated>
	</entry>
	<entry>
		<id>tag:other</id>
		<title>Guid only in link</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=mid1"/>
		<published>2024-02-15T10:00:00+00:00</published>
	</entry>
</feed>`

func TestLister_Entries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "UC1", r.URL.Query().Get("channel_id"))
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(channelFeed))
	}))
	defer ts.Close()

	l := NewLister(ts.URL, 5*time.Second)
	entries, err := l.Entries(context.Background(), "UC1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "new1", entries[0].VideoID)
	assert.Equal(t, "New video", entries[0].Title)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), entries[0].Published)
	assert.Equal(t, "mid1", entries[1].VideoID)
	assert.Equal(t, "old1", entries[2].VideoID)

	ids, err := l.ChannelVideos(context.Background(), "UC1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"new1", "mid1"}, ids)
}

func TestLister_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	l := NewLister(ts.URL, time.Second)
	_, err := l.ChannelVideos(context.Background(), "UC1", 10)
	require.Error(t, err)

	_, err = l.Entries(context.Background(), "")
	require.Error(t, err)
}
