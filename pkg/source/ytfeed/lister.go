// Package ytfeed lists recent videos of a youtube channel from its public atom feed.
// It needs the canonical channel id, not the handle, and returns at most 15 latest uploads.
package ytfeed

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// DefaultFeedURL is the youtube channel feed endpoint
const DefaultFeedURL = "https://www.youtube.com/feeds/videos.xml"

// Entry is a video listed in the channel feed
type Entry struct {
	VideoID   string
	Title     string
	Published time.Time
}

// Lister fetches channel feeds
type Lister struct {
	parser  *gofeed.Parser
	feedURL string
	timeout time.Duration
}

// NewLister creates a feed lister, empty feedURL means the youtube endpoint
func NewLister(feedURL string, timeout time.Duration) *Lister {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	p := gofeed.NewParser()
	p.UserAgent = "reviewscope/1.0"
	return &Lister{parser: p, feedURL: feedURL, timeout: timeout}
}

// Entries returns channel videos from the feed, newest first
func (l *Lister) Entries(ctx context.Context, channelID string) ([]Entry, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channel id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	feedURL := l.feedURL + "?channel_id=" + url.QueryEscape(channelID)
	feed, err := l.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed of channel %s: %w", channelID, err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		id := videoID(item)
		if id == "" {
			continue
		}
		e := Entry{VideoID: id, Title: item.Title}
		// parse publish time
		if item.PublishedParsed != nil {
			e.Published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			e.Published = item.UpdatedParsed.UTC()
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Published.After(entries[j].Published) })
	return entries, nil
}

// ChannelVideos returns up to limit ids of the newest channel videos
func (l *Lister) ChannelVideos(ctx context.Context, channelID string, limit int) ([]string, error) {
	entries, err := l.Entries(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.VideoID)
	}
	return ids, nil
}

// videoID takes the id from the yt:videoId extension, falling back to the "yt:video:" guid
// and to the watch link
func videoID(item *gofeed.Item) string {
	if yt, ok := item.Extensions["yt"]; ok {
		if ext, ok := yt["videoId"]; ok && len(ext) > 0 && ext[0].Value != "" {
			return ext[0].Value
		}
	}
	if strings.HasPrefix(item.GUID, "yt:video:") {
		return strings.TrimPrefix(item.GUID, "yt:video:")
	}
	if u, err := url.Parse(item.Link); err == nil {
		return u.Query().Get("v")
	}
	return ""
}
