// Package report aggregates feedback of a time window into per group statistics and llm summaries
// and renders them as an xlsx workbook.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/llm"
)

//go:generate moq -out mocks/review_source.go -pkg mocks -skip-ensure -fmt goimports . ReviewSource
//go:generate moq -out mocks/video_source.go -pkg mocks -skip-ensure -fmt goimports . VideoSource
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// ReviewSource returns reviews created within a window
type ReviewSource interface {
	ReviewsInWindow(ctx context.Context, appID int64, w domain.ReportWindow) ([]domain.Review, error)
}

// VideoSource returns analyzed relevant videos of a game uploaded within a window
type VideoSource interface {
	AnalyzedVideosInWindow(ctx context.Context, gameID string, w domain.ReportWindow) ([]domain.Video, error)
}

// Summarizer starts a summary of a batch of texts, the channel delivers one result
type Summarizer interface {
	SummarizeAsync(ctx context.Context, label string, texts []string) <-chan llm.Parsed[domain.GroupSummary]
}

// Params configures sampling of texts sent for summaries
type Params struct {
	GroupSample   int // texts per group summary, 200 by default
	OverallSample int // texts in the overall summary, 300 by default
}

// Builder builds report workbooks
type Builder struct {
	reviews    ReviewSource
	videos     VideoSource
	summarizer Summarizer
	params     Params
	now        func() time.Time
}

// NewBuilder makes a report builder
func NewBuilder(reviews ReviewSource, videos VideoSource, summarizer Summarizer, params Params) *Builder {
	if params.GroupSample <= 0 {
		params.GroupSample = 200
	}
	if params.OverallSample <= 0 {
		params.OverallSample = 300
	}
	return &Builder{reviews: reviews, videos: videos, summarizer: summarizer, params: params, now: time.Now}
}

// stats are counts of a group of items
type stats struct {
	Count    int
	Positive int
	Negative int
	Mixed    int
	Neutral  int
}

// PositiveRatio returns share of positive items among positive and negative ones
func (s stats) PositiveRatio() float64 {
	if s.Positive+s.Negative == 0 {
		return 0
	}
	return float64(s.Positive) / float64(s.Positive+s.Negative)
}

func (s *stats) add(o stats) {
	s.Count += o.Count
	s.Positive += o.Positive
	s.Negative += o.Negative
	s.Mixed += o.Mixed
	s.Neutral += o.Neutral
}

// summary is a group summary or the reason it is missing
type summary struct {
	Value *domain.GroupSummary
	Err   string
}

// group is a set of items sharing a language or an influencer
type group struct {
	Name    string
	Label   string // what the texts are, passed to the summarizer
	Texts   []string
	Rows    [][]any
	Stats   stats
	Summary summary
}

// document is everything a workbook is rendered from
type document struct {
	Title       string
	Window      domain.ReportWindow
	GeneratedAt time.Time
	Kind        string // steam or youtube
	Columns     []string
	Groups      []*group
	Overall     *group
}

// BuildSteamReport renders reviews of the app created within the window, grouped by original language.
// A failed query still gives a workbook, with a single Error sheet. An error is returned only when
// no workbook could be rendered at all.
func (b *Builder) BuildSteamReport(ctx context.Context, appID int64, w domain.ReportWindow) ([]byte, error) {
	doc := &document{
		Title:       fmt.Sprintf("Steam reviews, app %d", appID),
		Window:      w,
		GeneratedAt: b.now().UTC(),
		Kind:        "steam",
		Columns:     steamColumns,
	}
	reviews, err := b.reviews.ReviewsInWindow(ctx, appID, w)
	if err != nil {
		err = fmt.Errorf("get reviews of app %d: %w", appID, err)
		lgr.Printf("[ERROR] steam report: %v", err)
		return renderError(doc, err)
	}
	if len(reviews) == 0 {
		return renderStatus(doc, "no data")
	}

	byLang := map[string]*group{}
	overall := &group{Name: "Overall", Label: "Steam reviews"}
	for i := range reviews {
		r := &reviews[i]
		g, ok := byLang[r.OriginalLanguage]
		if !ok {
			name := llm.LanguageName(r.OriginalLanguage)
			g = &group{Name: name, Label: name + " Steam reviews"}
			byLang[r.OriginalLanguage] = g
		}
		st := reviewStats(r)
		g.Stats.add(st)
		overall.Stats.add(st)
		g.Rows = append(g.Rows, reviewRow(r))
		overall.Rows = append(overall.Rows, reviewRow(r))
		if text := strings.TrimSpace(r.DisplayText()); text != "" {
			g.Texts = append(g.Texts, text)
			overall.Texts = append(overall.Texts, text)
		}
	}
	doc.Groups = sortedGroups(byLang)
	doc.Overall = overall

	b.summarize(ctx, doc)
	return render(doc)
}

// BuildYouTubeReport renders analyzed relevant videos of the game uploaded within the window, grouped by influencer
func (b *Builder) BuildYouTubeReport(ctx context.Context, gameID string, w domain.ReportWindow) ([]byte, error) {
	doc := &document{
		Title:       fmt.Sprintf("YouTube feedback, game %s", gameID),
		Window:      w,
		GeneratedAt: b.now().UTC(),
		Kind:        "youtube",
		Columns:     videoColumns,
	}
	videos, err := b.videos.AnalyzedVideosInWindow(ctx, gameID, w)
	if err != nil {
		err = fmt.Errorf("get videos of game %s: %w", gameID, err)
		lgr.Printf("[ERROR] youtube report: %v", err)
		return renderError(doc, err)
	}
	if len(videos) == 0 {
		return renderStatus(doc, "no data")
	}

	byInfluencer := map[string]*group{}
	overall := &group{Name: "Overall", Label: "YouTube video summaries"}
	for i := range videos {
		v := &videos[i]
		name := v.InfluencerName
		if name == "" {
			name = v.ChannelName
		}
		if name == "" {
			name = v.ChannelID
		}
		g, ok := byInfluencer[name]
		if !ok {
			g = &group{Name: name, Label: "YouTube video summaries of " + name}
			byInfluencer[name] = g
		}
		st := videoStats(v)
		g.Stats.add(st)
		overall.Stats.add(st)
		g.Rows = append(g.Rows, videoRow(v))
		overall.Rows = append(overall.Rows, videoRow(v))
		if v.Analysis != nil && strings.TrimSpace(v.Analysis.Summary) != "" {
			text := fmt.Sprintf("%s: %s", v.Title, v.Analysis.Summary)
			g.Texts = append(g.Texts, text)
			overall.Texts = append(overall.Texts, text)
		}
	}
	doc.Groups = sortedGroups(byInfluencer)
	doc.Overall = overall

	b.summarize(ctx, doc)
	return render(doc)
}

// summarize requests all group summaries and the overall one concurrently and waits for all of them.
// A failed summary only marks its own group.
func (b *Builder) summarize(ctx context.Context, doc *document) {
	type pending struct {
		grp *group
		ch  <-chan llm.Parsed[domain.GroupSummary]
	}
	calls := make([]pending, 0, len(doc.Groups)+1)
	start := func(grp *group, sample int) {
		ch, res := b.startSummary(ctx, grp, sample)
		if ch == nil {
			grp.Summary = res
			return
		}
		calls = append(calls, pending{grp: grp, ch: ch})
	}
	for _, grp := range doc.Groups {
		start(grp, b.params.GroupSample)
	}
	start(doc.Overall, b.params.OverallSample)

	for _, c := range calls {
		parsed, ok := <-c.ch
		switch {
		case !ok:
			c.grp.Summary = summary{Err: "summary failed: no result"}
		case parsed.Kind != llm.ResultSuccess || parsed.Value == nil:
			lgr.Printf("[WARN] summary of %s: %s", c.grp.Label, parsed.Diagnostic())
			c.grp.Summary = summary{Err: "summary failed: " + parsed.Diagnostic()}
		default:
			c.grp.Summary = summary{Value: parsed.Value}
		}
	}
}

// startSummary sends the group sample for summary. A nil channel means there is nothing to wait
// for and res holds the reason.
func (b *Builder) startSummary(ctx context.Context, grp *group, sample int) (ch <-chan llm.Parsed[domain.GroupSummary], res summary) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] panic summarizing %s: %v", grp.Label, r)
			ch, res = nil, summary{Err: fmt.Sprintf("summary failed: %v", r)}
		}
	}()
	if len(grp.Texts) == 0 {
		return nil, summary{Err: "no text to summarize"}
	}
	texts := grp.Texts
	if len(texts) > sample {
		texts = texts[:sample]
	}
	return b.summarizer.SummarizeAsync(ctx, grp.Label, texts), summary{}
}

func sortedGroups(m map[string]*group) []*group {
	res := make([]*group, 0, len(m))
	for _, g := range m {
		res = append(res, g)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Stats.Count != res[j].Stats.Count {
			return res[i].Stats.Count > res[j].Stats.Count
		}
		return res[i].Name < res[j].Name
	})
	return res
}

func reviewStats(r *domain.Review) stats {
	st := stats{Count: 1}
	if r.VotedUp {
		st.Positive = 1
	} else {
		st.Negative = 1
	}
	return st
}

func videoStats(v *domain.Video) stats {
	st := stats{Count: 1}
	if v.Analysis == nil {
		return st
	}
	switch v.Analysis.Sentiment {
	case domain.SentimentPositive:
		st.Positive = 1
	case domain.SentimentNegative:
		st.Negative = 1
	case domain.SentimentMixed:
		st.Mixed = 1
	case domain.SentimentNeutral:
		st.Neutral = 1
	}
	return st
}
