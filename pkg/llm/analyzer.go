package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// DefaultTranscriptLimit is the number of transcript characters sent for analysis
const DefaultTranscriptLimit = 20000

const reviewAnalyzerPrompt = `You are an expert text analyst. Analyze the following Steam review text.
Extract key information and respond only with a valid JSON object adhering strictly to the following JSON schema.
Do not include any introductory text, explanations or markdown formatting outside the JSON object.
Schema:
%s
Populate the fields based only on the provided review text. If a category has no relevant information, provide an empty list.`

const videoAnalyzerSystem = `You are an AI assistant analyzing YouTube video transcripts for game feedback. ` +
	`Respond ONLY with the JSON structure requested.`

const videoAnalyzerPrompt = `Analyze the following YouTube video transcript specifically regarding the game '%[1]s'.
Determine if the video is primarily about or contains significant discussion of '%[1]s'.

If it is relevant, provide a developer focused summary (markdown sections and bullet points, no intros,
outros, sponsor messages or calls to action), the overall sentiment, positive and negative themes,
bug reports, feature requests and specific feedback on balance, the core gameplay loop and monetization.

If it is NOT relevant to '%[1]s', only set is_relevant to false.

Format the entire response strictly as a JSON object matching this schema:
%[2]s

Transcript Text:
---
%[3]s
---`

// ReviewAnalyzer extracts structured feedback from a single review
type ReviewAnalyzer struct {
	llm    Completer
	schema string
}

// NewReviewAnalyzer makes a review analyzer
func NewReviewAnalyzer(llm Completer) *ReviewAnalyzer {
	return &ReviewAnalyzer{llm: llm, schema: schemaOf(&domain.ReviewAnalysis{})}
}

// Analyze sends the review text and decodes the structured analysis
func (a *ReviewAnalyzer) Analyze(ctx context.Context, text string) Parsed[domain.ReviewAnalysis] {
	if strings.TrimSpace(text) == "" {
		return Parsed[domain.ReviewAnalysis]{Result: Result{Kind: ResultAPIError, Err: ErrEmptyText, Model: a.llm.Model()}}
	}
	res := decode[domain.ReviewAnalysis](a.llm.Complete(ctx, Request{
		System:      fmt.Sprintf(reviewAnalyzerPrompt, a.schema),
		Prompt:      "Analyze this review text and respond with JSON:\n\n" + text,
		JSON:        true,
		Temperature: 0.2,
	}), "sentiment")
	if res.Value != nil {
		res.Value.Sentiment = NormalizeSentiment(res.Value.Sentiment)
		if !res.Value.Sentiment.Valid() {
			res = invalid[domain.ReviewAnalysis](res.Result, fmt.Errorf("unknown sentiment %q", res.Value.Sentiment))
		}
	}
	if res.Kind == ResultParseError {
		lgr.Printf("[WARN] invalid review analysis, %v, raw response: %s", res.Err, res.Text)
		return res
	}
	if res.Value != nil {
		res.Value.Model = res.Model
		res.Value.AnalyzedAt = time.Now().UTC()
	}
	return res
}

// VideoAnalyzer checks a transcript for relevance to a game and extracts structured feedback
type VideoAnalyzer struct {
	llm    Completer
	schema string
	limit  int
}

// NewVideoAnalyzer makes a video analyzer, transcripts are cut to limit characters
func NewVideoAnalyzer(llm Completer, limit int) *VideoAnalyzer {
	if limit <= 0 {
		limit = DefaultTranscriptLimit
	}
	return &VideoAnalyzer{llm: llm, schema: schemaOf(&domain.VideoAnalysis{}), limit: limit}
}

// Analyze sends the transcript and decodes the structured analysis. Irrelevant videos get
// all feedback fields cleared.
func (a *VideoAnalyzer) Analyze(ctx context.Context, transcript, gameName string) Parsed[domain.VideoAnalysis] {
	if strings.TrimSpace(transcript) == "" {
		return Parsed[domain.VideoAnalysis]{Result: Result{Kind: ResultAPIError, Err: ErrEmptyText, Model: a.llm.Model()}}
	}
	truncated := Truncate(transcript, a.limit)
	if len(truncated) < len(transcript) {
		lgr.Printf("[DEBUG] transcript truncated to %d chars", a.limit)
	}

	res := decode[domain.VideoAnalysis](a.llm.Complete(ctx, Request{
		System:      videoAnalyzerSystem,
		Prompt:      fmt.Sprintf(videoAnalyzerPrompt, gameName, a.schema, truncated),
		JSON:        true,
		Temperature: 0.2,
		MaxTokens:   2048,
	}), "is_relevant")
	if v := res.Value; v != nil {
		if !v.IsRelevant {
			*v = domain.VideoAnalysis{}
		}
		v.Sentiment = NormalizeSentiment(v.Sentiment)
		// sentiment is only asked for relevant videos
		if v.IsRelevant && !v.Sentiment.Valid() {
			res = invalid[domain.VideoAnalysis](res.Result, fmt.Errorf("unknown sentiment %q", v.Sentiment))
		}
	}
	if res.Kind == ResultParseError {
		lgr.Printf("[WARN] invalid video analysis, %v, raw response: %s", res.Err, res.Text)
		return res
	}
	if v := res.Value; v != nil {
		v.Model = res.Model
		v.RawResponse = res.Text
		v.AnalyzedAt = time.Now().UTC()
	}
	return res
}

// Truncate cuts s to at most limit characters without breaking utf-8 sequences
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := 0
	for i := range s {
		if runes == limit {
			return s[:i]
		}
		runes++
	}
	return s
}

// NormalizeSentiment maps llm sentiment spelling to known values, unknown values are kept as is
func NormalizeSentiment(s domain.Sentiment) domain.Sentiment {
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case "positive":
		return domain.SentimentPositive
	case "negative":
		return domain.SentimentNegative
	case "mixed":
		return domain.SentimentMixed
	case "neutral":
		return domain.SentimentNeutral
	default:
		return s
	}
}

// schemaOf renders inline json schema of v for prompts
func schemaOf(v any) string {
	r := jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}
	data, err := json.MarshalIndent(r.Reflect(v), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
