package domain

import (
	"fmt"
	"time"
)

// LanguageEnglish is the steam language code for english reviews
const LanguageEnglish = "english"

// TranslationStatus tracks translation of a review into english
type TranslationStatus string

const (
	TranslationNotRequired TranslationStatus = "not_required"
	TranslationPending     TranslationStatus = "pending"
	TranslationDone        TranslationStatus = "translated"
	TranslationFailed      TranslationStatus = "failed"
	TranslationSkipped     TranslationStatus = "skipped"
)

// AnalysisStatus tracks llm analysis of an item
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisDone       AnalysisStatus = "analyzed"
	AnalysisIrrelevant AnalysisStatus = "irrelevant"
	AnalysisFailed     AnalysisStatus = "failed"
	AnalysisSkipped    AnalysisStatus = "skipped"
)

// TranscriptStatus tracks fetching of a video transcript
type TranscriptStatus string

const (
	TranscriptPending     TranscriptStatus = "pending"
	TranscriptFetched     TranscriptStatus = "fetched"
	TranscriptUnavailable TranscriptStatus = "unavailable"
	TranscriptFailed      TranscriptStatus = "failed"
)

// Terminal reports whether the status can't change anymore
func (s TranslationStatus) Terminal() bool {
	return s != TranslationPending
}

// Terminal reports whether the status can't change anymore
func (s AnalysisStatus) Terminal() bool {
	return s != AnalysisPending
}

// Review is a single steam review with its enrichment state
type Review struct {
	RecommendationID int64
	AppID            int64
	AuthorSteamID    string
	OriginalLanguage string
	OriginalText     string
	EnglishText      string
	TimestampCreated int64
	TimestampUpdated int64
	VotedUp          bool
	VotesUp          int
	VotesFunny       int
	WeightedScore    float64
	CommentCount     int
	SteamPurchase    bool
	ReceivedForFree  bool
	EarlyAccess      bool
	DeveloperReply   string
	DeveloperReplyAt int64

	AuthorGamesOwned     int
	AuthorReviews        int
	PlaytimeForever      int
	PlaytimeLastTwoWeeks int
	PlaytimeAtReview     int
	LastPlayed           int64

	TranslationStatus TranslationStatus
	TranslatedAt      *time.Time
	TranslationModel  string
	AnalysisStatus    AnalysisStatus
	EnrichmentError   string

	Analysis *ReviewAnalysis
}

// NewReviewStatus applies the language rule to a freshly fetched review:
// english reviews don't need translation and display their own text.
func (r *Review) NewReviewStatus() {
	r.AnalysisStatus = AnalysisPending
	if r.OriginalLanguage == LanguageEnglish {
		r.TranslationStatus = TranslationNotRequired
		r.EnglishText = r.OriginalText
		return
	}
	r.TranslationStatus = TranslationPending
	r.EnglishText = ""
}

// DisplayText returns the text used for analysis and reports, empty if not yet available
func (r *Review) DisplayText() string {
	switch r.TranslationStatus {
	case TranslationNotRequired:
		if r.EnglishText != "" {
			return r.EnglishText
		}
		return r.OriginalText
	case TranslationDone:
		return r.EnglishText
	default:
		return ""
	}
}

// Validate checks fields required before persisting
func (r *Review) Validate() error {
	if r.RecommendationID == 0 {
		return fmt.Errorf("review: missing recommendation id")
	}
	if r.AppID == 0 {
		return fmt.Errorf("review %d: missing app id", r.RecommendationID)
	}
	if r.TimestampCreated <= 0 {
		return fmt.Errorf("review %d: missing creation timestamp", r.RecommendationID)
	}
	if r.OriginalLanguage == LanguageEnglish && r.TranslationStatus != TranslationNotRequired {
		return fmt.Errorf("review %d: english review must have translation status %q", r.RecommendationID, TranslationNotRequired)
	}
	return nil
}

// Video is a youtube video with its transcript and enrichment state
type Video struct {
	VideoID          string
	ChannelID        string
	Title            string
	Description      string
	UploadTime       time.Time
	TranscriptStatus TranscriptStatus
	AnalysisStatus   AnalysisStatus
	EnrichmentError  string
	CreatedAt        time.Time

	// joined data, populated by report queries
	ChannelName    string
	InfluencerName string
	Analysis       *VideoAnalysis
}

// Validate checks fields required before persisting
func (v *Video) Validate() error {
	if v.VideoID == "" {
		return fmt.Errorf("video: missing video id")
	}
	if v.ChannelID == "" {
		return fmt.Errorf("video %s: missing channel id", v.VideoID)
	}
	if v.UploadTime.IsZero() {
		return fmt.Errorf("video %s: missing upload time", v.VideoID)
	}
	return nil
}

// Transcript is the text of a video in a specific language
type Transcript struct {
	VideoID   string
	Language  string
	Text      string
	FetchedAt time.Time
}
