package domain

import "time"

// Sentiment is the overall tone the llm assigns to a piece of feedback
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentMixed    Sentiment = "Mixed"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the known sentiments
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentMixed, SentimentNeutral:
		return true
	}
	return false
}

// ReviewAnalysis is the structured llm analysis of a review
type ReviewAnalysis struct {
	Sentiment       Sentiment `json:"sentiment" jsonschema:"enum=Positive,enum=Negative,enum=Mixed,enum=Neutral"`
	PositiveThemes  []string  `json:"positive_themes"`
	NegativeThemes  []string  `json:"negative_themes"`
	FeatureRequests []string  `json:"feature_requests"`
	BugReports      []string  `json:"bug_reports"`

	Model      string    `json:"-"`
	AnalyzedAt time.Time `json:"-"`
}

// VideoAnalysis is the structured llm analysis of a video transcript
type VideoAnalysis struct {
	IsRelevant           bool      `json:"is_relevant"`
	Summary              string    `json:"summary"`
	Sentiment            Sentiment `json:"sentiment" jsonschema:"enum=Positive,enum=Negative,enum=Mixed,enum=Neutral"`
	PositiveThemes       []string  `json:"positive_themes"`
	NegativeThemes       []string  `json:"negative_themes"`
	FeatureRequests      []string  `json:"feature_requests"`
	BugReports           []string  `json:"bug_reports"`
	BalanceFeedback      []string  `json:"balance_feedback"`
	GameplayLoopFeedback []string  `json:"gameplay_loop_feedback"`
	MonetizationFeedback []string  `json:"monetization_feedback"`

	Model       string    `json:"-"`
	RawResponse string    `json:"-"`
	AnalyzedAt  time.Time `json:"-"`
}

// GroupSummary is the llm summary of a group of feedback texts
type GroupSummary struct {
	Summary         string   `json:"summary"`
	PositiveThemes  []string `json:"positive_themes"`
	NegativeThemes  []string `json:"negative_themes"`
	FeatureRequests []string `json:"feature_requests"`
	BugReports      []string `json:"bug_reports"`
}
