package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyWindow(t *testing.T) {
	// wednesday
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	w := WeeklyWindow(now)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, "weekly", w.Label)

	// monday itself closes the previous week
	w = WeeklyWindow(time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), w.Start)

	// sunday
	w = WeeklyWindow(time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), w.End)
}

func TestMonthlyWindow(t *testing.T) {
	w := MonthlyWindow(time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), w.End)
	assert.True(t, w.Contains(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(w.End))
	assert.True(t, w.Contains(w.Start))
}

func TestParseWindow(t *testing.T) {
	now := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	w, err := ParseWindow(now, "", 7)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), w.Start)
	assert.Equal(t, "last_7d", w.Label)

	_, err = ParseWindow(now, "", 0)
	require.Error(t, err)

	_, err = ParseWindow(now, "yearly", 0)
	require.Error(t, err)

	w, err = ParseWindow(now, "monthly", 0)
	require.NoError(t, err)
	assert.Equal(t, time.April, w.Start.Month())
}

func TestReview_NewReviewStatus(t *testing.T) {
	r := Review{RecommendationID: 1, AppID: 10, OriginalLanguage: "english", OriginalText: "great", TimestampCreated: 5}
	r.NewReviewStatus()
	assert.Equal(t, TranslationNotRequired, r.TranslationStatus)
	assert.Equal(t, "great", r.EnglishText)
	assert.Equal(t, "great", r.DisplayText())
	assert.Equal(t, AnalysisPending, r.AnalysisStatus)
	require.NoError(t, r.Validate())

	r = Review{RecommendationID: 2, AppID: 10, OriginalLanguage: "german", OriginalText: "gut", TimestampCreated: 5}
	r.NewReviewStatus()
	assert.Equal(t, TranslationPending, r.TranslationStatus)
	assert.Empty(t, r.DisplayText())
	require.NoError(t, r.Validate())

	r.OriginalLanguage = "english"
	require.Error(t, r.Validate(), "english review with pending translation is inconsistent")
}
