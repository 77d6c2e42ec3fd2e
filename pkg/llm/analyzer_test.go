package llm_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/llm"
)

func TestReviewAnalyzer_Analyze(t *testing.T) {
	mock := completer(func(req llm.Request) llm.Result {
		return llm.Result{Kind: llm.ResultSuccess, Model: "test-model", Text: `{"sentiment":"positive",
			"positive_themes":["combat"],"negative_themes":["servers"],"feature_requests":["coop"],"bug_reports":[]}`}
	})
	a := llm.NewReviewAnalyzer(mock)

	res := a.Analyze(context.Background(), "combat is great but servers lag, add coop")
	require.Equal(t, llm.ResultSuccess, res.Kind)
	require.NotNil(t, res.Value)
	assert.Equal(t, domain.SentimentPositive, res.Value.Sentiment)
	assert.Equal(t, []string{"combat"}, res.Value.PositiveThemes)
	assert.Equal(t, []string{"coop"}, res.Value.FeatureRequests)
	assert.Equal(t, "test-model", res.Value.Model)
	assert.False(t, res.Value.AnalyzedAt.IsZero())

	req := mock.CompleteCalls()[0].Req
	assert.True(t, req.JSON)
	assert.Contains(t, req.System, "positive_themes", "schema embedded in prompt")
	assert.NotContains(t, req.System, "AnalyzedAt")
}

func TestReviewAnalyzer_Failures(t *testing.T) {
	t.Run("empty text not sent", func(t *testing.T) {
		mock := completer(func(req llm.Request) llm.Result { return llm.Result{Kind: llm.ResultSuccess, Text: "{}"} })
		res := llm.NewReviewAnalyzer(mock).Analyze(context.Background(), "")
		assert.Equal(t, llm.ResultAPIError, res.Kind)
		assert.Empty(t, mock.CompleteCalls())
	})

	t.Run("garbage response", func(t *testing.T) {
		mock := completer(func(req llm.Request) llm.Result { return llm.Result{Kind: llm.ResultSuccess, Text: "I think it's positive"} })
		res := llm.NewReviewAnalyzer(mock).Analyze(context.Background(), "ok")
		assert.Equal(t, llm.ResultParseError, res.Kind)
		assert.Equal(t, "I think it's positive", res.Text)
		assert.Nil(t, res.Value)
	})

	t.Run("response of a different shape", func(t *testing.T) {
		mock := completer(func(req llm.Request) llm.Result { return llm.Result{Kind: llm.ResultSuccess, Text: `{"unexpected":"shape"}`} })
		res := llm.NewReviewAnalyzer(mock).Analyze(context.Background(), "ok")
		assert.Equal(t, llm.ResultParseError, res.Kind)
		assert.Nil(t, res.Value)
		assert.Equal(t, `unparsable response: {"unexpected":"shape"}`, res.Diagnostic())
	})

	t.Run("unknown sentiment", func(t *testing.T) {
		mock := completer(func(req llm.Request) llm.Result {
			return llm.Result{Kind: llm.ResultSuccess, Text: `{"sentiment":"banana","positive_themes":["x"]}`}
		})
		res := llm.NewReviewAnalyzer(mock).Analyze(context.Background(), "ok")
		assert.Equal(t, llm.ResultParseError, res.Kind)
		assert.Nil(t, res.Value)
		assert.Contains(t, res.Err.Error(), `unknown sentiment "banana"`)
		assert.Contains(t, res.Text, "banana", "raw response kept")
	})

	t.Run("refusal", func(t *testing.T) {
		mock := completer(func(req llm.Request) llm.Result { return llm.Result{Kind: llm.ResultRefusal, Refusal: "no"} })
		res := llm.NewReviewAnalyzer(mock).Analyze(context.Background(), "ok")
		assert.Equal(t, llm.ResultRefusal, res.Kind)
		assert.Equal(t, "no", res.Refusal)
	})
}

func TestVideoAnalyzer_Analyze(t *testing.T) {
	mock := completer(func(req llm.Request) llm.Result {
		return llm.Result{Kind: llm.ResultSuccess, Model: "test-model", Text: `{"is_relevant":true,"summary":"### Balance\n* hero X too strong",
			"sentiment":"Mixed","positive_themes":["graphics"],"negative_themes":["balance"],"bug_reports":["crash on load"],
			"feature_requests":[],"balance_feedback":["nerf X"],"gameplay_loop_feedback":[],"monetization_feedback":["skins pricey"]}`}
	})
	a := llm.NewVideoAnalyzer(mock, 10)

	res := a.Analyze(context.Background(), strings.Repeat("a", 50), "Space Game")
	require.Equal(t, llm.ResultSuccess, res.Kind)
	v := res.Value
	require.NotNil(t, v)
	assert.True(t, v.IsRelevant)
	assert.Equal(t, domain.SentimentMixed, v.Sentiment)
	assert.Equal(t, []string{"nerf X"}, v.BalanceFeedback)
	assert.Equal(t, []string{"skins pricey"}, v.MonetizationFeedback)
	assert.Equal(t, "test-model", v.Model)
	assert.NotEmpty(t, v.RawResponse)

	req := mock.CompleteCalls()[0].Req
	assert.Contains(t, req.Prompt, "Space Game")
	assert.Contains(t, req.Prompt, strings.Repeat("a", 10))
	assert.NotContains(t, req.Prompt, strings.Repeat("a", 11), "transcript truncated")
}

func TestVideoAnalyzer_NotRelevant(t *testing.T) {
	mock := completer(func(req llm.Request) llm.Result {
		return llm.Result{Kind: llm.ResultSuccess, Text: `{"is_relevant":false,"summary":"cooking video","positive_themes":["food"]}`}
	})
	res := llm.NewVideoAnalyzer(mock, 0).Analyze(context.Background(), "let's cook", "Space Game")
	require.Equal(t, llm.ResultSuccess, res.Kind)
	require.NotNil(t, res.Value)
	assert.False(t, res.Value.IsRelevant)
	assert.Empty(t, res.Value.Summary)
	assert.Empty(t, res.Value.PositiveThemes)
	assert.NotEmpty(t, res.Value.RawResponse)
}

func TestVideoAnalyzer_Invalid(t *testing.T) {
	tbl := []struct {
		name, text, err string
	}{
		{"relevance missing", `{"summary":"talks about the game","sentiment":"Positive"}`, `missing required field "is_relevant"`},
		{"relevance null", `{"is_relevant":null}`, `missing required field "is_relevant"`},
		{"unknown sentiment", `{"is_relevant":true,"summary":"ok","sentiment":"banana"}`, `unknown sentiment "banana"`},
		{"sentiment missing", `{"is_relevant":true,"summary":"ok"}`, `unknown sentiment ""`},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			mock := completer(func(req llm.Request) llm.Result { return llm.Result{Kind: llm.ResultSuccess, Text: tt.text} })
			res := llm.NewVideoAnalyzer(mock, 0).Analyze(context.Background(), "transcript", "Space Game")
			assert.Equal(t, llm.ResultParseError, res.Kind)
			assert.Nil(t, res.Value)
			assert.Contains(t, res.Err.Error(), tt.err)
			assert.Equal(t, tt.text, res.Text)
		})
	}
}

func TestSummarizer_SummarizeAsync(t *testing.T) {
	mock := completer(func(req llm.Request) llm.Result {
		return llm.Result{Kind: llm.ResultSuccess, Text: `{"summary":"players like combat","positive_themes":["combat"]}`}
	})
	s := llm.NewSummarizer(mock)

	res := <-s.SummarizeAsync(context.Background(), "Russian Steam reviews", []string{"good", "", "great"})
	require.Equal(t, llm.ResultSuccess, res.Kind)
	assert.Equal(t, "players like combat", res.Value.Summary)
	require.Len(t, mock.CompleteAsyncCalls(), 1)
	assert.Empty(t, mock.CompleteCalls())
	req := mock.CompleteAsyncCalls()[0].Req
	assert.Contains(t, req.Prompt, "batch of 2 Russian Steam reviews")
	assert.Contains(t, req.Prompt, "good\n---\ngreat")

	res = <-s.SummarizeAsync(context.Background(), "x", []string{" "})
	assert.Equal(t, llm.ResultAPIError, res.Kind)
	assert.Len(t, mock.CompleteAsyncCalls(), 1)

	bad := completer(func(req llm.Request) llm.Result { return llm.Result{Kind: llm.ResultSuccess, Text: `{"themes":["combat"]}`} })
	res = <-llm.NewSummarizer(bad).SummarizeAsync(context.Background(), "x", []string{"good"})
	assert.Equal(t, llm.ResultParseError, res.Kind)
	assert.Nil(t, res.Value)

	closed := completer(nil)
	closed.CompleteAsyncFunc = func(context.Context, llm.Request) <-chan llm.Result {
		ch := make(chan llm.Result)
		close(ch)
		return ch
	}
	res = <-llm.NewSummarizer(closed).SummarizeAsync(context.Background(), "x", []string{"good"})
	assert.Equal(t, llm.ResultAPIError, res.Kind)
}

func TestNormalizeSentiment(t *testing.T) {
	assert.Equal(t, domain.SentimentPositive, llm.NormalizeSentiment("POSITIVE"))
	assert.Equal(t, domain.SentimentNeutral, llm.NormalizeSentiment(" neutral "))
	assert.Equal(t, domain.Sentiment("Bittersweet"), llm.NormalizeSentiment("Bittersweet"))
}
