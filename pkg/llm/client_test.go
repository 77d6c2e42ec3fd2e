package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewscope/reviewscope/pkg/config"
)

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:      url + "/v1",
		APIKey:        "test-key",
		Model:         "gpt-4.1",
		Temperature:   0.3,
		MaxTokens:     500,
		Timeout:       5 * time.Second,
		MaxAttempts:   3,
		RetryMinDelay: time.Millisecond,
		RetryMaxDelay: 5 * time.Millisecond,
	}
}

func writeCompletion(w http.ResponseWriter, msg openai.ChatCompletionMessage, finish openai.FinishReason) {
	resp := openai.ChatCompletionResponse{
		Model:   "gpt-4.1-2025",
		Choices: []openai.ChatCompletionChoice{{Message: msg, FinishReason: finish}},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4.1", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "sys", req.Messages[0].Content)
			assert.Equal(t, "hello", req.Messages[1].Content)
		}
		assert.NotNil(t, req.ResponseFormat)
		assert.InDelta(t, 0.2, req.Temperature, 0.001)

		writeCompletion(w, openai.ChatCompletionMessage{Role: "assistant", Content: " {\"ok\":true} "}, openai.FinishReasonStop)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	res := c.Complete(context.Background(), Request{System: "sys", Prompt: "hello", JSON: true, Temperature: 0.2})
	require.Equal(t, ResultSuccess, res.Kind, res.Err)
	assert.Equal(t, `{"ok":true}`, res.Text)
	assert.Equal(t, "gpt-4.1-2025", res.Model)
	assert.Equal(t, "gpt-4.1", c.Model())
}

func TestClient_Complete_Refusal(t *testing.T) {
	t.Run("refusal field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCompletion(w, openai.ChatCompletionMessage{Role: "assistant", Refusal: "I can't help with that"}, openai.FinishReasonStop)
		}))
		defer server.Close()

		res := NewClient(testConfig(server.URL)).Complete(context.Background(), Request{Prompt: "x"})
		assert.Equal(t, ResultRefusal, res.Kind)
		assert.Equal(t, "I can't help with that", res.Refusal)
		assert.Equal(t, "refusal: I can't help with that", res.Diagnostic())
	})

	t.Run("content filter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCompletion(w, openai.ChatCompletionMessage{Role: "assistant"}, openai.FinishReasonContentFilter)
		}))
		defer server.Close()

		res := NewClient(testConfig(server.URL)).Complete(context.Background(), Request{Prompt: "x"})
		assert.Equal(t, ResultRefusal, res.Kind)
	})

	t.Run("refusal text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCompletion(w, openai.ChatCompletionMessage{Role: "assistant", Content: "[REFUSAL: policy]"}, openai.FinishReasonStop)
		}))
		defer server.Close()

		res := NewClient(testConfig(server.URL)).Complete(context.Background(), Request{Prompt: "x"})
		assert.Equal(t, ResultRefusal, res.Kind)
		assert.Equal(t, "[REFUSAL: policy]", res.Refusal)
		assert.Empty(t, res.Text)
		assert.Equal(t, "refusal: [REFUSAL: policy]", res.Diagnostic())
	})
}

func TestClient_Complete_Retries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
			return
		}
		writeCompletion(w, openai.ChatCompletionMessage{Role: "assistant", Content: "done"}, openai.FinishReasonStop)
	}))
	defer server.Close()

	res := NewClient(testConfig(server.URL)).Complete(context.Background(), Request{Prompt: "x"})
	require.Equal(t, ResultSuccess, res.Kind, res.Err)
	assert.Equal(t, "done", res.Text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Complete_NoRetryOnBadRequest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	res := NewClient(testConfig(server.URL)).Complete(context.Background(), Request{Prompt: "x"})
	assert.Equal(t, ResultAPIError, res.Kind)
	require.Error(t, res.Err)
	assert.False(t, IsTransient(res.Err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Complete_GivesUpAfterAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	res := NewClient(testConfig(server.URL)).Complete(context.Background(), Request{Prompt: "x"})
	assert.Equal(t, ResultAPIError, res.Kind)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Complete_EmptyPrompt(t *testing.T) {
	c := NewClient(config.LLMConfig{Endpoint: "http://127.0.0.1:1", Model: "m"})
	res := c.Complete(context.Background(), Request{Prompt: "  "})
	assert.Equal(t, ResultAPIError, res.Kind)
	assert.ErrorIs(t, res.Err, ErrEmptyText)
}

func TestClient_CompleteAsync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, openai.ChatCompletionMessage{Role: "assistant", Content: "async"}, openai.FinishReasonStop)
	}))
	defer server.Close()

	ch := NewClient(testConfig(server.URL)).CompleteAsync(context.Background(), Request{Prompt: "x"})
	res, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, "async", res.Text)
	_, ok = <-ch
	assert.False(t, ok, "channel closed after single result")
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&openai.APIError{HTTPStatusCode: 429}))
	assert.True(t, IsTransient(&openai.APIError{HTTPStatusCode: 503}))
	assert.False(t, IsTransient(&openai.APIError{HTTPStatusCode: 401}))
	assert.True(t, IsTransient(&openai.RequestError{HTTPStatusCode: 502, Err: errors.New("bad gateway")}))
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.False(t, IsTransient(errors.New("something")))
	assert.False(t, IsTransient(nil))
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	res := decode[payload](Result{Kind: ResultSuccess, Text: "Sure! ```json\n{\"name\":\"x\"}\n```"})
	require.Equal(t, ResultSuccess, res.Kind)
	require.NotNil(t, res.Value)
	assert.Equal(t, "x", res.Value.Name)

	res = decode[payload](Result{Kind: ResultSuccess, Text: "no json here"})
	assert.Equal(t, ResultParseError, res.Kind)
	assert.Nil(t, res.Value)
	var pe *ParseError
	require.ErrorAs(t, res.Err, &pe)
	assert.Equal(t, "no json here", pe.Raw)
	assert.Equal(t, "unparsable response: no json here", res.Diagnostic())

	res = decode[payload](Result{Kind: ResultSuccess, Text: `{"name": 5}`})
	assert.Equal(t, ResultParseError, res.Kind)

	res = decode[payload](Result{Kind: ResultRefusal, Refusal: "no"})
	assert.Equal(t, ResultRefusal, res.Kind)
	assert.Nil(t, res.Value)

	t.Run("required fields", func(t *testing.T) {
		res := decode[payload](Result{Kind: ResultSuccess, Text: `{"other":"shape"}`}, "name")
		assert.Equal(t, ResultParseError, res.Kind)
		assert.Nil(t, res.Value)
		assert.Contains(t, res.Err.Error(), `missing required field "name"`)
		assert.Equal(t, `unparsable response: {"other":"shape"}`, res.Diagnostic())

		res = decode[payload](Result{Kind: ResultSuccess, Text: `{"name":null}`}, "name")
		assert.Equal(t, ResultParseError, res.Kind)

		res = decode[payload](Result{Kind: ResultSuccess, Text: `{"name":""}`}, "name")
		require.Equal(t, ResultSuccess, res.Kind)
		assert.Empty(t, res.Value.Name)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "при", Truncate("привет", 3))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
