// Package llm wraps an openai compatible chat api. Every call returns a tagged Result instead of
// an error, so callers can tell refusals from api failures and from unparsable responses.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/reviewscope/reviewscope/pkg/config"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer

// refusalPrefix marks a text refusal of models and proxies without the refusal field, e.g. "[REFUSAL: policy]"
const refusalPrefix = "[REFUSAL"

// ErrEmptyText is returned without calling the api when there is nothing to send
var ErrEmptyText = errors.New("empty input text")

// Completer runs chat completions
type Completer interface {
	Complete(ctx context.Context, req Request) Result
	CompleteAsync(ctx context.Context, req Request) <-chan Result
	Model() string
}

// ResultKind tags the outcome of a completion
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultRefusal
	ResultAPIError
	ResultParseError
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultRefusal:
		return "refusal"
	case ResultAPIError:
		return "api_error"
	case ResultParseError:
		return "parse_error"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Request is a single system + user prompt exchange
type Request struct {
	System      string
	Prompt      string
	JSON        bool    // ask for a json object response
	Temperature float32 // zero means configured default
	MaxTokens   int     // zero means configured default
}

// Result is the tagged outcome of a completion. Text is the response for ResultSuccess and the
// raw response for ResultParseError, Refusal is set for ResultRefusal, Err for api and parse errors.
type Result struct {
	Kind    ResultKind
	Text    string
	Refusal string
	Err     error
	Model   string
}

// Diagnostic returns the text worth keeping on a failed or skipped item
func (r Result) Diagnostic() string {
	switch r.Kind {
	case ResultRefusal:
		return "refusal: " + r.Refusal
	case ResultParseError:
		return "unparsable response: " + r.Text
	case ResultAPIError:
		if r.Err != nil {
			return "api error: " + r.Err.Error()
		}
		return "api error"
	default:
		return ""
	}
}

// ParseError is returned when a successful response can't be decoded into the expected structure
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse llm response: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Client calls the chat completions api with retries of transient failures
type Client struct {
	api    *openai.Client
	config config.LLMConfig
}

// NewClient creates a new llm client
func NewClient(cfg config.LLMConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryMinDelay == 0 {
		cfg.RetryMinDelay = 2 * time.Second
	}
	if cfg.RetryMaxDelay == 0 {
		cfg.RetryMaxDelay = 10 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{api: openai.NewClientWithConfig(clientConfig), config: cfg}
}

// Model returns the configured model name
func (c *Client) Model() string { return c.config.Model }

// Complete sends the request and waits for the tagged result
func (c *Client) Complete(ctx context.Context, req Request) Result {
	res := Result{Model: c.config.Model}
	if strings.TrimSpace(req.Prompt) == "" {
		res.Kind, res.Err = ResultAPIError, ErrEmptyText
		return res
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.Temperature > 0 {
		chatReq.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	var resp openai.ChatCompletionResponse
	retrier := repeater.NewBackoff(c.config.MaxAttempts, c.config.RetryMinDelay, repeater.WithMaxDelay(c.config.RetryMaxDelay))
	err := retrier.Do(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
		r, err := c.api.CreateChatCompletion(callCtx, chatReq)
		if err != nil {
			if ctx.Err() == nil && IsTransient(err) {
				lgr.Printf("[WARN] llm request failed, retrying: %v", err)
				return err
			}
			return &permanentError{err: err}
		}
		resp = r
		return nil
	}, errPermanent)
	if err != nil {
		var pe *permanentError
		if errors.As(err, &pe) {
			err = pe.err
		}
		res.Kind, res.Err = ResultAPIError, fmt.Errorf("llm request failed: %w", err)
		return res
	}

	if resp.Model != "" {
		res.Model = resp.Model
	}
	if len(resp.Choices) == 0 {
		res.Kind, res.Err = ResultAPIError, errors.New("no response from llm")
		return res
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		res.Kind, res.Refusal = ResultRefusal, choice.Message.Refusal
		return res
	}
	if choice.FinishReason == openai.FinishReasonContentFilter {
		res.Kind, res.Refusal = ResultRefusal, "content filtered"
		return res
	}
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		res.Kind, res.Err = ResultAPIError, errors.New("empty response from llm")
		return res
	}
	if strings.HasPrefix(strings.ToUpper(text), refusalPrefix) {
		res.Kind, res.Refusal = ResultRefusal, text
		return res
	}
	res.Kind, res.Text = ResultSuccess, text
	return res
}

// CompleteAsync runs Complete in a goroutine, the channel receives exactly one result and is closed
func (c *Client) CompleteAsync(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- c.Complete(ctx, req)
	}()
	return ch
}

// IsTransient reports errors worth retrying: timeouts, connection failures, 429 and 5xx
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode != 0 {
			return transientStatus(reqErr.HTTPStatusCode)
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Parsed is a result decoded into T, Value is set only when Kind is ResultSuccess
type Parsed[T any] struct {
	Result
	Value *T
}

// decode extracts the outermost json object from a successful result and checks that every required
// field is present and not null. Anything else is passed through.
func decode[T any](res Result, required ...string) Parsed[T] {
	if res.Kind != ResultSuccess {
		return Parsed[T]{Result: res}
	}
	start := strings.Index(res.Text, "{")
	end := strings.LastIndex(res.Text, "}")
	if start == -1 || end == -1 || start >= end {
		return invalid[T](res, errors.New("no json object found"))
	}
	obj := []byte(res.Text[start : end+1])
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(obj, &fields); err != nil {
		return invalid[T](res, err)
	}
	for _, name := range required {
		if raw, ok := fields[name]; !ok || string(raw) == "null" {
			return invalid[T](res, fmt.Errorf("missing required field %q", name))
		}
	}
	var v T
	if err := json.Unmarshal(obj, &v); err != nil {
		return invalid[T](res, err)
	}
	return Parsed[T]{Result: res, Value: &v}
}

// invalid turns a result into a parse error, the raw response stays in Text
func invalid[T any](res Result, err error) Parsed[T] {
	res.Kind, res.Err = ResultParseError, &ParseError{Raw: res.Text, Err: err}
	return Parsed[T]{Result: res}
}

var errPermanent = errors.New("permanent error")

type permanentError struct {
	err error
}

func (e *permanentError) Error() string        { return e.err.Error() }
func (e *permanentError) Unwrap() error        { return e.err }
func (e *permanentError) Is(target error) bool { return target == errPermanent }
