// Package supadata implements a client for the supadata youtube api: channel video listing,
// video metadata and transcripts.
package supadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"
)

// ErrNoAPIKey is returned by every call when the client has no key configured
var ErrNoAPIKey = errors.New("supadata api key is not set")

// Params configures the client
type Params struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	RequestDelay time.Duration // minimal interval between requests, shared by all workers
	Attempts     int
	RetryDelay   time.Duration
}

// Client talks to supadata, safe for concurrent use
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	attempts   int
	retryDelay time.Duration
	sanitizer  *bluemonday.Policy
}

// VideoMetadata is the subset of video details used for ingestion
type VideoMetadata struct {
	ID          string
	Title       string
	Description string
	ChannelID   string
	ChannelName string
	UploadTime  time.Time
}

// TranscriptResult is either a transcript text or an explicit unavailability
type TranscriptResult struct {
	Text        string
	Unavailable bool
	Available   []string // languages offered instead, set when unavailable
}

// APIError is returned for non-2xx responses
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supadata api error %d: %s", e.Code, e.Message)
}

// Transient reports whether the request may succeed if repeated
func (e *APIError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// NewClient makes a supadata client
func NewClient(params Params) *Client {
	if params.BaseURL == "" {
		params.BaseURL = "https://api.supadata.ai/v1/youtube"
	}
	if params.Timeout == 0 {
		params.Timeout = 30 * time.Second
	}
	if params.Attempts <= 0 {
		params.Attempts = 3
	}
	if params.RetryDelay == 0 {
		params.RetryDelay = 5 * time.Second
	}
	limit := rate.Inf
	if params.RequestDelay > 0 {
		limit = rate.Every(params.RequestDelay)
	}
	if params.APIKey == "" {
		lgr.Printf("[WARN] supadata api key is not set, youtube fetching will fail")
	}
	return &Client{
		baseURL:    strings.TrimSuffix(params.BaseURL, "/"),
		apiKey:     params.APIKey,
		httpClient: &http.Client{Timeout: params.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		attempts:   params.Attempts,
		retryDelay: params.RetryDelay,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// ChannelVideos lists ids of the most recent videos of a channel, newest first
func (c *Client) ChannelVideos(ctx context.Context, handle string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("id", handle)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("type", "video")

	var resp struct {
		VideoIDs []string `json:"videoIds"`
	}
	if err := c.request(ctx, "/channel/videos", q, &resp); err != nil {
		return nil, fmt.Errorf("list videos of %s: %w", handle, err)
	}
	if resp.VideoIDs == nil {
		return nil, fmt.Errorf("list videos of %s: no videoIds in response", handle)
	}
	return resp.VideoIDs, nil
}

// VideoMetadata returns title, description and upload time of a video
func (c *Client) VideoMetadata(ctx context.Context, videoID string) (VideoMetadata, error) {
	q := url.Values{}
	q.Set("id", videoID)

	var resp struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		UploadDate  string `json:"uploadDate"`
		Channel     struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"channel"`
	}
	if err := c.request(ctx, "/video", q, &resp); err != nil {
		return VideoMetadata{}, fmt.Errorf("metadata of %s: %w", videoID, err)
	}

	uploaded, err := ParseUploadTime(resp.UploadDate)
	if err != nil {
		return VideoMetadata{}, fmt.Errorf("metadata of %s: %w", videoID, err)
	}
	id := resp.ID
	if id == "" {
		id = videoID
	}
	return VideoMetadata{
		ID:          id,
		Title:       resp.Title,
		Description: strings.TrimSpace(c.sanitizer.Sanitize(resp.Description)),
		ChannelID:   resp.Channel.ID,
		ChannelName: resp.Channel.Name,
		UploadTime:  uploaded,
	}, nil
}

// Transcript returns the plain text transcript in the requested language. A response offering
// other languages only is reported as unavailable, not as an error.
func (c *Client) Transcript(ctx context.Context, videoID, lang string) (TranscriptResult, error) {
	if lang == "" {
		lang = "en"
	}
	q := url.Values{}
	q.Set("videoId", videoID)
	q.Set("lang", lang)
	q.Set("text", "true")

	var resp struct {
		Content        *string  `json:"content"`
		Lang           string   `json:"lang"`
		AvailableLangs []string `json:"availableLangs"`
	}
	if err := c.request(ctx, "/transcript", q, &resp); err != nil {
		var ae *APIError
		if errors.As(err, &ae) && ae.Code == http.StatusNotFound {
			return TranscriptResult{Unavailable: true}, nil
		}
		return TranscriptResult{}, fmt.Errorf("transcript of %s: %w", videoID, err)
	}

	if resp.Content != nil && strings.TrimSpace(*resp.Content) != "" {
		return TranscriptResult{Text: *resp.Content}, nil
	}
	if resp.AvailableLangs != nil || resp.Content != nil {
		return TranscriptResult{Unavailable: true, Available: resp.AvailableLangs}, nil
	}
	return TranscriptResult{}, fmt.Errorf("transcript of %s: no content in response", videoID)
}

// request makes an authenticated GET with retries and decodes the json body into res
func (c *Client) request(ctx context.Context, endpoint string, q url.Values, res any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	var body []byte
	retrier := repeater.NewBackoff(c.attempts, c.retryDelay, repeater.WithMaxDelay(time.Minute))
	err := retrier.Do(ctx, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return &permanentError{err: err}
		}
		b, err := c.get(ctx, endpoint, q)
		if err != nil {
			if isTransient(err) {
				lgr.Printf("[WARN] supadata %s: %v, retrying", endpoint, err)
				return err
			}
			return &permanentError{err: err}
		}
		body = b
		return nil
	}, errPermanent)
	if err != nil {
		var pe *permanentError
		if errors.As(err, &pe) {
			return pe.err
		}
		return err
	}

	if err := json.Unmarshal(body, res); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Code: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage extracts a readable message from an error response
func errorMessage(body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// ParseUploadTime parses upload dates in the formats supadata returns
func ParseUploadTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty upload date")
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized upload date %q", s)
}

func isTransient(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Transient()
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.DeadlineExceeded)
}

var errPermanent = errors.New("permanent error")

type permanentError struct {
	err error
}

func (e *permanentError) Error() string        { return e.err.Error() }
func (e *permanentError) Unwrap() error        { return e.err }
func (e *permanentError) Is(target error) bool { return target == errPermanent }
