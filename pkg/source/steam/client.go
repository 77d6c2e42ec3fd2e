// Package steam implements a client for the public steam store reviews api.
// Reviews are requested newest first, page by page, following the cursor returned by steam.
package steam

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

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// InitialCursor starts pagination from the newest review
const InitialCursor = "*"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Params configures the client
type Params struct {
	BaseURL    string        // defaults to https://store.steampowered.com
	Timeout    time.Duration // per request
	PageDelay  time.Duration // minimal interval between requests
	Attempts   int           // attempts for transient errors
	RetryDelay time.Duration // initial retry delay, doubled per attempt
}

// Client fetches review pages, safe for concurrent use
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	attempts   int
	retryDelay time.Duration
	sanitizer  *bluemonday.Policy
}

// Page is one page of reviews with the cursor of the next page
type Page struct {
	Reviews    []domain.Review
	NextCursor string
	Skipped    int // malformed reviews dropped from the page
}

// Empty reports whether steam returned no reviews at all, the end of the history
func (p Page) Empty() bool { return len(p.Reviews) == 0 && p.Skipped == 0 }

// StatusError is returned for non-200 responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("steam api status %d: %s", e.Code, e.Body)
}

// Transient reports whether the request may succeed if repeated
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// NewClient makes a steam client
func NewClient(params Params) *Client {
	if params.BaseURL == "" {
		params.BaseURL = "https://store.steampowered.com"
	}
	if params.Timeout == 0 {
		params.Timeout = 15 * time.Second
	}
	if params.Attempts <= 0 {
		params.Attempts = 3
	}
	if params.RetryDelay == 0 {
		params.RetryDelay = 2 * time.Second
	}
	limit := rate.Inf
	if params.PageDelay > 0 {
		limit = rate.Every(params.PageDelay)
	}
	return &Client{
		baseURL:    strings.TrimSuffix(params.BaseURL, "/"),
		httpClient: &http.Client{Timeout: params.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		attempts:   params.Attempts,
		retryDelay: params.RetryDelay,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// FetchPage requests one page of reviews for the app. Transient failures (timeouts, 429, 5xx)
// are retried, anything else is returned right away.
func (c *Client) FetchPage(ctx context.Context, appID int64, cursor string, pageSize int, language string) (Page, error) {
	if cursor == "" {
		cursor = InitialCursor
	}
	if language == "" {
		language = "all"
	}

	var resp reviewsResponse
	retrier := repeater.NewBackoff(c.attempts, c.retryDelay, repeater.WithMaxDelay(10*time.Second))
	err := retrier.Do(ctx, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return &permanentError{err: err}
		}
		r, err := c.get(ctx, appID, cursor, pageSize, language)
		if err != nil {
			if isTransient(err) {
				lgr.Printf("[WARN] steam app %d, cursor %s: %v, retrying", appID, cursor, err)
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
		return Page{}, fmt.Errorf("fetch reviews page for app %d: %w", appID, err)
	}

	if resp.Success != 1 {
		return Page{}, fmt.Errorf("fetch reviews page for app %d: steam returned success=%d", appID, resp.Success)
	}

	page := Page{NextCursor: resp.Cursor, Reviews: make([]domain.Review, 0, len(resp.Reviews))}
	for _, r := range resp.Reviews {
		review, err := c.toReview(appID, r)
		if err != nil {
			lgr.Printf("[WARN] skip malformed review of app %d: %v", appID, err)
			page.Skipped++
			continue
		}
		page.Reviews = append(page.Reviews, review)
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, appID int64, cursor string, pageSize int, language string) (reviewsResponse, error) {
	q := url.Values{}
	q.Set("json", "1")
	q.Set("cursor", cursor)
	q.Set("num_per_page", strconv.Itoa(pageSize))
	q.Set("review_type", "all")
	q.Set("language", language)
	q.Set("purchase_type", "all")
	q.Set("filter", "recent")
	endpoint := fmt.Sprintf("%s/appreviews/%d?%s", c.baseURL, appID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return reviewsResponse{}, fmt.Errorf("make request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return reviewsResponse{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return reviewsResponse{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var res reviewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return reviewsResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return res, nil
}

func (c *Client) toReview(appID int64, r reviewJSON) (domain.Review, error) {
	id, err := strconv.ParseInt(r.RecommendationID, 10, 64)
	if err != nil {
		return domain.Review{}, fmt.Errorf("recommendation id %q: %w", r.RecommendationID, err)
	}
	res := domain.Review{
		RecommendationID:     id,
		AppID:                appID,
		AuthorSteamID:        r.Author.SteamID,
		OriginalLanguage:     r.Language,
		OriginalText:         r.Review,
		TimestampCreated:     r.TimestampCreated,
		TimestampUpdated:     r.TimestampUpdated,
		VotedUp:              r.VotedUp,
		VotesUp:              r.VotesUp,
		VotesFunny:           r.VotesFunny,
		WeightedScore:        float64(r.WeightedVoteScore),
		CommentCount:         r.CommentCount,
		SteamPurchase:        r.SteamPurchase,
		ReceivedForFree:      r.ReceivedForFree,
		EarlyAccess:          r.WrittenDuringEarlyAccess,
		DeveloperReply:       strings.TrimSpace(c.sanitizer.Sanitize(r.DeveloperResponse)),
		DeveloperReplyAt:     r.TimestampDevResponded,
		AuthorGamesOwned:     r.Author.NumGamesOwned,
		AuthorReviews:        r.Author.NumReviews,
		PlaytimeForever:      r.Author.PlaytimeForever,
		PlaytimeLastTwoWeeks: r.Author.PlaytimeLastTwoWeeks,
		PlaytimeAtReview:     r.Author.PlaytimeAtReview,
		LastPlayed:           r.Author.LastPlayed,
	}
	if res.OriginalLanguage == "" {
		res.OriginalLanguage = "unknown"
	}
	res.NewReviewStatus()
	return res, nil
}

// isTransient checks if err is worth retrying: timeouts, connection errors, 429 and 5xx
func isTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.DeadlineExceeded)
}

var errPermanent = errors.New("permanent error")

// permanentError stops the retry loop
type permanentError struct {
	err error
}

func (e *permanentError) Error() string        { return e.err.Error() }
func (e *permanentError) Unwrap() error        { return e.err }
func (e *permanentError) Is(target error) bool { return target == errPermanent }

type reviewsResponse struct {
	Success int          `json:"success"`
	Cursor  string       `json:"cursor"`
	Reviews []reviewJSON `json:"reviews"`
}

type reviewJSON struct {
	RecommendationID         string     `json:"recommendationid"`
	Author                   authorJSON `json:"author"`
	Language                 string     `json:"language"`
	Review                   string     `json:"review"`
	TimestampCreated         int64      `json:"timestamp_created"`
	TimestampUpdated         int64      `json:"timestamp_updated"`
	VotedUp                  bool       `json:"voted_up"`
	VotesUp                  int        `json:"votes_up"`
	VotesFunny               int        `json:"votes_funny"`
	WeightedVoteScore        flexFloat  `json:"weighted_vote_score"`
	CommentCount             int        `json:"comment_count"`
	SteamPurchase            bool       `json:"steam_purchase"`
	ReceivedForFree          bool       `json:"received_for_free"`
	WrittenDuringEarlyAccess bool       `json:"written_during_early_access"`
	DeveloperResponse        string     `json:"developer_response"`
	TimestampDevResponded    int64      `json:"timestamp_dev_responded"`
}

type authorJSON struct {
	SteamID              string `json:"steamid"`
	NumGamesOwned        int    `json:"num_games_owned"`
	NumReviews           int    `json:"num_reviews"`
	PlaytimeForever      int    `json:"playtime_forever"`
	PlaytimeLastTwoWeeks int    `json:"playtime_last_two_weeks"`
	PlaytimeAtReview     int    `json:"playtime_at_review"`
	LastPlayed           int64  `json:"last_played"`
}

// flexFloat accepts both numbers and numeric strings, steam sends the vote score either way.
// Anything unparsable becomes zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil //nolint:nilerr // bad score is not worth dropping the review
	}
	*f = flexFloat(v)
	return nil
}
