package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// ReviewRepository handles steam reviews and their enrichment results
type ReviewRepository struct {
	db     dbtx
	driver string
}

// reviewSQL represents a review for SQL operations
type reviewSQL struct {
	RecommendationID     int64   `db:"recommendation_id"`
	AppID                int64   `db:"app_id"`
	AuthorSteamID        string  `db:"author_steamid"`
	OriginalLanguage     string  `db:"original_language"`
	OriginalText         string  `db:"original_text"`
	EnglishText          string  `db:"english_text"`
	TimestampCreated     int64   `db:"timestamp_created"`
	TimestampUpdated     int64   `db:"timestamp_updated"`
	VotedUp              bool    `db:"voted_up"`
	VotesUp              int     `db:"votes_up"`
	VotesFunny           int     `db:"votes_funny"`
	WeightedVoteScore    float64 `db:"weighted_vote_score"`
	CommentCount         int     `db:"comment_count"`
	SteamPurchase        bool    `db:"steam_purchase"`
	ReceivedForFree      bool    `db:"received_for_free"`
	EarlyAccess          bool    `db:"early_access"`
	DeveloperResponse    string  `db:"developer_response"`
	DeveloperResponseAt  int64   `db:"developer_response_at"`
	AuthorGamesOwned     int     `db:"author_games_owned"`
	AuthorReviews        int     `db:"author_reviews"`
	PlaytimeForever      int     `db:"playtime_forever"`
	PlaytimeLastTwoWeeks int     `db:"playtime_last_two_weeks"`
	PlaytimeAtReview     int     `db:"playtime_at_review"`
	LastPlayed           int64   `db:"last_played"`

	// enrichment
	TranslationStatus string        `db:"translation_status"`
	TranslatedAt      sql.NullInt64 `db:"translated_at"`
	TranslationModel  string        `db:"translation_model"`
	AnalysisStatus    string        `db:"analysis_status"`
	EnrichmentError   string        `db:"enrichment_error"`
	Sentiment         string        `db:"sentiment"`
	PositiveThemes    stringsSQL    `db:"positive_themes"`
	NegativeThemes    stringsSQL    `db:"negative_themes"`
	FeatureRequests   stringsSQL    `db:"feature_requests"`
	BugReports        stringsSQL    `db:"bug_reports"`
	AnalysisModel     string        `db:"analysis_model"`
	AnalyzedAt        sql.NullInt64 `db:"analyzed_at"`

	CreatedAt int64 `db:"created_at"`
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db, driver: db.DriverName()}
}

const insertReviewSQL = `INSERT INTO reviews (
		recommendation_id, app_id, author_steamid, original_language, original_text, english_text,
		timestamp_created, timestamp_updated, voted_up, votes_up, votes_funny, weighted_vote_score,
		comment_count, steam_purchase, received_for_free, early_access, developer_response,
		developer_response_at, author_games_owned, author_reviews, playtime_forever,
		playtime_last_two_weeks, playtime_at_review, last_played, translation_status,
		translation_model, analysis_status, created_at
	) VALUES (
		:recommendation_id, :app_id, :author_steamid, :original_language, :original_text, :english_text,
		:timestamp_created, :timestamp_updated, :voted_up, :votes_up, :votes_funny, :weighted_vote_score,
		:comment_count, :steam_purchase, :received_for_free, :early_access, :developer_response,
		:developer_response_at, :author_games_owned, :author_reviews, :playtime_forever,
		:playtime_last_two_weeks, :playtime_at_review, :last_played, :translation_status,
		:translation_model, :analysis_status, :created_at
	) ON CONFLICT (recommendation_id) DO NOTHING`

// InsertReviews stores a batch of reviews in one transaction.
// Reviews with already stored recommendation ids are skipped silently, genuine constraint
// violations (unknown app, invalid status) fail the whole batch. Returns the number of new rows.
func (r *ReviewRepository) InsertReviews(ctx context.Context, reviews []domain.Review) (int, error) {
	if len(reviews) == 0 {
		return 0, nil
	}
	rows := make([]reviewSQL, 0, len(reviews))
	for i := range reviews {
		if err := reviews[i].Validate(); err != nil {
			return 0, fmt.Errorf("insert reviews: %w", err)
		}
		rows = append(rows, toReviewSQL(&reviews[i]))
	}

	var inserted int
	err := withLockRetry(ctx, func() error {
		inserted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		for i := range rows {
			res, err := tx.NamedExecContext(ctx, insertReviewSQL, &rows[i])
			if err != nil {
				return fmt.Errorf("review %d: %w", rows[i].RecommendationID, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				inserted++
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("insert reviews: %w", err)
	}
	return inserted, nil
}

// GetReview retrieves a review by recommendation id
func (r *ReviewRepository) GetReview(ctx context.Context, id int64) (*domain.Review, error) {
	var row reviewSQL
	query := r.db.Rebind("SELECT * FROM reviews WHERE recommendation_id = ?")
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		return nil, notFound(err, "get review %d", id)
	}
	return row.toDomain(), nil
}

// PendingTranslations returns the oldest reviews waiting for translation
func (r *ReviewRepository) PendingTranslations(ctx context.Context, limit int) ([]domain.Review, error) {
	query := r.db.Rebind(`SELECT * FROM reviews WHERE translation_status = ?
		ORDER BY timestamp_created, recommendation_id LIMIT ?`)
	return r.selectReviews(ctx, "pending translations", query, domain.TranslationPending, limit)
}

// PendingAnalyses returns the oldest reviews with displayable text waiting for analysis
func (r *ReviewRepository) PendingAnalyses(ctx context.Context, limit int) ([]domain.Review, error) {
	query := r.db.Rebind(`SELECT * FROM reviews WHERE analysis_status = ? AND translation_status IN (?, ?)
		ORDER BY timestamp_created, recommendation_id LIMIT ?`)
	return r.selectReviews(ctx, "pending analyses", query,
		domain.AnalysisPending, domain.TranslationNotRequired, domain.TranslationDone, limit)
}

// SaveTranslation stores the english text and marks the review translated
func (r *ReviewRepository) SaveTranslation(ctx context.Context, id int64, text, model string) error {
	query := r.db.Rebind(`UPDATE reviews SET english_text = ?, translation_status = ?, translated_at = ?,
		translation_model = ?, enrichment_error = '' WHERE recommendation_id = ? AND translation_status = ?`)
	return r.guardedUpdate(ctx, "save translation", id, query,
		text, domain.TranslationDone, nowUnix(), model, id, domain.TranslationPending)
}

// MarkTranslation moves a pending translation to failed or skipped, keeping reason for diagnostics.
// Analysis of such review can't happen and is marked skipped as well.
func (r *ReviewRepository) MarkTranslation(ctx context.Context, id int64, status domain.TranslationStatus, reason string) error {
	if status != domain.TranslationFailed && status != domain.TranslationSkipped {
		return fmt.Errorf("mark translation %d: invalid terminal status %q", id, status)
	}
	query := r.db.Rebind(`UPDATE reviews SET translation_status = ?, enrichment_error = ?,
		analysis_status = CASE WHEN analysis_status = ? THEN ? ELSE analysis_status END
		WHERE recommendation_id = ? AND translation_status = ?`)
	return r.guardedUpdate(ctx, "mark translation", id, query,
		status, reason, domain.AnalysisPending, domain.AnalysisSkipped, id, domain.TranslationPending)
}

// SaveAnalysis stores analysis results and marks the review analyzed
func (r *ReviewRepository) SaveAnalysis(ctx context.Context, id int64, a *domain.ReviewAnalysis) error {
	query := r.db.Rebind(`UPDATE reviews SET sentiment = ?, positive_themes = ?, negative_themes = ?,
		feature_requests = ?, bug_reports = ?, analysis_model = ?, analyzed_at = ?, analysis_status = ?,
		enrichment_error = '' WHERE recommendation_id = ? AND analysis_status = ?`)
	return r.guardedUpdate(ctx, "save analysis", id, query,
		string(a.Sentiment), stringsSQL(a.PositiveThemes), stringsSQL(a.NegativeThemes),
		stringsSQL(a.FeatureRequests), stringsSQL(a.BugReports), a.Model, nowUnix(),
		domain.AnalysisDone, id, domain.AnalysisPending)
}

// MarkAnalysis moves a pending analysis to a terminal status without results
func (r *ReviewRepository) MarkAnalysis(ctx context.Context, id int64, status domain.AnalysisStatus, reason string) error {
	if !status.Terminal() || status == domain.AnalysisDone {
		return fmt.Errorf("mark analysis %d: invalid terminal status %q", id, status)
	}
	query := r.db.Rebind(`UPDATE reviews SET analysis_status = ?, enrichment_error = ?
		WHERE recommendation_id = ? AND analysis_status = ?`)
	return r.guardedUpdate(ctx, "mark analysis", id, query, status, reason, id, domain.AnalysisPending)
}

// ReviewsInWindow returns all reviews of an app created within the window, any status
func (r *ReviewRepository) ReviewsInWindow(ctx context.Context, appID int64, w domain.ReportWindow) ([]domain.Review, error) {
	query, args, err := builder(r.driver).Select("*").From("reviews").
		Where(sq.Eq{"app_id": appID}).
		Where(sq.GtOrEq{"timestamp_created": w.Start.Unix()}).
		Where(sq.Lt{"timestamp_created": w.End.Unix()}).
		OrderBy("original_language", "timestamp_created DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build window query: %w", err)
	}
	return r.selectReviews(ctx, "reviews in window", query, args...)
}

// CountByStatus returns number of reviews per translation and analysis status
func (r *ReviewRepository) CountByStatus(ctx context.Context) (translation, analysis map[string]int, err error) {
	if translation, err = countGrouped(ctx, r.db, "reviews", "translation_status"); err != nil {
		return nil, nil, err
	}
	if analysis, err = countGrouped(ctx, r.db, "reviews", "analysis_status"); err != nil {
		return nil, nil, err
	}
	return translation, analysis, nil
}

func (r *ReviewRepository) selectReviews(ctx context.Context, what, query string, args ...any) ([]domain.Review, error) {
	var rows []reviewSQL
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	res := make([]domain.Review, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res, nil
}

func (r *ReviewRepository) guardedUpdate(ctx context.Context, what string, id int64, query string, args ...any) error {
	var res sql.Result
	err := withLockRetry(ctx, func() (err error) {
		res, err = r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s %d: %w", what, id, err)
	}
	if err := checkPending(res, id); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// countGrouped counts rows of table grouped by a status column
func countGrouped(ctx context.Context, db dbtx, table, column string) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}
	query := fmt.Sprintf("SELECT %s AS status, COUNT(*) AS cnt FROM %s GROUP BY %s", column, table, column)
	if err := sqlx.SelectContext(ctx, db, &rows, query); err != nil {
		return nil, fmt.Errorf("count %s by %s: %w", table, column, err)
	}
	res := make(map[string]int, len(rows))
	for _, row := range rows {
		res[row.Status] = row.Count
	}
	return res, nil
}

func toReviewSQL(r *domain.Review) reviewSQL {
	return reviewSQL{
		RecommendationID:     r.RecommendationID,
		AppID:                r.AppID,
		AuthorSteamID:        r.AuthorSteamID,
		OriginalLanguage:     r.OriginalLanguage,
		OriginalText:         r.OriginalText,
		EnglishText:          r.EnglishText,
		TimestampCreated:     r.TimestampCreated,
		TimestampUpdated:     r.TimestampUpdated,
		VotedUp:              r.VotedUp,
		VotesUp:              r.VotesUp,
		VotesFunny:           r.VotesFunny,
		WeightedVoteScore:    r.WeightedScore,
		CommentCount:         r.CommentCount,
		SteamPurchase:        r.SteamPurchase,
		ReceivedForFree:      r.ReceivedForFree,
		EarlyAccess:          r.EarlyAccess,
		DeveloperResponse:    r.DeveloperReply,
		DeveloperResponseAt:  r.DeveloperReplyAt,
		AuthorGamesOwned:     r.AuthorGamesOwned,
		AuthorReviews:        r.AuthorReviews,
		PlaytimeForever:      r.PlaytimeForever,
		PlaytimeLastTwoWeeks: r.PlaytimeLastTwoWeeks,
		PlaytimeAtReview:     r.PlaytimeAtReview,
		LastPlayed:           r.LastPlayed,
		TranslationStatus:    string(r.TranslationStatus),
		TranslationModel:     r.TranslationModel,
		AnalysisStatus:       string(r.AnalysisStatus),
		CreatedAt:            nowUnix(),
	}
}

func (r *reviewSQL) toDomain() *domain.Review {
	res := &domain.Review{
		RecommendationID:     r.RecommendationID,
		AppID:                r.AppID,
		AuthorSteamID:        r.AuthorSteamID,
		OriginalLanguage:     r.OriginalLanguage,
		OriginalText:         r.OriginalText,
		EnglishText:          r.EnglishText,
		TimestampCreated:     r.TimestampCreated,
		TimestampUpdated:     r.TimestampUpdated,
		VotedUp:              r.VotedUp,
		VotesUp:              r.VotesUp,
		VotesFunny:           r.VotesFunny,
		WeightedScore:        r.WeightedVoteScore,
		CommentCount:         r.CommentCount,
		SteamPurchase:        r.SteamPurchase,
		ReceivedForFree:      r.ReceivedForFree,
		EarlyAccess:          r.EarlyAccess,
		DeveloperReply:       r.DeveloperResponse,
		DeveloperReplyAt:     r.DeveloperResponseAt,
		AuthorGamesOwned:     r.AuthorGamesOwned,
		AuthorReviews:        r.AuthorReviews,
		PlaytimeForever:      r.PlaytimeForever,
		PlaytimeLastTwoWeeks: r.PlaytimeLastTwoWeeks,
		PlaytimeAtReview:     r.PlaytimeAtReview,
		LastPlayed:           r.LastPlayed,
		TranslationStatus:    domain.TranslationStatus(r.TranslationStatus),
		TranslatedAt:         timePtr(r.TranslatedAt),
		TranslationModel:     r.TranslationModel,
		AnalysisStatus:       domain.AnalysisStatus(r.AnalysisStatus),
		EnrichmentError:      r.EnrichmentError,
	}
	if res.AnalysisStatus == domain.AnalysisDone {
		analyzedAt := timePtr(r.AnalyzedAt)
		res.Analysis = &domain.ReviewAnalysis{
			Sentiment:       domain.Sentiment(r.Sentiment),
			PositiveThemes:  r.PositiveThemes,
			NegativeThemes:  r.NegativeThemes,
			FeatureRequests: r.FeatureRequests,
			BugReports:      r.BugReports,
			Model:           r.AnalysisModel,
		}
		if analyzedAt != nil {
			res.Analysis.AnalyzedAt = *analyzedAt
		}
	}
	return res
}
