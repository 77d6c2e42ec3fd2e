package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// VideoRepository handles youtube videos, transcripts and video analyses
type VideoRepository struct {
	db     dbtx
	driver string
}

// videoSQL represents a video for SQL operations
type videoSQL struct {
	VideoID          string `db:"video_id"`
	ChannelID        string `db:"channel_id"`
	Title            string `db:"title"`
	Description      string `db:"description"`
	UploadTime       int64  `db:"upload_time"`
	TranscriptStatus string `db:"transcript_status"`
	AnalysisStatus   string `db:"analysis_status"`
	EnrichmentError  string `db:"enrichment_error"`
	CreatedAt        int64  `db:"created_at"`
}

// videoAnalysisSQL represents a video analysis for SQL operations
type videoAnalysisSQL struct {
	VideoID string `db:"video_id"`
	analysisColumnsSQL
}

// analysisColumnsSQL holds video analysis columns without the key, to be joined with videoSQL
type analysisColumnsSQL struct {
	IsRelevant           bool       `db:"is_relevant"`
	Summary              string     `db:"summary"`
	Sentiment            string     `db:"sentiment"`
	PositiveThemes       stringsSQL `db:"positive_themes"`
	NegativeThemes       stringsSQL `db:"negative_themes"`
	FeatureRequests      stringsSQL `db:"feature_requests"`
	BugReports           stringsSQL `db:"bug_reports"`
	BalanceFeedback      stringsSQL `db:"balance_feedback"`
	GameplayLoopFeedback stringsSQL `db:"gameplay_loop_feedback"`
	MonetizationFeedback stringsSQL `db:"monetization_feedback"`
	Model                string     `db:"model"`
	RawResponse          string     `db:"raw_response"`
	AnalyzedAt           int64      `db:"analyzed_at"`
}

// VideoTask is a video waiting for analysis together with what the analysis needs
type VideoTask struct {
	Video      domain.Video
	Transcript string
	GameName   string
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sqlx.DB) *VideoRepository {
	return &VideoRepository{db: db, driver: db.DriverName()}
}

// VideoExists checks if a video is stored already
func (r *VideoRepository) VideoExists(ctx context.Context, videoID string) (bool, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM videos WHERE video_id = ?")
	if err := sqlx.GetContext(ctx, r.db, &count, query, videoID); err != nil {
		return false, fmt.Errorf("check video %s exists: %w", videoID, err)
	}
	return count > 0, nil
}

// InsertVideo stores a video with pending transcript and analysis, returns false if it is stored already
func (r *VideoRepository) InsertVideo(ctx context.Context, v *domain.Video) (bool, error) {
	if err := v.Validate(); err != nil {
		return false, fmt.Errorf("insert video: %w", err)
	}
	row := videoSQL{
		VideoID:          v.VideoID,
		ChannelID:        v.ChannelID,
		Title:            v.Title,
		Description:      v.Description,
		UploadTime:       v.UploadTime.Unix(),
		TranscriptStatus: string(domain.TranscriptPending),
		AnalysisStatus:   string(domain.AnalysisPending),
		CreatedAt:        nowUnix(),
	}
	query := r.db.Rebind(`INSERT INTO videos (video_id, channel_id, title, description, upload_time,
		transcript_status, analysis_status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (video_id) DO NOTHING`)

	var inserted bool
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, row.VideoID, row.ChannelID, row.Title, row.Description,
			row.UploadTime, row.TranscriptStatus, row.AnalysisStatus, row.CreatedAt)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		inserted = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("insert video %s: %w", v.VideoID, err)
	}
	return inserted, nil
}

// GetVideo retrieves a video by id
func (r *VideoRepository) GetVideo(ctx context.Context, videoID string) (*domain.Video, error) {
	var row videoSQL
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind("SELECT * FROM videos WHERE video_id = ?"), videoID); err != nil {
		return nil, notFound(err, "get video %s", videoID)
	}
	return row.toDomain(), nil
}

// SaveTranscript stores transcript text and marks the video transcript fetched, in one transaction
func (r *VideoRepository) SaveTranscript(ctx context.Context, t domain.Transcript) error {
	if t.Language == "" {
		t.Language = "en"
	}
	err := withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		insert := tx.Rebind(`INSERT INTO transcripts (video_id, language, text, fetched_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (video_id, language) DO UPDATE SET text = excluded.text, fetched_at = excluded.fetched_at`)
		if _, err := tx.ExecContext(ctx, insert, t.VideoID, t.Language, t.Text, nowUnix()); err != nil {
			return fmt.Errorf("store transcript: %w", err)
		}
		update := tx.Rebind("UPDATE videos SET transcript_status = ? WHERE video_id = ?")
		if _, err := tx.ExecContext(ctx, update, domain.TranscriptFetched, t.VideoID); err != nil {
			return fmt.Errorf("update transcript status: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("save transcript of %s: %w", t.VideoID, err)
	}
	return nil
}

// MarkTranscript sets transcript status of a video without storing text.
// A video without transcript can't be analyzed, its analysis is marked skipped.
func (r *VideoRepository) MarkTranscript(ctx context.Context, videoID string, status domain.TranscriptStatus, reason string) error {
	if status != domain.TranscriptUnavailable && status != domain.TranscriptFailed {
		return fmt.Errorf("mark transcript %s: invalid status %q", videoID, status)
	}
	query := r.db.Rebind(`UPDATE videos SET transcript_status = ?, enrichment_error = ?,
		analysis_status = CASE WHEN analysis_status = ? THEN ? ELSE analysis_status END
		WHERE video_id = ? AND transcript_status = ?`)
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, status, reason, domain.AnalysisPending, domain.AnalysisSkipped,
			videoID, domain.TranscriptPending)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark transcript %s: %w", videoID, err)
	}
	return nil
}

// PendingAnalyses returns videos with fetched transcripts waiting for analysis, oldest first
func (r *VideoRepository) PendingAnalyses(ctx context.Context, limit int) ([]VideoTask, error) {
	var rows []struct {
		videoSQL
		Transcript string         `db:"transcript"`
		GameName   sql.NullString `db:"game_name"`
	}
	query := r.db.Rebind(`SELECT v.*, t.text AS transcript,
			(SELECT MIN(g.name) FROM channels c
				JOIN game_influencers gi ON gi.influencer_id = c.influencer_id AND gi.active = ` + boolLiteral(r.driver, true) + `
				JOIN games g ON g.id = gi.game_id
				WHERE c.channel_id = v.channel_id) AS game_name
		FROM videos v
		JOIN transcripts t ON t.video_id = v.video_id AND t.language = 'en'
		WHERE v.analysis_status = ? AND v.transcript_status = ?
		ORDER BY v.upload_time, v.video_id LIMIT ?`)
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, domain.AnalysisPending, domain.TranscriptFetched, limit); err != nil {
		return nil, fmt.Errorf("get pending video analyses: %w", err)
	}
	res := make([]VideoTask, 0, len(rows))
	for _, row := range rows {
		res = append(res, VideoTask{Video: *row.toDomain(), Transcript: row.Transcript, GameName: row.GameName.String})
	}
	return res, nil
}

// SaveAnalysis stores a video analysis and moves the video to analyzed or irrelevant
func (r *VideoRepository) SaveAnalysis(ctx context.Context, videoID string, a *domain.VideoAnalysis) error {
	status := domain.AnalysisDone
	if !a.IsRelevant {
		status = domain.AnalysisIrrelevant
	}
	row := videoAnalysisSQL{VideoID: videoID, analysisColumnsSQL: analysisColumnsSQL{
		IsRelevant:           a.IsRelevant,
		Summary:              a.Summary,
		Sentiment:            string(a.Sentiment),
		PositiveThemes:       a.PositiveThemes,
		NegativeThemes:       a.NegativeThemes,
		FeatureRequests:      a.FeatureRequests,
		BugReports:           a.BugReports,
		BalanceFeedback:      a.BalanceFeedback,
		GameplayLoopFeedback: a.GameplayLoopFeedback,
		MonetizationFeedback: a.MonetizationFeedback,
		Model:                a.Model,
		RawResponse:          a.RawResponse,
		AnalyzedAt:           nowUnix(),
	}}

	err := withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		res, err := tx.ExecContext(ctx, tx.Rebind("UPDATE videos SET analysis_status = ?, enrichment_error = '' WHERE video_id = ? AND analysis_status = ?"),
			status, videoID, domain.AnalysisPending)
		if err != nil {
			return fmt.Errorf("update analysis status: %w", err)
		}
		if err := checkPending(res, videoID); err != nil {
			return err
		}

		_, err = tx.NamedExecContext(ctx, `INSERT INTO video_analyses (video_id, is_relevant, summary, sentiment,
			positive_themes, negative_themes, feature_requests, bug_reports, balance_feedback,
			gameplay_loop_feedback, monetization_feedback, model, raw_response, analyzed_at)
			VALUES (:video_id, :is_relevant, :summary, :sentiment, :positive_themes, :negative_themes,
			:feature_requests, :bug_reports, :balance_feedback, :gameplay_loop_feedback,
			:monetization_feedback, :model, :raw_response, :analyzed_at)
			ON CONFLICT (video_id) DO NOTHING`, &row)
		if err != nil {
			return fmt.Errorf("store analysis: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("save analysis of %s: %w", videoID, err)
	}
	return nil
}

// MarkAnalysis moves a pending video analysis to failed or skipped, keeping reason for diagnostics
func (r *VideoRepository) MarkAnalysis(ctx context.Context, videoID string, status domain.AnalysisStatus, reason string) error {
	if status != domain.AnalysisFailed && status != domain.AnalysisSkipped {
		return fmt.Errorf("mark analysis %s: invalid status %q", videoID, status)
	}
	query := r.db.Rebind("UPDATE videos SET analysis_status = ?, enrichment_error = ? WHERE video_id = ? AND analysis_status = ?")
	var res sql.Result
	err := withLockRetry(ctx, func() (err error) {
		res, err = r.db.ExecContext(ctx, query, status, reason, videoID, domain.AnalysisPending)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark analysis %s: %w", videoID, err)
	}
	if err := checkPending(res, videoID); err != nil {
		return fmt.Errorf("mark analysis: %w", err)
	}
	return nil
}

// AnalyzedVideosInWindow returns relevant analyzed videos uploaded within the window by
// channels of influencers mapped to the game, with analysis and influencer names joined
func (r *VideoRepository) AnalyzedVideosInWindow(ctx context.Context, gameID string, w domain.ReportWindow) ([]domain.Video, error) {
	query, args, err := builder(r.driver).
		Select("v.*", "c.name AS channel_name", "COALESCE(i.name, c.name) AS influencer_name",
			"a.is_relevant", "a.summary", "a.sentiment", "a.positive_themes", "a.negative_themes",
			"a.feature_requests", "a.bug_reports", "a.balance_feedback", "a.gameplay_loop_feedback",
			"a.monetization_feedback", "a.model", "a.raw_response", "a.analyzed_at").
		From("videos v").
		Join("video_analyses a ON a.video_id = v.video_id").
		Join("channels c ON c.channel_id = v.channel_id").
		Join("game_influencers gi ON gi.influencer_id = c.influencer_id AND gi.active = " + boolLiteral(r.driver, true)).
		LeftJoin("influencers i ON i.id = c.influencer_id").
		Where(sq.Eq{"gi.game_id": gameID, "v.analysis_status": string(domain.AnalysisDone)}).
		Where(sq.GtOrEq{"v.upload_time": w.Start.Unix()}).
		Where(sq.Lt{"v.upload_time": w.End.Unix()}).
		OrderBy("influencer_name", "v.upload_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build window query: %w", err)
	}

	var rows []struct {
		videoSQL
		ChannelName    string `db:"channel_name"`
		InfluencerName string `db:"influencer_name"`
		analysisColumnsSQL
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get videos in window: %w", err)
	}

	res := make([]domain.Video, 0, len(rows))
	for _, row := range rows {
		v := row.videoSQL.toDomain()
		v.ChannelName = row.ChannelName
		v.InfluencerName = row.InfluencerName
		v.Analysis = row.analysisColumnsSQL.toDomain()
		res = append(res, *v)
	}
	return res, nil
}

// CountByStatus returns number of videos per transcript and analysis status
func (r *VideoRepository) CountByStatus(ctx context.Context) (transcript, analysis map[string]int, err error) {
	if transcript, err = countGrouped(ctx, r.db, "videos", "transcript_status"); err != nil {
		return nil, nil, err
	}
	if analysis, err = countGrouped(ctx, r.db, "videos", "analysis_status"); err != nil {
		return nil, nil, err
	}
	return transcript, analysis, nil
}

func (v *videoSQL) toDomain() *domain.Video {
	return &domain.Video{
		VideoID:          v.VideoID,
		ChannelID:        v.ChannelID,
		Title:            v.Title,
		Description:      v.Description,
		UploadTime:       time.Unix(v.UploadTime, 0).UTC(),
		TranscriptStatus: domain.TranscriptStatus(v.TranscriptStatus),
		AnalysisStatus:   domain.AnalysisStatus(v.AnalysisStatus),
		EnrichmentError:  v.EnrichmentError,
		CreatedAt:        time.Unix(v.CreatedAt, 0).UTC(),
	}
}

func (a *analysisColumnsSQL) toDomain() *domain.VideoAnalysis {
	return &domain.VideoAnalysis{
		IsRelevant:           a.IsRelevant,
		Summary:              a.Summary,
		Sentiment:            domain.Sentiment(a.Sentiment),
		PositiveThemes:       a.PositiveThemes,
		NegativeThemes:       a.NegativeThemes,
		FeatureRequests:      a.FeatureRequests,
		BugReports:           a.BugReports,
		BalanceFeedback:      a.BalanceFeedback,
		GameplayLoopFeedback: a.GameplayLoopFeedback,
		MonetizationFeedback: a.MonetizationFeedback,
		Model:                a.Model,
		RawResponse:          a.RawResponse,
		AnalyzedAt:           time.Unix(a.AnalyzedAt, 0).UTC(),
	}
}
