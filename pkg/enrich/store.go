package enrich

import (
	"context"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/repository"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/review_store.go -pkg mocks -skip-ensure -fmt goimports . ReviewStore
//go:generate moq -out mocks/video_store.go -pkg mocks -skip-ensure -fmt goimports . VideoStore

// ReviewStore reads pending reviews and records their enrichment
type ReviewStore interface {
	PendingTranslations(ctx context.Context, limit int) ([]domain.Review, error)
	PendingAnalyses(ctx context.Context, limit int) ([]domain.Review, error)
	SaveTranslation(ctx context.Context, id int64, text, model string) error
	MarkTranslation(ctx context.Context, id int64, status domain.TranslationStatus, reason string) error
	SaveAnalysis(ctx context.Context, id int64, a *domain.ReviewAnalysis) error
	MarkAnalysis(ctx context.Context, id int64, status domain.AnalysisStatus, reason string) error
}

// VideoStore reads videos waiting for analysis and records the results
type VideoStore interface {
	PendingAnalyses(ctx context.Context, limit int) ([]repository.VideoTask, error)
	SaveAnalysis(ctx context.Context, videoID string, a *domain.VideoAnalysis) error
	MarkAnalysis(ctx context.Context, videoID string, status domain.AnalysisStatus, reason string) error
}

// Session is a pair of stores bound to one connection, used by a single task
type Session struct {
	Reviews ReviewStore
	Videos  VideoStore
}

// Store hands out sessions and releases them when fn returns
type Store interface {
	WithSession(ctx context.Context, fn func(s Session) error) error
}

// RepositoryStore adapts repositories to Store
type RepositoryStore struct {
	Repos *repository.Repositories
}

// WithSession runs fn with review and video repositories of a dedicated session
func (r RepositoryStore) WithSession(ctx context.Context, fn func(s Session) error) error {
	return r.Repos.WithSession(ctx, func(rs *repository.Session) error {
		return fn(Session{Reviews: rs.Review, Videos: rs.Video})
	})
}
