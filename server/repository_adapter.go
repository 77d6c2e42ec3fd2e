package server

import (
	"context"
	"fmt"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// ListApps returns tracked apps
func (r *RepositoryAdapter) ListApps(ctx context.Context, activeOnly bool) ([]domain.TrackedApp, error) {
	return r.repos.App.ListApps(ctx, activeOnly)
}

// CreateApp starts tracking an app, returns false if it is tracked already
func (r *RepositoryAdapter) CreateApp(ctx context.Context, app *domain.TrackedApp) (bool, error) {
	return r.repos.App.CreateApp(ctx, app)
}

// SetAppActive enables or disables fetching of an app
func (r *RepositoryAdapter) SetAppActive(ctx context.Context, appID int64, active bool) error {
	return r.repos.App.SetAppActive(ctx, appID, active)
}

// GetGame returns a game by id
func (r *RepositoryAdapter) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	return r.repos.Game.GetGame(ctx, id)
}

// StatusCounts returns item counts keyed by "<table>_<status column>" and status value
func (r *RepositoryAdapter) StatusCounts(ctx context.Context) (map[string]map[string]int, error) {
	translation, reviewAnalysis, err := r.repos.Review.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}
	transcript, videoAnalysis, err := r.repos.Video.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count videos: %w", err)
	}
	return map[string]map[string]int{
		"review_translation": translation,
		"review_analysis":    reviewAnalysis,
		"video_transcript":   transcript,
		"video_analysis":     videoAnalysis,
	}, nil
}
