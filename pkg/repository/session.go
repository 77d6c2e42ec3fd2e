package repository

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
)

// Session is a set of repositories bound to a single connection taken from the pool.
// Concurrent workers use one session each and never share it.
type Session struct {
	App      *AppRepository
	Channel  *ChannelRepository
	Game     *GameRepository
	Review   *ReviewRepository
	Video    *VideoRepository
	Position *PositionRepository
}

// WithSession acquires a dedicated connection, runs fn with repositories bound to it
// and releases the connection on every exit path, including panics in fn
func (r *Repositories) WithSession(ctx context.Context, fn func(s *Session) error) error {
	conn, err := r.DB.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire session: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			lgr.Printf("[WARN] failed to release session: %v", err)
		}
	}()

	driver := r.DB.DriverName()
	s := &Session{
		App:      &AppRepository{db: conn, driver: driver},
		Channel:  &ChannelRepository{db: conn, driver: driver},
		Game:     &GameRepository{db: conn, driver: driver},
		Review:   &ReviewRepository{db: conn, driver: driver},
		Video:    &VideoRepository{db: conn, driver: driver},
		Position: &PositionRepository{db: conn, driver: driver},
	}
	return fn(s)
}
