package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// ChannelRepository handles tracked youtube channels
type ChannelRepository struct {
	db     dbtx
	driver string
}

// channelSQL represents a tracked channel for SQL operations
type channelSQL struct {
	ChannelID         string         `db:"channel_id"`
	Handle            string         `db:"handle"`
	Name              string         `db:"name"`
	InfluencerID      sql.NullString `db:"influencer_id"`
	Active            bool           `db:"active"`
	LastKnownPosition int64          `db:"last_known_position"`
	CreatedAt         int64          `db:"created_at"`
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *sqlx.DB) *ChannelRepository {
	return &ChannelRepository{db: db, driver: db.DriverName()}
}

// CreateChannel starts tracking a channel, returns false if it is tracked already
func (r *ChannelRepository) CreateChannel(ctx context.Context, ch *domain.Channel) (bool, error) {
	if ch.ChannelID == "" {
		return false, fmt.Errorf("create channel: missing channel id")
	}
	infID := sql.NullString{String: ch.InfluencerID, Valid: ch.InfluencerID != ""}
	query := r.db.Rebind(`INSERT INTO channels (channel_id, handle, name, influencer_id, active, last_known_position, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?) ON CONFLICT (channel_id) DO NOTHING`)

	var created bool
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, ch.ChannelID, ch.Handle, ch.Name, infID, ch.Active, nowUnix())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		created = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("create channel %s: %w", ch.ChannelID, err)
	}
	return created, nil
}

// GetChannel retrieves a tracked channel
func (r *ChannelRepository) GetChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	var row channelSQL
	err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind("SELECT * FROM channels WHERE channel_id = ?"), channelID)
	if err != nil {
		return nil, notFound(err, "get channel %s", channelID)
	}
	return row.toDomain(), nil
}

// ListChannels returns tracked channels ordered by id
func (r *ChannelRepository) ListChannels(ctx context.Context, activeOnly bool) ([]domain.Channel, error) {
	query := "SELECT * FROM channels"
	if activeOnly {
		query += " WHERE active = " + boolLiteral(r.driver, true)
	}
	query += " ORDER BY channel_id"

	var rows []channelSQL
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	res := make([]domain.Channel, 0, len(rows))
	for _, row := range rows {
		res = append(res, *row.toDomain())
	}
	return res, nil
}

// SetChannelActive enables or disables fetching for a channel
func (r *ChannelRepository) SetChannelActive(ctx context.Context, channelID string, active bool) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE channels SET active = ? WHERE channel_id = ?"), active, channelID)
	if err != nil {
		return fmt.Errorf("set channel %s active: %w", channelID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set channel %s active: %w", channelID, ErrNotFound)
	}
	return nil
}

func (c *channelSQL) toDomain() *domain.Channel {
	return &domain.Channel{
		ChannelID:         c.ChannelID,
		Handle:            c.Handle,
		Name:              c.Name,
		InfluencerID:      c.InfluencerID.String,
		Active:            c.Active,
		LastKnownPosition: c.LastKnownPosition,
		CreatedAt:         time.Unix(c.CreatedAt, 0).UTC(),
	}
}
