package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// GameRepository handles games, influencers and their mapping
type GameRepository struct {
	db     dbtx
	driver string
}

type gameSQL struct {
	ID           string        `db:"id"`
	Name         string        `db:"name"`
	SteamAppID   sql.NullInt64 `db:"steam_app_id"`
	SlackChannel string        `db:"slack_channel"`
	Active       bool          `db:"active"`
	CreatedAt    int64         `db:"created_at"`
}

type influencerSQL struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db, driver: db.DriverName()}
}

// CreateGame inserts a game with a generated id, existing game with the same name is returned as is
func (r *GameRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	if game.Name == "" {
		return fmt.Errorf("create game: missing name")
	}
	id := uuid.NewString()
	appID := sql.NullInt64{Int64: game.SteamAppID, Valid: game.SteamAppID > 0}
	query := r.db.Rebind(`INSERT INTO games (id, name, steam_app_id, slack_channel, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (name) DO NOTHING`)

	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, id, game.Name, appID, game.SlackChannel, game.Active, nowUnix())
		return err
	})
	if err != nil {
		return fmt.Errorf("create game %s: %w", game.Name, err)
	}

	stored, err := r.GetGameByName(ctx, game.Name)
	if err != nil {
		return err
	}
	*game = *stored
	return nil
}

// GetGame retrieves a game by id
func (r *GameRepository) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	var row gameSQL
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind("SELECT * FROM games WHERE id = ?"), id); err != nil {
		return nil, notFound(err, "get game %s", id)
	}
	return row.toDomain(), nil
}

// GetGameByName retrieves a game by its unique name
func (r *GameRepository) GetGameByName(ctx context.Context, name string) (*domain.Game, error) {
	var row gameSQL
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind("SELECT * FROM games WHERE name = ?"), name); err != nil {
		return nil, notFound(err, "get game %q", name)
	}
	return row.toDomain(), nil
}

// ListGames returns games ordered by name
func (r *GameRepository) ListGames(ctx context.Context, activeOnly bool) ([]domain.Game, error) {
	query := "SELECT * FROM games"
	if activeOnly {
		query += " WHERE active = " + boolLiteral(r.driver, true)
	}
	query += " ORDER BY name"

	var rows []gameSQL
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	res := make([]domain.Game, 0, len(rows))
	for _, row := range rows {
		res = append(res, *row.toDomain())
	}
	return res, nil
}

// CreateInfluencer inserts an influencer, existing influencer with the same name is returned as is
func (r *GameRepository) CreateInfluencer(ctx context.Context, inf *domain.Influencer) error {
	if inf.Name == "" {
		return fmt.Errorf("create influencer: missing name")
	}
	query := r.db.Rebind(`INSERT INTO influencers (id, name, created_at) VALUES (?, ?, ?) ON CONFLICT (name) DO NOTHING`)
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, uuid.NewString(), inf.Name, nowUnix())
		return err
	})
	if err != nil {
		return fmt.Errorf("create influencer %s: %w", inf.Name, err)
	}

	var row influencerSQL
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind("SELECT * FROM influencers WHERE name = ?"), inf.Name); err != nil {
		return notFound(err, "get influencer %q", inf.Name)
	}
	inf.ID, inf.CreatedAt = row.ID, time.Unix(row.CreatedAt, 0).UTC()
	return nil
}

// MapInfluencer links an influencer to a game, repeated calls reactivate the link
func (r *GameRepository) MapInfluencer(ctx context.Context, gameID, influencerID string) error {
	query := r.db.Rebind(`INSERT INTO game_influencers (game_id, influencer_id, active) VALUES (?, ?, ?)
		ON CONFLICT (game_id, influencer_id) DO UPDATE SET active = excluded.active`)
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, gameID, influencerID, true)
		return err
	})
	if err != nil {
		return fmt.Errorf("map influencer %s to game %s: %w", influencerID, gameID, err)
	}
	return nil
}

// GameNameForChannel returns the name of a game the channel's influencer covers,
// the alphabetically first one if there are several, empty string if none
func (r *GameRepository) GameNameForChannel(ctx context.Context, channelID string) (string, error) {
	query := r.db.Rebind(`SELECT MIN(g.name) FROM channels c
		JOIN game_influencers gi ON gi.influencer_id = c.influencer_id AND gi.active = ` + boolLiteral(r.driver, true) + `
		JOIN games g ON g.id = gi.game_id
		WHERE c.channel_id = ?`)
	var name sql.NullString
	if err := sqlx.GetContext(ctx, r.db, &name, query, channelID); err != nil {
		return "", fmt.Errorf("get game for channel %s: %w", channelID, err)
	}
	return name.String, nil
}

func (g *gameSQL) toDomain() *domain.Game {
	return &domain.Game{
		ID:           g.ID,
		Name:         g.Name,
		SteamAppID:   g.SteamAppID.Int64,
		SlackChannel: g.SlackChannel,
		Active:       g.Active,
		CreatedAt:    time.Unix(g.CreatedAt, 0).UTC(),
	}
}
