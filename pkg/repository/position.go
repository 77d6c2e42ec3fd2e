package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// PositionRepository stores high-water marks of tracked entities.
// Marks live on the apps and channels rows, writes are conditional so a mark never decreases.
type PositionRepository struct {
	db     dbtx
	driver string
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sqlx.DB) *PositionRepository {
	return &PositionRepository{db: db, driver: db.DriverName()}
}

// GetPosition returns the last known position of an entity, 0 if it was never fetched
func (r *PositionRepository) GetPosition(ctx context.Context, ref domain.EntityRef) (int64, error) {
	table, key, id, err := positionTarget(ref)
	if err != nil {
		return 0, err
	}
	var pos int64
	query := r.db.Rebind(fmt.Sprintf("SELECT last_known_position FROM %s WHERE %s = ?", table, key))
	if err := sqlx.GetContext(ctx, r.db, &pos, query, id); err != nil {
		return 0, notFound(err, "get position of %s", ref)
	}
	return pos, nil
}

// AdvancePosition sets the position to candidate only if candidate is greater than the stored one.
// The comparison happens inside the UPDATE, so concurrent writers can't move the mark back.
// Returns true if the row was updated.
func (r *PositionRepository) AdvancePosition(ctx context.Context, ref domain.EntityRef, candidate int64) (bool, error) {
	table, key, id, err := positionTarget(ref)
	if err != nil {
		return false, err
	}
	query := r.db.Rebind(fmt.Sprintf("UPDATE %s SET last_known_position = ? WHERE %s = ? AND last_known_position < ?", table, key))

	var updated bool
	err = withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, candidate, id, candidate)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		updated = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("advance position of %s: %w", ref, err)
	}
	if !updated {
		// distinguish "not greater" from "no such entity"
		if _, err := r.GetPosition(ctx, ref); err != nil {
			return false, err
		}
	}
	return updated, nil
}

// ResetPosition unconditionally sets the position, used by operators to re-ingest history
func (r *PositionRepository) ResetPosition(ctx context.Context, ref domain.EntityRef, pos int64) error {
	table, key, id, err := positionTarget(ref)
	if err != nil {
		return err
	}
	query := r.db.Rebind(fmt.Sprintf("UPDATE %s SET last_known_position = ? WHERE %s = ?", table, key))
	res, err := r.db.ExecContext(ctx, query, pos, id)
	if err != nil {
		return fmt.Errorf("reset position of %s: %w", ref, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reset position of %s: %w", ref, ErrNotFound)
	}
	return nil
}

// positionTarget maps entity reference to table, key column and typed id
func positionTarget(ref domain.EntityRef) (table, key string, id any, err error) {
	switch ref.Kind {
	case domain.EntityApp:
		appID, err := strconv.ParseInt(ref.ID, 10, 64)
		if err != nil {
			return "", "", nil, fmt.Errorf("invalid app id %q: %w", ref.ID, err)
		}
		return "apps", "app_id", appID, nil
	case domain.EntityChannel:
		return "channels", "channel_id", ref.ID, nil
	default:
		return "", "", nil, fmt.Errorf("unknown entity kind %q", ref.Kind)
	}
}
