package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

// AppRepository handles tracked steam apps
type AppRepository struct {
	db     dbtx
	driver string
}

// appSQL represents a tracked app for SQL operations
type appSQL struct {
	AppID             int64  `db:"app_id"`
	Name              string `db:"name"`
	Active            bool   `db:"active"`
	LastKnownPosition int64  `db:"last_known_position"`
	CreatedAt         int64  `db:"created_at"`
}

// NewAppRepository creates a new app repository
func NewAppRepository(db *sqlx.DB) *AppRepository {
	return &AppRepository{db: db, driver: db.DriverName()}
}

// CreateApp starts tracking an app, returns false if it is tracked already
func (r *AppRepository) CreateApp(ctx context.Context, app *domain.TrackedApp) (bool, error) {
	if app.AppID <= 0 {
		return false, fmt.Errorf("create app: invalid app id %d", app.AppID)
	}
	query := r.db.Rebind(`INSERT INTO apps (app_id, name, active, last_known_position, created_at)
		VALUES (?, ?, ?, 0, ?) ON CONFLICT (app_id) DO NOTHING`)

	var created bool
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, app.AppID, app.Name, app.Active, nowUnix())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		created = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("create app %d: %w", app.AppID, err)
	}
	return created, nil
}

// GetApp retrieves a tracked app
func (r *AppRepository) GetApp(ctx context.Context, appID int64) (*domain.TrackedApp, error) {
	var row appSQL
	err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind("SELECT * FROM apps WHERE app_id = ?"), appID)
	if err != nil {
		return nil, notFound(err, "get app %d", appID)
	}
	return row.toDomain(), nil
}

// ListApps returns tracked apps ordered by id
func (r *AppRepository) ListApps(ctx context.Context, activeOnly bool) ([]domain.TrackedApp, error) {
	query := "SELECT * FROM apps"
	if activeOnly {
		query += " WHERE active = " + boolLiteral(r.driver, true)
	}
	query += " ORDER BY app_id"

	var rows []appSQL
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	res := make([]domain.TrackedApp, 0, len(rows))
	for _, row := range rows {
		res = append(res, *row.toDomain())
	}
	return res, nil
}

// SetAppActive enables or disables fetching for an app
func (r *AppRepository) SetAppActive(ctx context.Context, appID int64, active bool) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE apps SET active = ? WHERE app_id = ?"), active, appID)
	if err != nil {
		return fmt.Errorf("set app %d active: %w", appID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set app %d active: %w", appID, ErrNotFound)
	}
	return nil
}

func (a *appSQL) toDomain() *domain.TrackedApp {
	return &domain.TrackedApp{
		AppID:             a.AppID,
		Name:              a.Name,
		Active:            a.Active,
		LastKnownPosition: a.LastKnownPosition,
		CreatedAt:         time.Unix(a.CreatedAt, 0).UTC(),
	}
}

// boolLiteral returns boolean literal understood by the driver
func boolLiteral(driver string, v bool) string {
	switch {
	case driver == "pgx" && v:
		return "TRUE"
	case driver == "pgx":
		return "FALSE"
	case v:
		return "1"
	default:
		return "0"
	}
}
