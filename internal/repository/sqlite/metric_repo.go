package sqlite

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/jmoiron/sqlx"
)

type metricRepository struct {
	db *sqlx.DB
}

// NewMetricRepository creates a new sqlite-backed metric repository.
func NewMetricRepository(db *sqlx.DB) repository.MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) Create(ctx context.Context, metric *domain.Metric) error {
	metric.CreatedAt = time.Now().UTC()

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO metrics (player_id, exit_velocity, created_at) VALUES (:player_id, :exit_velocity, :created_at)`,
		metric)
	if err != nil {
		return translate(err, "insert metric")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translate(err, "read metric id")
	}
	metric.ID = id
	return nil
}

func (r *metricRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.Metric, error) {
	metrics := []domain.Metric{}
	err := r.db.SelectContext(ctx, &metrics,
		`SELECT id, player_id, exit_velocity, created_at FROM metrics
		 WHERE player_id = ? ORDER BY created_at ASC, id ASC`, playerID)
	if err != nil {
		return nil, translate(err, "select metrics by player")
	}
	return metrics, nil
}

func (r *metricRepository) CountByPlayer(ctx context.Context) (map[int64]int, error) {
	var rows []struct {
		PlayerID int64 `db:"player_id"`
		Count    int   `db:"n"`
	}
	err := r.db.SelectContext(ctx, &rows, `SELECT player_id, COUNT(*) AS n FROM metrics GROUP BY player_id`)
	if err != nil {
		return nil, translate(err, "count metrics by player")
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.PlayerID] = row.Count
	}
	return counts, nil
}
