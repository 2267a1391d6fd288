package sqlite

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/jmoiron/sqlx"
)

type sharedDrillRepository struct {
	db *sqlx.DB
}

// NewSharedDrillRepository creates a new sqlite-backed shared drill repository.
func NewSharedDrillRepository(db *sqlx.DB) repository.SharedDrillRepository {
	return &sharedDrillRepository{db: db}
}

func (r *sharedDrillRepository) Create(ctx context.Context, drill *domain.SharedDrill) error {
	drill.SentAt = time.Now().UTC()

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO shared_drills (player_id, instructor_id, filename, title, sent_at)
		 VALUES (:player_id, :instructor_id, :filename, :title, :sent_at)`,
		drill)
	if err != nil {
		return translate(err, "insert shared drill")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translate(err, "read shared drill id")
	}
	drill.ID = id
	return nil
}

func (r *sharedDrillRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.SharedDrill, error) {
	drills := []domain.SharedDrill{}
	err := r.db.SelectContext(ctx, &drills,
		`SELECT id, player_id, instructor_id, filename, title, sent_at FROM shared_drills
		 WHERE player_id = ? ORDER BY sent_at DESC, id DESC`, playerID)
	if err != nil {
		return nil, translate(err, "select shared drills by player")
	}
	return drills, nil
}
