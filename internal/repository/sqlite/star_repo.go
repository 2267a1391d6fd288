package sqlite

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/repository"

	"github.com/jmoiron/sqlx"
)

type starRepository struct {
	db *sqlx.DB
}

// NewStarRepository creates a new sqlite-backed star repository.
func NewStarRepository(db *sqlx.DB) repository.StarRepository {
	return &starRepository{db: db}
}

// Toggle runs delete-or-insert in one transaction. An insert that loses a race
// against a concurrent toggle hits the unique pair constraint; the star exists
// either way, so that case reports active.
func (r *starRepository) Toggle(ctx context.Context, instructorID, playerID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, translate(err, "begin toggle star")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM stars WHERE instructor_id = ? AND player_id = ?`, instructorID, playerID)
	if err != nil {
		return false, translate(err, "delete star")
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, translate(err, "delete star")
	}
	if removed > 0 {
		return false, translate(tx.Commit(), "commit toggle star")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stars (instructor_id, player_id, created_at) VALUES (?, ?, ?)`,
		instructorID, playerID, time.Now().UTC())
	if err != nil && !isUniqueViolation(err) {
		return false, translate(err, "insert star")
	}
	return true, translate(tx.Commit(), "commit toggle star")
}

func (r *starRepository) CountByInstructor(ctx context.Context, instructorID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM stars WHERE instructor_id = ?`, instructorID)
	if err != nil {
		return 0, translate(err, "count stars")
	}
	return count, nil
}

func (r *starRepository) PlayerIDsByInstructor(ctx context.Context, instructorID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT player_id FROM stars WHERE instructor_id = ? ORDER BY player_id`, instructorID)
	if err != nil {
		return nil, translate(err, "select starred players")
	}
	return ids, nil
}
