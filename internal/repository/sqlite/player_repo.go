package sqlite

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/jmoiron/sqlx"
)

const playerColumns = `id, name, age, code, phone, photo_key, created_at`

// playerRepository implements repository.PlayerRepository on sqlite.
type playerRepository struct {
	db *sqlx.DB
}

// NewPlayerRepository creates a new sqlite-backed player repository.
func NewPlayerRepository(db *sqlx.DB) repository.PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	player.CreatedAt = time.Now().UTC()

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO players (name, age, code, phone, photo_key, created_at)
		 VALUES (:name, :age, :code, :phone, :photo_key, :created_at)`,
		player)
	if err != nil {
		return translate(err, "insert player")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translate(err, "read player id")
	}
	player.ID = id
	return nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	var player domain.Player
	err := r.db.GetContext(ctx, &player, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	if err != nil {
		return nil, translate(err, "select player by id")
	}
	return &player, nil
}

func (r *playerRepository) GetByCode(ctx context.Context, code string) (*domain.Player, error) {
	var player domain.Player
	err := r.db.GetContext(ctx, &player, `SELECT `+playerColumns+` FROM players WHERE code = ?`, code)
	if err != nil {
		return nil, translate(err, "select player by code")
	}
	return &player, nil
}

func (r *playerRepository) List(ctx context.Context) ([]domain.Player, error) {
	players := []domain.Player{}
	err := r.db.SelectContext(ctx, &players,
		`SELECT `+playerColumns+` FROM players ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, translate(err, "select players")
	}
	return players, nil
}

// Delete removes the player and everything it owns in one transaction.
func (r *playerRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return translate(err, "begin delete player")
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM metrics WHERE player_id = ?`,
		`DELETE FROM notes WHERE player_id = ?`,
		`DELETE FROM stars WHERE player_id = ?`,
		`DELETE FROM shared_drills WHERE player_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return translate(err, "delete player dependents")
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return translate(err, "delete player")
	}
	if n, err := res.RowsAffected(); err != nil {
		return translate(err, "delete player")
	} else if n == 0 {
		return repository.ErrNotFound
	}
	return translate(tx.Commit(), "commit delete player")
}
