package sqlite

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/jmoiron/sqlx"
)

const noteColumns = `id, player_id, instructor_id, text, shared_with_player, created_at`

type noteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new sqlite-backed note repository.
func NewNoteRepository(db *sqlx.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	note.CreatedAt = time.Now().UTC()

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO notes (player_id, instructor_id, text, shared_with_player, created_at)
		 VALUES (:player_id, :instructor_id, :text, :shared_with_player, :created_at)`,
		note)
	if err != nil {
		return translate(err, "insert note")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translate(err, "read note id")
	}
	note.ID = id
	return nil
}

func (r *noteRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.Note, error) {
	notes := []domain.Note{}
	err := r.db.SelectContext(ctx, &notes,
		`SELECT `+noteColumns+` FROM notes WHERE player_id = ? ORDER BY created_at DESC, id DESC`, playerID)
	if err != nil {
		return nil, translate(err, "select notes by player")
	}
	return notes, nil
}

func (r *noteRepository) LatestShared(ctx context.Context, playerID int64) (*domain.Note, error) {
	var note domain.Note
	err := r.db.GetContext(ctx, &note,
		`SELECT `+noteColumns+` FROM notes
		 WHERE player_id = ? AND shared_with_player = 1
		 ORDER BY created_at DESC, id DESC LIMIT 1`, playerID)
	if err != nil {
		return nil, translate(err, "select latest shared note")
	}
	return &note, nil
}
