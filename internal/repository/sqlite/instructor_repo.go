package sqlite

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/jmoiron/sqlx"
)

const instructorColumns = `id, name, code, created_at`

// instructorRepository implements repository.InstructorRepository on sqlite.
type instructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository creates a new sqlite-backed instructor repository.
func NewInstructorRepository(db *sqlx.DB) repository.InstructorRepository {
	return &instructorRepository{db: db}
}

func (r *instructorRepository) Create(ctx context.Context, instructor *domain.Instructor) error {
	if instructor.Name == "" {
		instructor.Name = domain.DefaultInstructorName
	}
	instructor.CreatedAt = time.Now().UTC()

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO instructors (name, code, created_at) VALUES (:name, :code, :created_at)`,
		instructor)
	if err != nil {
		return translate(err, "insert instructor")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translate(err, "read instructor id")
	}
	instructor.ID = id
	return nil
}

func (r *instructorRepository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	var instructor domain.Instructor
	err := r.db.GetContext(ctx, &instructor, `SELECT `+instructorColumns+` FROM instructors WHERE id = ?`, id)
	if err != nil {
		return nil, translate(err, "select instructor by id")
	}
	return &instructor, nil
}

func (r *instructorRepository) GetByCode(ctx context.Context, code string) (*domain.Instructor, error) {
	var instructor domain.Instructor
	err := r.db.GetContext(ctx, &instructor, `SELECT `+instructorColumns+` FROM instructors WHERE code = ?`, code)
	if err != nil {
		return nil, translate(err, "select instructor by code")
	}
	return &instructor, nil
}

// Delete removes the instructor and its dependent rows in one transaction.
func (r *instructorRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return translate(err, "begin delete instructor")
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM stars WHERE instructor_id = ?`,
		`DELETE FROM notes WHERE instructor_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return translate(err, "delete instructor dependents")
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM instructors WHERE id = ?`, id)
	if err != nil {
		return translate(err, "delete instructor")
	}
	if n, err := res.RowsAffected(); err != nil {
		return translate(err, "delete instructor")
	} else if n == 0 {
		return repository.ErrNotFound
	}
	return translate(tx.Commit(), "commit delete instructor")
}
