package sqlite

import (
	"alcyxob/coaching-app/internal/repository"

	"github.com/jmoiron/sqlx"
)

// NewRepositories builds every sqlite repository on top of one connection pool.
func NewRepositories(db *sqlx.DB) repository.Repositories {
	return repository.Repositories{
		Instructors: NewInstructorRepository(db),
		Players:     NewPlayerRepository(db),
		Metrics:     NewMetricRepository(db),
		Notes:       NewNoteRepository(db),
		Stars:       NewStarRepository(db),
		Drills:      NewSharedDrillRepository(db),
	}
}
