package repository

import (
	"alcyxob/coaching-app/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	// (duplicate login code or duplicate star pair). Callers may retry.
	ErrConflict = RepositoryError("unique constraint violation")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// InstructorRepository defines the interface for interacting with instructor data.
type InstructorRepository interface {
	// Create inserts the instructor and sets its ID and CreatedAt.
	// Returns ErrConflict if the code is already taken.
	Create(ctx context.Context, instructor *domain.Instructor) error
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
	GetByCode(ctx context.Context, code string) (*domain.Instructor, error)
	// Delete removes the instructor together with its stars and notes.
	Delete(ctx context.Context, id int64) error
}

// PlayerRepository defines the interface for interacting with player data.
type PlayerRepository interface {
	// Create inserts the player and sets its ID and CreatedAt.
	// Returns ErrConflict if the code is already taken.
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	GetByCode(ctx context.Context, code string) (*domain.Player, error)
	// List returns every player, newest first.
	List(ctx context.Context) ([]domain.Player, error)
	// Delete removes the player together with its metrics, notes, stars and shared drills.
	Delete(ctx context.Context, id int64) error
}

// MetricRepository defines the interface for the append-only metric series.
type MetricRepository interface {
	Create(ctx context.Context, metric *domain.Metric) error
	// ListByPlayer returns the player's metrics, oldest first.
	ListByPlayer(ctx context.Context, playerID int64) ([]domain.Metric, error)
	// CountByPlayer returns the number of metrics recorded per player id.
	CountByPlayer(ctx context.Context) (map[int64]int, error)
}

// NoteRepository defines the interface for interacting with notes.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	// ListByPlayer returns every note about the player, newest first.
	ListByPlayer(ctx context.Context, playerID int64) ([]domain.Note, error)
	// LatestShared returns the most recent note shared with the player, or ErrNotFound.
	LatestShared(ctx context.Context, playerID int64) (*domain.Note, error)
}

// StarRepository defines the interface for instructor favorites.
type StarRepository interface {
	// Toggle deletes the star for the pair if present, otherwise inserts it.
	// It reports whether the star exists afterwards.
	Toggle(ctx context.Context, instructorID, playerID int64) (active bool, err error)
	CountByInstructor(ctx context.Context, instructorID int64) (int, error)
	PlayerIDsByInstructor(ctx context.Context, instructorID int64) ([]int64, error)
}

// SharedDrillRepository defines the interface for the drill sharing log.
type SharedDrillRepository interface {
	Create(ctx context.Context, drill *domain.SharedDrill) error
	// ListByPlayer returns the drills sent to the player, newest first.
	ListByPlayer(ctx context.Context, playerID int64) ([]domain.SharedDrill, error)
}

// Repositories bundles one implementation of every repository, as built by a backend.
type Repositories struct {
	Instructors InstructorRepository
	Players     PlayerRepository
	Metrics     MetricRepository
	Notes       NoteRepository
	Stars       StarRepository
	Drills      SharedDrillRepository
}
