package service

import (
	"context"
	"strings"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// InstructorLogin is the outcome of an instructor login.
type InstructorLogin struct {
	Instructor *domain.Instructor
	// Provisioned is set when the master code created a new instructor. The new
	// instructor's code must be shown to the caller once.
	Provisioned bool
}

// AuthService resolves login codes and manages instructor accounts.
type AuthService interface {
	LoginPlayer(ctx context.Context, code string) (*domain.Player, error)
	LoginInstructor(ctx context.Context, code, name string) (*InstructorLogin, error)
	EnsureMasterInstructor(ctx context.Context) (*domain.Instructor, error)
	CreateInstructor(ctx context.Context, name string) (*domain.Instructor, error)
	DeleteInstructor(ctx context.Context, who domain.Identity, instructorID int64) error
}

// authService implements the AuthService interface.
type authService struct {
	instructors repository.InstructorRepository
	players     repository.PlayerRepository
	policy      accessPolicy
	masterCode  string
	logger      *zap.Logger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	instructors repository.InstructorRepository,
	players repository.PlayerRepository,
	masterCode string,
	logger *zap.Logger,
) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		instructors: instructors,
		players:     players,
		policy:      accessPolicy{instructors: instructors},
		masterCode:  masterCode,
		logger:      logger,
	}
}

// LoginPlayer resolves a player code. Codes match exactly, after trimming whitespace.
func (s *authService) LoginPlayer(ctx context.Context, code string) (*domain.Player, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCredential
	}
	player, err := s.players.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, errors.Wrap(err, "look up player code")
	}
	return player, nil
}

// LoginInstructor resolves an instructor code. The master code either creates a
// new named instructor or, without a name, logs in as the master instructor.
func (s *authService) LoginInstructor(ctx context.Context, code, name string) (*InstructorLogin, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, ErrInvalidCredential
	}

	instructor, err := s.instructors.GetByCode(ctx, code)
	if err == nil {
		return &InstructorLogin{Instructor: instructor}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "look up instructor code")
	}

	if code != s.masterCode {
		return nil, ErrInvalidCredential
	}

	if name != "" {
		instructor, err = s.CreateInstructor(ctx, name)
		if err != nil {
			return nil, err
		}
		s.logger.Info("instructor provisioned with master code",
			zap.Int64("instructor_id", instructor.ID), zap.String("name", instructor.Name))
		return &InstructorLogin{Instructor: instructor, Provisioned: true}, nil
	}

	instructor, err = s.EnsureMasterInstructor(ctx)
	if err != nil {
		return nil, err
	}
	return &InstructorLogin{Instructor: instructor}, nil
}

// EnsureMasterInstructor returns the instructor owning the master code, creating
// "Head Coach" if there is none.
func (s *authService) EnsureMasterInstructor(ctx context.Context) (*domain.Instructor, error) {
	instructor, err := s.instructors.GetByCode(ctx, s.masterCode)
	if err == nil {
		return instructor, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "look up master instructor")
	}

	instructor = &domain.Instructor{Name: domain.MasterInstructorName, Code: s.masterCode}
	if err := s.instructors.Create(ctx, instructor); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Seeded concurrently.
			return s.instructors.GetByCode(ctx, s.masterCode)
		}
		return nil, errors.Wrap(err, "seed master instructor")
	}
	s.logger.Info("master instructor seeded", zap.Int64("instructor_id", instructor.ID))
	return instructor, nil
}

// CreateInstructor adds an instructor with a freshly generated code.
func (s *authService) CreateInstructor(ctx context.Context, name string) (*domain.Instructor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultInstructorName
	}

	instructor := &domain.Instructor{Name: name}
	err := insertWithFreshCode(func(code string) error {
		instructor.Code = code
		return s.instructors.Create(ctx, instructor)
	}, func(code string) bool {
		return code == s.masterCode
	})
	if err != nil {
		return nil, errors.Wrap(err, "create instructor")
	}
	return instructor, nil
}

// DeleteInstructor removes an instructor with its stars and notes.
func (s *authService) DeleteInstructor(ctx context.Context, who domain.Identity, instructorID int64) error {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return err
	}
	if err := s.instructors.Delete(ctx, instructorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInstructorNotFound
		}
		return errors.Wrapf(err, "delete instructor %d", instructorID)
	}
	s.logger.Info("instructor deleted",
		zap.Int64("instructor_id", instructorID), zap.Int64("deleted_by", who.ID))
	return nil
}
