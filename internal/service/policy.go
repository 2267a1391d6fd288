package service

import (
	"context"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/cockroachdb/errors"
)

// accessPolicy answers "may this identity do that" before any side effect happens.
type accessPolicy struct {
	instructors repository.InstructorRepository
}

// requireInstructor loads the calling instructor. Anonymous callers, players and
// sessions of instructors that no longer exist are rejected with ErrUnauthorized.
func (p accessPolicy) requireInstructor(ctx context.Context, who domain.Identity) (*domain.Instructor, error) {
	if !who.IsInstructor() {
		return nil, ErrUnauthorized
	}
	instructor, err := p.instructors.GetByID(ctx, who.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, errors.Wrap(err, "load calling instructor")
	}
	return instructor, nil
}

// loadPlayer maps a missing player to ErrPlayerNotFound.
func loadPlayer(ctx context.Context, players repository.PlayerRepository, id int64) (*domain.Player, error) {
	player, err := players.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, errors.Wrapf(err, "load player %d", id)
	}
	return player, nil
}
