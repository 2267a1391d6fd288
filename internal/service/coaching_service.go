package service

import (
	"context"
	"math"
	"strings"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/cockroachdb/errors"
)

// CoachingService records what instructors observe about players.
type CoachingService interface {
	RecordMetric(ctx context.Context, who domain.Identity, playerID int64, exitVelocity float64) (*domain.Metric, error)
	AddNote(ctx context.Context, who domain.Identity, playerID int64, text string, shareWithPlayer bool) (*domain.Note, error)
	// ToggleStar flips the caller's star on a player and reports the new state
	// together with the caller's star count.
	ToggleStar(ctx context.Context, who domain.Identity, playerID int64) (*domain.StarToggle, error)
}

type coachingService struct {
	players repository.PlayerRepository
	metrics repository.MetricRepository
	notes   repository.NoteRepository
	stars   repository.StarRepository
	policy  accessPolicy
}

// NewCoachingService creates a new instance of coachingService.
func NewCoachingService(repos repository.Repositories) CoachingService {
	return &coachingService{
		players: repos.Players,
		metrics: repos.Metrics,
		notes:   repos.Notes,
		stars:   repos.Stars,
		policy:  accessPolicy{instructors: repos.Instructors},
	}
}

func (s *coachingService) RecordMetric(ctx context.Context, who domain.Identity, playerID int64, exitVelocity float64) (*domain.Metric, error) {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return nil, err
	}
	if math.IsNaN(exitVelocity) || math.IsInf(exitVelocity, 0) {
		return nil, invalidInput("exit velocity must be a finite number")
	}
	if _, err := loadPlayer(ctx, s.players, playerID); err != nil {
		return nil, err
	}

	metric := &domain.Metric{PlayerID: playerID, ExitVelocity: exitVelocity}
	if err := s.metrics.Create(ctx, metric); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, errors.Wrap(err, "record metric")
	}
	return metric, nil
}

func (s *coachingService) AddNote(ctx context.Context, who domain.Identity, playerID int64, text string, shareWithPlayer bool) (*domain.Note, error) {
	instructor, err := s.policy.requireInstructor(ctx, who)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidInput("note text is required")
	}
	if _, err := loadPlayer(ctx, s.players, playerID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		PlayerID:         playerID,
		InstructorID:     instructor.ID,
		Text:             text,
		SharedWithPlayer: shareWithPlayer,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, errors.Wrap(err, "add note")
	}
	return note, nil
}

func (s *coachingService) ToggleStar(ctx context.Context, who domain.Identity, playerID int64) (*domain.StarToggle, error) {
	instructor, err := s.policy.requireInstructor(ctx, who)
	if err != nil {
		return nil, err
	}
	if _, err := loadPlayer(ctx, s.players, playerID); err != nil {
		return nil, err
	}

	active, err := s.stars.Toggle(ctx, instructor.ID, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, errors.Wrap(err, "toggle star")
	}
	count, err := s.stars.CountByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "count stars")
	}
	return &domain.StarToggle{Active: active, Count: count}, nil
}
