package service

import (
	"context"
	"math"
	"testing"

	"alcyxob/coaching-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMetric(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	p := env.player(t, "Avery", nil, "")
	svc := NewCoachingService(env.repos)

	m, err := svc.RecordMetric(ctx, coach, p.ID, 72.3)
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, 72.3, m.ExitVelocity)

	_, err = svc.RecordMetric(ctx, coach, p.ID+100, 70)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = svc.RecordMetric(ctx, coach, p.ID, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordMetric(ctx, domain.PlayerIdentity(p), p.ID, 99)
	assert.ErrorIs(t, err, ErrUnauthorized)

	metrics, err := env.repos.Metrics.ListByPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, metrics, 1)
}

func TestAddNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	p := env.player(t, "Avery", nil, "")
	svc := NewCoachingService(env.repos)

	note, err := svc.AddNote(ctx, coach, p.ID, "  keep hands inside  ", true)
	require.NoError(t, err)
	assert.Equal(t, "keep hands inside", note.Text)
	assert.Equal(t, coach.ID, note.InstructorID)
	assert.True(t, note.SharedWithPlayer)

	_, err = svc.AddNote(ctx, coach, p.ID, "   ", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddNote(ctx, coach, 9999, "text", false)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = svc.AddNote(ctx, domain.Anonymous, p.ID, "text", false)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestToggleStarIsAnInvolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	other := env.instructor(t, "Other")
	p := env.player(t, "Avery", nil, "")
	q := env.player(t, "Blake", nil, "")
	svc := NewCoachingService(env.repos)

	toggle, err := svc.ToggleStar(ctx, coach, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StarToggle{Active: true, Count: 1}, *toggle)

	toggle, err = svc.ToggleStar(ctx, coach, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StarToggle{Active: true, Count: 2}, *toggle)

	toggle, err = svc.ToggleStar(ctx, other, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StarToggle{Active: true, Count: 1}, *toggle, "stars are per instructor")

	toggle, err = svc.ToggleStar(ctx, coach, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StarToggle{Active: false, Count: 1}, *toggle)

	_, err = svc.ToggleStar(ctx, coach, 12345)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = svc.ToggleStar(ctx, domain.PlayerIdentity(p), q.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
