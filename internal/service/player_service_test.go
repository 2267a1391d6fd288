package service

import (
	"context"
	"strings"
	"testing"

	"alcyxob/coaching-app/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)

	p, err := svc.CreatePlayer(ctx, coach, NewPlayer{
		Name:  "  Avery  ",
		Age:   intPtr(11),
		Phone: " +15551112222 ",
		Photo: &Upload{Filename: "Headshot.PNG", ContentType: "image/png", Size: 3, Content: strings.NewReader("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Avery", p.Name)
	assert.Equal(t, "+15551112222", p.Phone)
	require.NotNil(t, p.Age)
	assert.Equal(t, 11, *p.Age)
	assert.Regexp(t, codePattern, p.Code)
	assert.True(t, strings.HasPrefix(p.PhotoKey, "players/p_"))
	assert.True(t, strings.HasSuffix(p.PhotoKey, ".png"))

	data, err := afero.ReadFile(env.fs, p.PhotoKey)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	stored, err := env.repos.Players.GetByCode(ctx, p.Code)
	require.NoError(t, err)
	assert.Equal(t, p.ID, stored.ID)
}

func TestCreatePlayer_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)

	_, err := svc.CreatePlayer(ctx, coach, NewPlayer{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreatePlayer(ctx, coach, NewPlayer{Name: "Neg", Age: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	p, err := svc.CreatePlayer(ctx, coach, NewPlayer{Name: "Zero", Age: intPtr(0)})
	require.NoError(t, err)
	assert.Nil(t, p.Age)
}

func TestCreatePlayer_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)
	existing := env.player(t, "Existing", nil, "")

	for _, who := range []domain.Identity{domain.Anonymous, domain.PlayerIdentity(existing)} {
		_, err := svc.CreatePlayer(ctx, who, NewPlayer{
			Name:  "Intruder",
			Photo: &Upload{Filename: "x.jpg", Content: strings.NewReader("x")},
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
	}

	players, err := env.repos.Players.List(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 1)
	names, err := env.files.List(ctx, "players")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCreatePlayer_CodesAreUnique(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)

	seen := map[string]bool{}
	for i := 0; i < 40; i++ {
		p, err := svc.CreatePlayer(ctx, coach, NewPlayer{Name: "Player"})
		require.NoError(t, err)
		assert.False(t, seen[p.Code], "duplicate code %s", p.Code)
		seen[p.Code] = true
	}
}

func TestBulkImport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)

	rows, err := ParsePlayerRows(strings.NewReader("name,age,phone\nA,12,\n,9,555\nB,x,\n"))
	require.NoError(t, err)

	created, err := svc.BulkImport(ctx, coach, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	players, err := env.repos.Players.List(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	byName := map[string]domain.Player{}
	for _, p := range players {
		byName[p.Name] = p
	}
	require.NotNil(t, byName["A"].Age)
	assert.Equal(t, 12, *byName["A"].Age)
	assert.Nil(t, byName["B"].Age)
	assert.NotEqual(t, byName["A"].Code, byName["B"].Code)
}

func TestBulkImport_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)

	created, err := svc.BulkImport(context.Background(), domain.Anonymous, []PlayerRow{{Name: "A"}})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, created)

	players, err := env.repos.Players.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestParseRosterAge(t *testing.T) {
	assert.Equal(t, intPtr(12), parseRosterAge(" 12 "))
	assert.Nil(t, parseRosterAge(""))
	assert.Nil(t, parseRosterAge("x"))
	assert.Nil(t, parseRosterAge("-3"))
	assert.Nil(t, parseRosterAge("1.5"))
	assert.Nil(t, parseRosterAge("99999999999999999999999"))
}

func TestDeletePlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)
	coaching := NewCoachingService(env.repos)

	p, err := svc.CreatePlayer(ctx, coach, NewPlayer{
		Name:  "Avery",
		Photo: &Upload{Filename: "a.jpg", Content: strings.NewReader("jpg")},
	})
	require.NoError(t, err)
	_, err = coaching.RecordMetric(ctx, coach, p.ID, 70)
	require.NoError(t, err)
	_, err = coaching.ToggleStar(ctx, coach, p.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePlayer(ctx, domain.Anonymous, p.ID), ErrUnauthorized)
	require.NoError(t, svc.DeletePlayer(ctx, coach, p.ID))
	assert.ErrorIs(t, svc.DeletePlayer(ctx, coach, p.ID), ErrPlayerNotFound)

	exists, err := afero.Exists(env.fs, p.PhotoKey)
	require.NoError(t, err)
	assert.False(t, exists)

	metrics, err := env.repos.Metrics.ListByPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, metrics)
	count, err := env.repos.Stars.CountByInstructor(ctx, coach.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImportCSV(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	coach := env.instructor(t, "Coach")
	svc := NewPlayerService(env.repos.Instructors, env.repos.Players, env.files, nil)

	created, err := svc.ImportCSV(ctx, coach, strings.NewReader("Name,Age,Phone\nAvery,9,+1555\nBlake,,\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	_, err = svc.ImportCSV(ctx, domain.Anonymous, strings.NewReader("name\n\"broken\n"))
	assert.ErrorIs(t, err, ErrUnauthorized, "authorization is checked before parsing")

	_, err = svc.ImportCSV(ctx, coach, strings.NewReader("name\n\"broken\n"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
