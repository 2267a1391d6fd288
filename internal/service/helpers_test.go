package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/repository/sqlite"
	"alcyxob/coaching-app/internal/storage"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testMasterCode = "COACH123"

type sentText struct {
	To   string
	Body string
}

type fakeGateway struct {
	mu   sync.Mutex
	sent []sentText
	err  error
}

func (g *fakeGateway) Send(_ context.Context, to, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.sent = append(g.sent, sentText{To: to, Body: body})
	return nil
}

func (g *fakeGateway) Sent() []sentText {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]sentText(nil), g.sent...)
}

type testEnv struct {
	repos repository.Repositories
	fs    afero.Fs
	files storage.FileStorage
	auth  AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.ConnectDB(filepath.Join(t.TempDir(), "coaching.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.MigrateUp(db))

	fs := afero.NewMemMapFs()
	files, err := storage.NewFsStorage(fs)
	require.NoError(t, err)

	repos := sqlite.NewRepositories(db)
	return &testEnv{
		repos: repos,
		fs:    fs,
		files: files,
		auth:  NewAuthService(repos.Instructors, repos.Players, testMasterCode, nil),
	}
}

func (e *testEnv) instructor(t *testing.T, name string) domain.Identity {
	t.Helper()
	in, err := e.auth.CreateInstructor(context.Background(), name)
	require.NoError(t, err)
	return domain.InstructorIdentity(in)
}

func (e *testEnv) player(t *testing.T, name string, age *int, phone string) *domain.Player {
	t.Helper()
	p := &domain.Player{Name: name, Age: age, Phone: phone}
	require.NoError(t, insertWithFreshCode(func(code string) error {
		p.Code = code
		return e.repos.Players.Create(context.Background(), p)
	}, nil))
	return p
}

func intPtr(v int) *int { return &v }

var errGatewayDown = errors.New("gateway down")
