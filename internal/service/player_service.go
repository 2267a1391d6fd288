package service

import (
	"context"
	"io"
	"strconv"
	"strings"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/storage"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// NewPlayer holds the fields an instructor submits for a new player.
type NewPlayer struct {
	Name  string
	Age   *int
	Phone string
	Photo *Upload
}

// PlayerService manages the roster.
type PlayerService interface {
	CreatePlayer(ctx context.Context, who domain.Identity, input NewPlayer) (*domain.Player, error)
	// BulkImport creates a player for every row with a name and returns how many were created.
	BulkImport(ctx context.Context, who domain.Identity, rows []PlayerRow) (int, error)
	// ImportCSV parses a roster file and bulk imports it.
	ImportCSV(ctx context.Context, who domain.Identity, roster io.Reader) (int, error)
	DeletePlayer(ctx context.Context, who domain.Identity, playerID int64) error
}

type playerService struct {
	players repository.PlayerRepository
	files   storage.FileStorage
	policy  accessPolicy
	logger  *zap.Logger
}

// NewPlayerService creates a new instance of playerService.
func NewPlayerService(
	instructors repository.InstructorRepository,
	players repository.PlayerRepository,
	files storage.FileStorage,
	logger *zap.Logger,
) PlayerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &playerService{
		players: players,
		files:   files,
		policy:  accessPolicy{instructors: instructors},
		logger:  logger,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, who domain.Identity, input NewPlayer) (*domain.Player, error) {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return nil, err
	}

	player := &domain.Player{
		Name:  strings.TrimSpace(input.Name),
		Phone: strings.TrimSpace(input.Phone),
	}
	if player.Name == "" {
		return nil, invalidInput("player name is required")
	}
	if input.Age != nil {
		switch age := *input.Age; {
		case age < 0:
			return nil, invalidInput("age must not be negative")
		case age > 0:
			player.Age = &age
		}
	}

	if input.Photo.present() {
		key := storage.Key(storage.AreaPlayers, storage.NewObjectName("p_", input.Photo.Filename, ".jpg"))
		if err := s.files.Save(ctx, key, input.Photo.Content, input.Photo.Size, input.Photo.ContentType); err != nil {
			return nil, errors.Wrap(err, "store player photo")
		}
		player.PhotoKey = key
	}

	if err := s.insert(ctx, player); err != nil {
		if player.PhotoKey != "" {
			s.removePhoto(ctx, player.PhotoKey)
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) BulkImport(ctx context.Context, who domain.Identity, rows []PlayerRow) (int, error) {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return 0, err
	}

	created := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		player := &domain.Player{
			Name:  name,
			Age:   parseRosterAge(row.Age),
			Phone: strings.TrimSpace(row.Phone),
		}
		if err := s.insert(ctx, player); err != nil {
			return created, errors.Wrapf(err, "import player %q", name)
		}
		created++
	}
	return created, nil
}

func (s *playerService) ImportCSV(ctx context.Context, who domain.Identity, roster io.Reader) (int, error) {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return 0, err
	}
	rows, err := ParsePlayerRows(roster)
	if err != nil {
		return 0, err
	}
	return s.BulkImport(ctx, who, rows)
}

func (s *playerService) DeletePlayer(ctx context.Context, who domain.Identity, playerID int64) error {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return err
	}
	player, err := loadPlayer(ctx, s.players, playerID)
	if err != nil {
		return err
	}
	if err := s.players.Delete(ctx, playerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return errors.Wrapf(err, "delete player %d", playerID)
	}
	if player.PhotoKey != "" {
		s.removePhoto(ctx, player.PhotoKey)
	}
	return nil
}

func (s *playerService) insert(ctx context.Context, player *domain.Player) error {
	err := insertWithFreshCode(func(code string) error {
		player.Code = code
		return s.players.Create(ctx, player)
	}, nil)
	if err != nil {
		return errors.Wrap(err, "create player")
	}
	return nil
}

func (s *playerService) removePhoto(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to remove player photo", zap.String("key", key), zap.Error(err))
	}
}

// parseRosterAge accepts only plain digits; anything else means "no age".
func parseRosterAge(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil
		}
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &age
}
