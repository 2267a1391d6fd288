package service

import (
	"context"
	"path"
	"strings"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/sms"
	"alcyxob/coaching-app/internal/storage"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// TextOutcome describes what happened to the optional text sent with a drill.
type TextOutcome string

const (
	TextNotRequested  TextOutcome = "not_requested"
	TextSent          TextOutcome = "sent"
	TextNotConfigured TextOutcome = "not_configured"
	TextMissingPhone  TextOutcome = "missing_phone"
	TextFailed        TextOutcome = "failed"
)

// ShareDrillInput describes a drill to share with a player.
type ShareDrillInput struct {
	PlayerID int64
	Filename string
	Title    string
	AlsoText bool
}

// ShareResult is the outcome of sharing a drill. A failed text never fails the share.
type ShareResult struct {
	Drill   *domain.SharedDrill
	Text    TextOutcome
	TextErr error
}

// DrillMessage is the text sent to a player when a drill is shared.
func DrillMessage(drill *domain.SharedDrill) string {
	return "Coach shared a drill: " + drill.DisplayTitle()
}

// DrillService manages the drill library and the drill sharing log.
type DrillService interface {
	// UploadDrill stores a drill file and returns its generated filename.
	UploadDrill(ctx context.Context, who domain.Identity, file *Upload) (string, error)
	ListDrillFiles(ctx context.Context) ([]string, error)
	ShareDrill(ctx context.Context, who domain.Identity, input ShareDrillInput) (*ShareResult, error)
}

type drillService struct {
	players repository.PlayerRepository
	drills  repository.SharedDrillRepository
	files   storage.FileStorage
	texts   *textService
	policy  accessPolicy
	logger  *zap.Logger
}

// NewDrillService creates a new instance of drillService.
func NewDrillService(
	repos repository.Repositories,
	files storage.FileStorage,
	gateway sms.Gateway,
	logger *zap.Logger,
) DrillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := accessPolicy{instructors: repos.Instructors}
	return &drillService{
		players: repos.Players,
		drills:  repos.Drills,
		files:   files,
		texts:   &textService{players: repos.Players, gateway: gateway, policy: policy, logger: logger},
		policy:  policy,
		logger:  logger,
	}
}

func (s *drillService) UploadDrill(ctx context.Context, who domain.Identity, file *Upload) (string, error) {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return "", err
	}
	if !file.present() {
		return "", invalidInput("drill file is required")
	}

	name := storage.NewObjectName("drill_", file.Filename, "")
	if err := s.files.Save(ctx, storage.Key(storage.AreaDrills, name), file.Content, file.Size, file.ContentType); err != nil {
		return "", errors.Wrap(err, "store drill file")
	}
	s.logger.Info("drill uploaded", zap.String("filename", name), zap.Int64("instructor_id", who.ID))
	return name, nil
}

func (s *drillService) ListDrillFiles(ctx context.Context) ([]string, error) {
	names, err := s.files.List(ctx, storage.AreaDrills)
	if err != nil {
		return nil, errors.Wrap(err, "list drill files")
	}
	return names, nil
}

func (s *drillService) ShareDrill(ctx context.Context, who domain.Identity, input ShareDrillInput) (*ShareResult, error) {
	instructor, err := s.policy.requireInstructor(ctx, who)
	if err != nil {
		return nil, err
	}
	filename := strings.TrimSpace(input.Filename)
	if filename == "" || path.Base(filename) != filename || strings.Contains(filename, `\`) {
		return nil, invalidInput("a drill filename is required")
	}
	player, err := loadPlayer(ctx, s.players, input.PlayerID)
	if err != nil {
		return nil, err
	}

	drill := &domain.SharedDrill{
		PlayerID:     player.ID,
		InstructorID: instructor.ID,
		Filename:     filename,
		Title:        strings.TrimSpace(input.Title),
	}
	if err := s.drills.Create(ctx, drill); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, errors.Wrap(err, "record shared drill")
	}

	result := &ShareResult{Drill: drill, Text: TextNotRequested}
	if !input.AlsoText {
		return result, nil
	}

	err = s.texts.deliver(ctx, player, DrillMessage(drill))
	switch {
	case err == nil:
		result.Text = TextSent
	case errors.Is(err, ErrGatewayNotConfigured):
		result.Text = TextNotConfigured
	case errors.Is(err, ErrPlayerMissingPhone):
		result.Text = TextMissingPhone
	default:
		result.Text = TextFailed
		result.TextErr = err
	}
	return result, nil
}
