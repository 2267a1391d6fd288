package service

import (
	"context"
	"strings"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/sms"

	"go.uber.org/zap"
)

// TextService sends text messages to players.
type TextService interface {
	// Ready reports whether a gateway is configured.
	Ready() bool
	SendText(ctx context.Context, who domain.Identity, playerID int64, body string) error
}

type textService struct {
	players repository.PlayerRepository
	gateway sms.Gateway
	policy  accessPolicy
	logger  *zap.Logger
}

// NewTextService creates a new instance of textService. gateway may be nil,
// in which case every send fails with ErrGatewayNotConfigured.
func NewTextService(
	instructors repository.InstructorRepository,
	players repository.PlayerRepository,
	gateway sms.Gateway,
	logger *zap.Logger,
) TextService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &textService{
		players: players,
		gateway: gateway,
		policy:  accessPolicy{instructors: instructors},
		logger:  logger,
	}
}

func (s *textService) Ready() bool {
	return s.gateway != nil
}

func (s *textService) SendText(ctx context.Context, who domain.Identity, playerID int64, body string) error {
	if _, err := s.policy.requireInstructor(ctx, who); err != nil {
		return err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return invalidInput("message body is required")
	}
	if !s.Ready() {
		return ErrGatewayNotConfigured
	}
	player, err := loadPlayer(ctx, s.players, playerID)
	if err != nil {
		return err
	}
	return s.deliver(ctx, player, body)
}

// deliver sends body to the player's phone.
func (s *textService) deliver(ctx context.Context, player *domain.Player, body string) error {
	if s.gateway == nil {
		return ErrGatewayNotConfigured
	}
	if !player.HasPhone() {
		return ErrPlayerMissingPhone
	}
	if err := s.gateway.Send(ctx, player.Phone, body); err != nil {
		s.logger.Warn("text message failed", zap.Int64("player_id", player.ID), zap.Error(err))
		return &SendError{Cause: err}
	}
	return nil
}
