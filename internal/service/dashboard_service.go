package service

import (
	"context"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/storage"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// PlayerView is a player as shown on a page.
type PlayerView struct {
	domain.Player
	AgeBucket string `json:"ageBucket"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// DrillView is a shared drill with a link to its file.
type DrillView struct {
	domain.SharedDrill
	DisplayTitle string `json:"displayTitle"`
	URL          string `json:"url,omitempty"`
}

// PlayerDashboard is what a logged-in player sees. Player is nil for anyone else.
type PlayerDashboard struct {
	Player      *PlayerView         `json:"player"`
	SharedNote  *domain.Note        `json:"sharedNote"`
	ChartPoints []domain.ChartPoint `json:"chartPoints"`
	Drills      []DrillView         `json:"drills"`
}

// PlayerGroup holds the players of one age bucket.
type PlayerGroup struct {
	Bucket  string       `json:"bucket"`
	Players []PlayerView `json:"players"`
}

// Workspace is the instructor page. Instructor is nil when nobody is logged in as one.
type Workspace struct {
	Instructor    *domain.Instructor `json:"instructor"`
	Groups        []PlayerGroup      `json:"groups"`
	StarredIDs    []int64            `json:"starredIds"`
	SessionCounts map[int64]int      `json:"sessionCounts"`
	DrillFiles    []string           `json:"drillFiles"`
	SMSReady      bool               `json:"smsReady"`
}

// PlayerDetail is the instructor's full view of one player.
type PlayerDetail struct {
	Player      PlayerView          `json:"player"`
	Starred     bool                `json:"starred"`
	Metrics     []domain.Metric     `json:"metrics"`
	ChartPoints []domain.ChartPoint `json:"chartPoints"`
	Notes       []domain.Note       `json:"notes"`
	Drills      []DrillView         `json:"drills"`
}

// DashboardService builds the read-only page models.
type DashboardService interface {
	PlayerDashboard(ctx context.Context, who domain.Identity) (*PlayerDashboard, error)
	Workspace(ctx context.Context, who domain.Identity) (*Workspace, error)
	PlayerDetail(ctx context.Context, who domain.Identity, playerID int64) (*PlayerDetail, error)
}

type dashboardService struct {
	repos    repository.Repositories
	files    storage.FileStorage
	smsReady bool
	policy   accessPolicy
	logger   *zap.Logger
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(repos repository.Repositories, files storage.FileStorage, smsReady bool, logger *zap.Logger) DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dashboardService{
		repos:    repos,
		files:    files,
		smsReady: smsReady,
		policy:   accessPolicy{instructors: repos.Instructors},
		logger:   logger,
	}
}

func (s *dashboardService) PlayerDashboard(ctx context.Context, who domain.Identity) (*PlayerDashboard, error) {
	view := &PlayerDashboard{ChartPoints: []domain.ChartPoint{}, Drills: []DrillView{}}
	if !who.IsPlayer() {
		return view, nil
	}

	player, err := s.repos.Players.GetByID(ctx, who.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return view, nil
		}
		return nil, errors.Wrap(err, "load player")
	}
	pv := s.playerView(ctx, *player)
	view.Player = &pv

	note, err := s.repos.Notes.LatestShared(ctx, player.ID)
	switch {
	case err == nil:
		view.SharedNote = note
	case !errors.Is(err, repository.ErrNotFound):
		return nil, errors.Wrap(err, "load shared note")
	}

	metrics, err := s.repos.Metrics.ListByPlayer(ctx, player.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load metrics")
	}
	view.ChartPoints = domain.ChartPoints(metrics)

	view.Drills, err = s.drillViews(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *dashboardService) Workspace(ctx context.Context, who domain.Identity) (*Workspace, error) {
	view := &Workspace{
		StarredIDs: []int64{},
		SMSReady:   s.smsReady,
	}

	if who.IsInstructor() {
		instructor, err := s.repos.Instructors.GetByID(ctx, who.ID)
		switch {
		case err == nil:
			view.Instructor = instructor
		case !errors.Is(err, repository.ErrNotFound):
			return nil, errors.Wrap(err, "load instructor")
		}
	}

	players, err := s.repos.Players.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list players")
	}
	grouped := make(map[string][]PlayerView, len(domain.AgeBuckets))
	for _, p := range players {
		pv := s.playerView(ctx, p)
		grouped[pv.AgeBucket] = append(grouped[pv.AgeBucket], pv)
	}
	view.Groups = make([]PlayerGroup, 0, len(domain.AgeBuckets))
	for _, bucket := range domain.AgeBuckets {
		members := grouped[bucket]
		if members == nil {
			members = []PlayerView{}
		}
		view.Groups = append(view.Groups, PlayerGroup{Bucket: bucket, Players: members})
	}

	if view.Instructor != nil {
		view.StarredIDs, err = s.repos.Stars.PlayerIDsByInstructor(ctx, view.Instructor.ID)
		if err != nil {
			return nil, errors.Wrap(err, "list starred players")
		}
	}

	counts, err := s.repos.Metrics.CountByPlayer(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count metrics")
	}
	view.SessionCounts = make(map[int64]int, len(players))
	for _, p := range players {
		view.SessionCounts[p.ID] = counts[p.ID]
	}

	view.DrillFiles, err = s.files.List(ctx, storage.AreaDrills)
	if err != nil {
		return nil, errors.Wrap(err, "list drill files")
	}
	return view, nil
}

func (s *dashboardService) PlayerDetail(ctx context.Context, who domain.Identity, playerID int64) (*PlayerDetail, error) {
	instructor, err := s.policy.requireInstructor(ctx, who)
	if err != nil {
		return nil, err
	}
	player, err := loadPlayer(ctx, s.repos.Players, playerID)
	if err != nil {
		return nil, err
	}

	detail := &PlayerDetail{Player: s.playerView(ctx, *player)}

	if detail.Metrics, err = s.repos.Metrics.ListByPlayer(ctx, playerID); err != nil {
		return nil, errors.Wrap(err, "load metrics")
	}
	detail.ChartPoints = domain.ChartPoints(detail.Metrics)
	if detail.Notes, err = s.repos.Notes.ListByPlayer(ctx, playerID); err != nil {
		return nil, errors.Wrap(err, "load notes")
	}
	if detail.Drills, err = s.drillViews(ctx, playerID); err != nil {
		return nil, err
	}

	starred, err := s.repos.Stars.PlayerIDsByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list starred players")
	}
	for _, id := range starred {
		if id == playerID {
			detail.Starred = true
			break
		}
	}
	return detail, nil
}

func (s *dashboardService) playerView(ctx context.Context, p domain.Player) PlayerView {
	view := PlayerView{Player: p, AgeBucket: domain.AgeBucket(p.Age)}
	if p.PhotoKey != "" {
		view.PhotoURL = s.fileURL(ctx, p.PhotoKey)
	}
	return view
}

func (s *dashboardService) drillViews(ctx context.Context, playerID int64) ([]DrillView, error) {
	drills, err := s.repos.Drills.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, errors.Wrap(err, "load shared drills")
	}
	views := make([]DrillView, len(drills))
	for i, d := range drills {
		views[i] = DrillView{
			SharedDrill:  d,
			DisplayTitle: d.DisplayTitle(),
			URL:          s.fileURL(ctx, storage.Key(storage.AreaDrills, d.Filename)),
		}
	}
	return views, nil
}

// fileURL never fails the page; a missing link is logged.
func (s *dashboardService) fileURL(ctx context.Context, key string) string {
	url, err := s.files.URL(ctx, key)
	if err != nil {
		s.logger.Warn("failed to build file url", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
