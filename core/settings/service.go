package settings

import (
	"context"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

var ErrNotFound = core.NewNotFoundError("settings")

type (
	Repository interface {
		// GetSettings returns ErrNotFound when the user never saved settings.
		GetSettings(ctx context.Context, userID string) (Settings, error)
		// SaveSettings inserts or replaces the settings of a user.
		SaveSettings(ctx context.Context, s Settings) (Settings, error)
	}

	// Recalculator re-derives the stored grades of a user with a new scale.
	Recalculator interface {
		RecalculateAll(ctx context.Context, userID string, scale grading.Scale) (int, error)
	}

	Service struct {
		repo         Repository
		recalculator Recalculator
	}
)

func NewService(repo Repository, recalculator Recalculator) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(recalculator, "recalculator"),
	).CheckAndPanic()

	return &Service{repo: repo, recalculator: recalculator}
}

// Get returns the settings of a user, or the defaults.
func (svc *Service) Get(ctx context.Context, userID string) (Settings, error) {
	s, err := svc.repo.GetSettings(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Default(userID), nil
	}
	return s, err
}

// Scale returns the GPA scale selected by a user.
func (svc *Service) Scale(ctx context.Context, userID string) (grading.Scale, error) {
	s, err := svc.Get(ctx, userID)
	if err != nil {
		return grading.Scale{}, err
	}
	return s.Scale(), nil
}

// Update saves the provided fields; when the resulting scale differs from the previous one,
// every grading period of the user is recalculated with it.
func (svc *Service) Update(ctx context.Context, userID string, us UpdateSettings) (Settings, error) {
	s, err := svc.Get(ctx, userID)
	if err != nil {
		return Settings{}, err
	}
	before := s.Scale()

	if us.GradingPeriodName != nil {
		s.GradingPeriodName = *us.GradingPeriodName
	}
	if us.GPAScale != nil {
		s.GPAScale = *us.GPAScale
	}
	if us.CustomScale != nil {
		s.CustomScale = us.CustomScale
	}
	if us.University != nil {
		s.University = *us.University
	}
	s.UpdatedAt = time.Now().UTC()

	if s, err = svc.repo.SaveSettings(ctx, s); err != nil {
		return Settings{}, err
	}

	if after := s.Scale(); !sameScale(before, after) {
		if _, err := svc.recalculator.RecalculateAll(ctx, userID, after); err != nil {
			return s, errors.Wrap(err, "recalculating GPAs")
		}
	}
	return s, nil
}

// RecalculateAll re-derives every grading period of a user with their current scale.
func (svc *Service) RecalculateAll(ctx context.Context, userID string) (int, error) {
	scale, err := svc.Scale(ctx, userID)
	if err != nil {
		return 0, err
	}
	return svc.recalculator.RecalculateAll(ctx, userID, scale)
}

func sameScale(a, b grading.Scale) bool {
	if a.Name() != b.Name() || a.IsPercentage() != b.IsPercentage() {
		return false
	}
	as, bs := a.Steps(), b.Steps()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
