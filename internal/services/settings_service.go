package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/TwisterMc/JobTwister/internal/models"
	"github.com/TwisterMc/JobTwister/internal/repositories/store"
	"github.com/TwisterMc/JobTwister/internal/utils"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, theme string, prefs datatypes.JSON) (*models.Settings, error)
}

type settingsService struct {
	settings store.SettingsRepository
}

func NewSettingsService(settings store.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	const op = "SettingsService.Get"

	out, err := s.settings.Get(ctx)
	if errors.Is(err, utils.ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to get settings", err)
	}
	return out, nil
}

func (s *settingsService) Update(ctx context.Context, theme string, prefs datatypes.JSON) (*models.Settings, error) {
	const op = "SettingsService.Update"

	switch theme {
	case "system", "light", "dark":
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, "theme must be system, light, or dark", nil)
	}

	out := &models.Settings{
		Theme:       theme,
		Preferences: prefs,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.settings.Upsert(ctx, out); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save settings", err)
	}
	return out, nil
}
