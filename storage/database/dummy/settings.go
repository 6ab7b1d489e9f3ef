package dummydb

import (
	"context"

	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
)

type settingsRepository struct {
	db *settingsTable
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db.settings}
}

func cloneSettings(s settings.Settings) settings.Settings {
	if s.CustomScale != nil {
		s.CustomScale = append(make([]grading.Step, 0, len(s.CustomScale)), s.CustomScale...)
	}
	return s
}

func (repo *settingsRepository) GetSettings(_ context.Context, userID string) (settings.Settings, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[userID]; ok {
		return cloneSettings(*s), nil
	}
	return settings.Settings{}, settings.ErrNotFound
}

func (repo *settingsRepository) SaveSettings(_ context.Context, s settings.Settings) (settings.Settings, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s = cloneSettings(s)
	repo.db.table[s.UserID] = &s
	return cloneSettings(s), nil
}
