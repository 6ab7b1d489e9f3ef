package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/settings"
)

type settingsRow struct {
	UserID            string      `db:"user_id"`
	GradingPeriodName string      `db:"grading_period_name"`
	GPAScale          string      `db:"gpa_scale"`
	CustomScale       null.String `db:"custom_scale"`
	University        string      `db:"university"`
	UpdatedAt         time.Time   `db:"updated_at"`
}

type settingsRepository struct {
	db *sqlx.DB
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *sqlx.DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (repo *settingsRepository) GetSettings(ctx context.Context, userID string) (settings.Settings, error) {
	q := `SELECT user_id, grading_period_name, gpa_scale, custom_scale, university, updated_at
		FROM user_settings WHERE user_id = ?`
	var row settingsRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(q), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settings.Settings{}, settings.ErrNotFound
		}
		return settings.Settings{}, errors.Wrap(err, "selecting settings")
	}

	s := settings.Settings{
		UserID:            row.UserID,
		GradingPeriodName: row.GradingPeriodName,
		GPAScale:          row.GPAScale,
		University:        row.University,
		UpdatedAt:         row.UpdatedAt.UTC(),
	}
	if err := fromJSON(row.CustomScale.String, &s.CustomScale); err != nil {
		return settings.Settings{}, errors.Wrap(err, "decoding custom scale")
	}
	return s, nil
}

func (repo *settingsRepository) SaveSettings(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	row := settingsRow{
		UserID:            s.UserID,
		GradingPeriodName: s.GradingPeriodName,
		GPAScale:          s.GPAScale,
		University:        s.University,
		UpdatedAt:         s.UpdatedAt.UTC(),
	}
	if len(s.CustomScale) > 0 {
		scaleJSON, err := toJSON(s.CustomScale)
		if err != nil {
			return settings.Settings{}, errors.Wrap(err, "encoding custom scale")
		}
		row.CustomScale = null.StringFrom(scaleJSON)
	}

	q := `INSERT INTO user_settings (user_id, grading_period_name, gpa_scale, custom_scale, university, updated_at)
		VALUES (:user_id, :grading_period_name, :gpa_scale, :custom_scale, :university, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			grading_period_name = excluded.grading_period_name,
			gpa_scale = excluded.gpa_scale,
			custom_scale = excluded.custom_scale,
			university = excluded.university,
			updated_at = excluded.updated_at`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return settings.Settings{}, errors.Wrap(err, "saving settings")
	}
	return repo.GetSettings(ctx, s.UserID)
}
