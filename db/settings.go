package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizbowl_backend/models"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings returns the settings row, or empty settings if it has not
// been created yet.
func (r *SettingsRepository) GetSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT badge1_ru, badge1_ky, badge2_ru, badge2_ky, badge3_ru, badge3_ky,
			day1_date, day2_date, day3_date, final_place_ru, final_place_ky, updated_at
		FROM settings WHERE id = 1
	`).Scan(&s.Badge1RU, &s.Badge1KY, &s.Badge2RU, &s.Badge2KY, &s.Badge3RU, &s.Badge3KY,
		&s.Day1Date, &s.Day2Date, &s.Day3Date, &s.FinalPlaceRU, &s.FinalPlaceKY, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("error fetching settings: %w", err)
	}
	return s, nil
}

// UpdateSettings overwrites the settings row.
func (r *SettingsRepository) UpdateSettings(ctx context.Context, s *models.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, badge1_ru, badge1_ky, badge2_ru, badge2_ky, badge3_ru, badge3_ky,
			day1_date, day2_date, day3_date, final_place_ru, final_place_ky, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO UPDATE SET
			badge1_ru = EXCLUDED.badge1_ru, badge1_ky = EXCLUDED.badge1_ky,
			badge2_ru = EXCLUDED.badge2_ru, badge2_ky = EXCLUDED.badge2_ky,
			badge3_ru = EXCLUDED.badge3_ru, badge3_ky = EXCLUDED.badge3_ky,
			day1_date = EXCLUDED.day1_date, day2_date = EXCLUDED.day2_date, day3_date = EXCLUDED.day3_date,
			final_place_ru = EXCLUDED.final_place_ru, final_place_ky = EXCLUDED.final_place_ky,
			updated_at = EXCLUDED.updated_at
	`, nullString(s.Badge1RU), nullString(s.Badge1KY), nullString(s.Badge2RU), nullString(s.Badge2KY),
		nullString(s.Badge3RU), nullString(s.Badge3KY), nullString(s.Day1Date), nullString(s.Day2Date),
		nullString(s.Day3Date), nullString(s.FinalPlaceRU), nullString(s.FinalPlaceKY))
	if err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}
	return nil
}
