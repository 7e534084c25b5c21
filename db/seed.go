package db

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"quizbowl_backend/models"
)

//go:embed seed.yaml
var seedYAML []byte

type SeedData struct {
	Categories []struct {
		NameRU string `yaml:"name_ru"`
		NameKY string `yaml:"name_ky"`
	} `yaml:"categories"`
	Tests []struct {
		Title           string `yaml:"title"`
		Description     string `yaml:"description"`
		Lang            string `yaml:"lang"`
		DurationMinutes int    `yaml:"duration_minutes"`
		Questions       []struct {
			Ordinal int      `yaml:"ordinal"`
			Text    string   `yaml:"text"`
			Options []string `yaml:"options"`
			Correct string   `yaml:"correct"`
			Points  int      `yaml:"points"`
		} `yaml:"questions"`
	} `yaml:"tests"`
	Settings models.Settings `yaml:"settings"`
}

// LoadSeedData parses the embedded seed document.
func LoadSeedData() (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("error parsing seed data: %w", err)
	}
	return &data, nil
}

// Seed populates an empty database with demo categories and a demo
// test, and makes sure the settings row exists. Demo content is only
// inserted when withDemo is set and no test exists yet.
func Seed(ctx context.Context, db *sql.DB, data *SeedData, withDemo bool) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var hasTests bool
	if err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tests)`).Scan(&hasTests); err != nil {
		return fmt.Errorf("error checking tests: %w", err)
	}

	if withDemo && !hasTests {
		if err = seedDemo(ctx, tx, data); err != nil {
			return err
		}
		log.Println("Seeded demo test")
	}

	s := data.Settings
	_, err = tx.ExecContext(ctx, `
		INSERT INTO settings (id, badge1_ru, badge1_ky, badge2_ru, badge2_ky, badge3_ru, badge3_ky,
			day1_date, day2_date, day3_date, final_place_ru, final_place_ky, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO NOTHING
	`, nullString(s.Badge1RU), nullString(s.Badge1KY), nullString(s.Badge2RU), nullString(s.Badge2KY),
		nullString(s.Badge3RU), nullString(s.Badge3KY), nullString(s.Day1Date), nullString(s.Day2Date),
		nullString(s.Day3Date), nullString(s.FinalPlaceRU), nullString(s.FinalPlaceKY))
	if err != nil {
		return fmt.Errorf("error seeding settings: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func seedDemo(ctx context.Context, tx *sql.Tx, data *SeedData) error {
	for _, c := range data.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (name_ru, name_ky) VALUES ($1, $2)`, c.NameRU, c.NameKY,
		); err != nil {
			return fmt.Errorf("error seeding categories: %w", err)
		}
	}

	for _, t := range data.Tests {
		var testID int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO tests (title, description, lang, duration_minutes)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, t.Title, t.Description, t.Lang, t.DurationMinutes).Scan(&testID)
		if err != nil {
			return fmt.Errorf("error seeding test %q: %w", t.Title, err)
		}

		for _, q := range t.Questions {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO questions (test_id, ordinal, text, options, correct, points, lang)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, testID, q.Ordinal, q.Text, string(options), q.Correct, q.Points, t.Lang); err != nil {
				return fmt.Errorf("error seeding questions: %w", err)
			}
		}
	}
	return nil
}
