package db

import (
	"context"
	"database/sql"
	"fmt"
)

const Schema = `
CREATE TABLE IF NOT EXISTS teams (
    id SERIAL PRIMARY KEY,
    team_name TEXT NOT NULL,
    login TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    captain_name TEXT NOT NULL DEFAULT '',
    captain_email TEXT NOT NULL DEFAULT '',
    captain_phone TEXT NOT NULL DEFAULT '',
    members TEXT NOT NULL DEFAULT '[]',
    school TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tests (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Upgrades for databases created before timed windows existed
ALTER TABLE tests ADD COLUMN IF NOT EXISTS lang TEXT NOT NULL DEFAULT 'ru';
ALTER TABLE tests ADD COLUMN IF NOT EXISTS duration_minutes INTEGER NOT NULL DEFAULT 60;
ALTER TABLE tests ADD COLUMN IF NOT EXISTS window_start TIMESTAMPTZ;
ALTER TABLE tests ADD COLUMN IF NOT EXISTS window_end TIMESTAMPTZ;

CREATE TABLE IF NOT EXISTS categories (
    id SERIAL PRIMARY KEY,
    name_ru TEXT NOT NULL,
    name_ky TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

ALTER TABLE categories ADD COLUMN IF NOT EXISTS desc_ru TEXT;
ALTER TABLE categories ADD COLUMN IF NOT EXISTS desc_ky TEXT;

-- options holds a JSON array of strings; correct is an option index or free text
CREATE TABLE IF NOT EXISTS questions (
    id SERIAL PRIMARY KEY,
    test_id INTEGER NOT NULL REFERENCES tests(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL DEFAULT 0,
    text TEXT NOT NULL DEFAULT '',
    options TEXT,
    correct TEXT,
    points INTEGER NOT NULL DEFAULT 1,
    lang TEXT NOT NULL DEFAULT 'ru',
    category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS questions_test_id_idx ON questions (test_id);

-- answers holds the JSON audit list captured at grading time
CREATE TABLE IF NOT EXISTS results (
    id SERIAL PRIMARY KEY,
    team_id INTEGER REFERENCES teams(id) ON DELETE CASCADE,
    test_id INTEGER REFERENCES tests(id) ON DELETE SET NULL,
    score INTEGER NOT NULL DEFAULT 0,
    answers TEXT NOT NULL DEFAULT '[]',
    taken_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS results_team_id_idx ON results (team_id);

CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    badge1_ru TEXT, badge1_ky TEXT,
    badge2_ru TEXT, badge2_ky TEXT,
    badge3_ru TEXT, badge3_ky TEXT,
    day1_date TEXT, day2_date TEXT, day3_date TEXT,
    final_place_ru TEXT, final_place_ky TEXT,
    updated_at TIMESTAMPTZ
);
`

// InitSchema initializes the database schema
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
