package db

import (
	"context"
	"database/sql"
	"fmt"

	"quizbowl_backend/models"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `id, team_name, login, password, captain_name, captain_email, captain_phone, members, school, city, created_at`

func scanTeam(row interface{ Scan(...interface{}) error }) (models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.TeamName, &t.Login, &t.PasswordHash, &t.CaptainName, &t.CaptainEmail,
		&t.CaptainPhone, &t.Members, &t.School, &t.City, &t.CreatedAt)
	return t, err
}

// CreateTeam inserts a team and returns its id. A duplicate login yields
// ErrLoginExists.
func (r *TeamRepository) CreateTeam(ctx context.Context, t *models.Team) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO teams (team_name, login, password, captain_name, captain_email, captain_phone, members, school, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, t.TeamName, t.Login, t.PasswordHash, t.CaptainName, t.CaptainEmail, t.CaptainPhone, t.Members, t.School, t.City).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrLoginExists
	}
	if err != nil {
		return 0, fmt.Errorf("error creating team: %w", err)
	}
	return id, nil
}

func (r *TeamRepository) TeamByLogin(ctx context.Context, login string) (models.Team, error) {
	t, err := scanTeam(r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE login = $1`, login))
	return t, notFound(err)
}

func (r *TeamRepository) TeamByID(ctx context.Context, id int) (models.Team, error) {
	t, err := scanTeam(r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id))
	return t, notFound(err)
}

// ListTeams returns all teams, newest first.
func (r *TeamRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error fetching teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// ResetTeams deletes every result and every team.
func (r *TeamRepository) ResetTeams(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("error deleting results: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM teams`); err != nil {
		return fmt.Errorf("error deleting teams: %w", err)
	}
	return tx.Commit()
}
