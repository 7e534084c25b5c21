package db

import (
	"context"
	"database/sql"
	"fmt"

	"quizbowl_backend/models"
)

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// ResultFilter narrows ListResults. Zero ids match everything.
type ResultFilter struct {
	TeamID int
	TestID int
	// Oldest puts the earliest submissions first.
	Oldest bool
}

// SaveResult stores a graded submission and returns its id.
func (r *ResultRepository) SaveResult(ctx context.Context, res *models.Result) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO results (team_id, test_id, score, answers, taken_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, res.TeamID, res.TestID, res.Score, res.Answers, res.TakenAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error saving result: %w", err)
	}
	return id, nil
}

// ListResults returns results joined with their test title and team name.
func (r *ResultRepository) ListResults(ctx context.Context, f ResultFilter) ([]models.Result, error) {
	query := `
		SELECT r.id, r.team_id, r.test_id, r.score, r.answers, r.taken_at, t.title, tm.team_name
		FROM results r
		LEFT JOIN tests t ON t.id = r.test_id
		LEFT JOIN teams tm ON tm.id = r.team_id
		WHERE 1=1
	`
	args := []interface{}{}

	if f.TeamID != 0 {
		args = append(args, f.TeamID)
		query += fmt.Sprintf(" AND r.team_id = $%d", len(args))
	}
	if f.TestID != 0 {
		args = append(args, f.TestID)
		query += fmt.Sprintf(" AND r.test_id = $%d", len(args))
	}

	if f.Oldest {
		query += " ORDER BY r.taken_at ASC, r.id ASC"
	} else {
		query += " ORDER BY r.taken_at DESC, r.id DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching results: %w", err)
	}
	defer rows.Close()

	results := []models.Result{}
	for rows.Next() {
		var (
			res             models.Result
			teamID, testID  sql.NullInt64
			title, teamName sql.NullString
		)
		if err := rows.Scan(&res.ID, &teamID, &testID, &res.Score, &res.Answers, &res.TakenAt, &title, &teamName); err != nil {
			return nil, fmt.Errorf("error scanning result: %w", err)
		}
		res.TeamID = int(teamID.Int64)
		res.TestID = int(testID.Int64)
		res.TestTitle = title.String
		res.TeamName = teamName.String
		results = append(results, res)
	}
	return results, rows.Err()
}
