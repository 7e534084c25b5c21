package db

import (
	"context"
	"database/sql"
	"fmt"

	"quizbowl_backend/models"
)

type TestRepository struct {
	db *sql.DB
}

func NewTestRepository(db *sql.DB) *TestRepository {
	return &TestRepository{db: db}
}

const testColumns = `id, title, description, lang, duration_minutes, window_start, window_end, created_at`

func scanTest(row interface{ Scan(...interface{}) error }) (models.Test, error) {
	var (
		t          models.Test
		start, end sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Lang, &t.DurationMinutes, &start, &end, &t.CreatedAt)
	t.WindowStart = timePtr(start)
	t.WindowEnd = timePtr(end)
	return t, err
}

// ListTests returns all tests ordered by id.
func (r *TestRepository) ListTests(ctx context.Context, newestFirst bool) ([]models.Test, error) {
	query := `SELECT ` + testColumns + ` FROM tests ORDER BY id`
	if newestFirst {
		query += ` DESC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	defer rows.Close()

	tests := []models.Test{}
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning test: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

func (r *TestRepository) TestByID(ctx context.Context, id int) (models.Test, error) {
	t, err := scanTest(r.db.QueryRowContext(ctx, `SELECT `+testColumns+` FROM tests WHERE id = $1`, id))
	return t, notFound(err)
}

func (r *TestRepository) CreateTest(ctx context.Context, t *models.Test) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tests (title, description, lang, duration_minutes, window_start, window_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, t.Title, t.Description, t.Lang, t.DurationMinutes, t.WindowStart, t.WindowEnd).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating test: %w", err)
	}
	return id, nil
}

func (r *TestRepository) UpdateTest(ctx context.Context, t *models.Test) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tests SET title = $1, description = $2, lang = $3, duration_minutes = $4,
			window_start = $5, window_end = $6
		WHERE id = $7
	`, t.Title, t.Description, t.Lang, t.DurationMinutes, t.WindowStart, t.WindowEnd, t.ID)
	if err != nil {
		return fmt.Errorf("error updating test: %w", err)
	}
	return expectOne(res)
}

// DeleteTest removes a test together with its questions. Results keep
// their rows with the test reference cleared.
func (r *TestRepository) DeleteTest(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM questions WHERE test_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting questions: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM tests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting test: %w", err)
	}
	return tx.Commit()
}
