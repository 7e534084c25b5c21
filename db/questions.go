package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"quizbowl_backend/grading"
	"quizbowl_backend/models"
)

type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, test_id, ordinal, text, options, correct, points, lang, category_id`

func scanQuestion(row interface{ Scan(...interface{}) error }) (models.Question, error) {
	var (
		q        models.Question
		options  sql.NullString
		category sql.NullInt64
	)
	if err := row.Scan(&q.ID, &q.TestID, &q.Ordinal, &q.Text, &options, &q.Correct, &q.Points, &q.Lang, &category); err != nil {
		return q, err
	}
	q.CategoryID = intPtr(category)
	if options.Valid && options.String != "" {
		if err := json.Unmarshal([]byte(options.String), &q.Options); err != nil {
			log.Printf("Error decoding options of question %d: %v", q.ID, err)
		}
	}
	return q, nil
}

func encodeOptions(options []string) (sql.NullString, error) {
	if options == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(options)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// ListQuestions returns a test's questions in display order.
func (r *QuestionRepository) ListQuestions(ctx context.Context, testID int) ([]models.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE test_id = $1 ORDER BY ordinal, id`, testID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// QuestionsForTest returns a test's questions in stored order with their
// correct answers classified for grading.
func (r *QuestionRepository) QuestionsForTest(ctx context.Context, testID int) ([]grading.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, correct, points FROM questions WHERE test_id = $1 ORDER BY id`, testID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	defer rows.Close()

	var questions []grading.Question
	for rows.Next() {
		var (
			q       grading.Question
			correct grading.Value
		)
		if err := rows.Scan(&q.ID, &correct, &q.Points); err != nil {
			return nil, fmt.Errorf("error scanning question: %w", err)
		}
		q.Correct = grading.ParseCorrect(correct)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

type execQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func insertQuestion(ctx context.Context, db execQuerier, q *models.Question) (int, error) {
	options, err := encodeOptions(q.Options)
	if err != nil {
		return 0, err
	}
	var id int
	err = db.QueryRowContext(ctx, `
		INSERT INTO questions (test_id, ordinal, text, options, correct, points, lang, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, q.TestID, q.Ordinal, q.Text, options, q.Correct, q.Points, q.Lang, q.CategoryID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating question: %w", err)
	}
	return id, nil
}

func (r *QuestionRepository) CreateQuestion(ctx context.Context, q *models.Question) (int, error) {
	return insertQuestion(ctx, r.db, q)
}

// ImportQuestions appends questions to a test in one transaction.
func (r *QuestionRepository) ImportQuestions(ctx context.Context, testID int, questions []models.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range questions {
		questions[i].TestID = testID
		if _, err = insertQuestion(ctx, tx, &questions[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *QuestionRepository) UpdateQuestion(ctx context.Context, q *models.Question) error {
	options, err := encodeOptions(q.Options)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE questions SET ordinal = $1, text = $2, options = $3, correct = $4, points = $5, category_id = $6
		WHERE id = $7
	`, q.Ordinal, q.Text, options, q.Correct, q.Points, q.CategoryID, q.ID)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}
	return expectOne(res)
}

// DeleteQuestion removes a question and renumbers the remaining questions
// of its test to consecutive ordinals starting at 1.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var testID int
	err = tx.QueryRowContext(ctx, `DELETE FROM questions WHERE id = $1 RETURNING test_id`, id).Scan(&testID)
	if err != nil {
		return notFound(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE questions q SET ordinal = packed.rn
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY ordinal, id) AS rn
			FROM questions WHERE test_id = $1
		) packed
		WHERE q.id = packed.id
	`, testID)
	if err != nil {
		return fmt.Errorf("error renumbering questions: %w", err)
	}
	return tx.Commit()
}
