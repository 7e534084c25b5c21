package db

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbowl_backend/grading"
	"quizbowl_backend/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		database.Close()
	})
	return database, mock
}

func TestCreateTeamDuplicateLogin(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO teams")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := NewTeamRepository(database).CreateTeam(context.Background(), &models.Team{Login: "taken", Members: "[]"})

	assert.ErrorIs(t, err, ErrLoginExists)
}

func TestTeamByLoginNotFound(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM teams WHERE login = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewTeamRepository(database).TeamByLogin(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionsForTestClassifiesCorrect(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, correct, points FROM questions WHERE test_id = $1 ORDER BY id")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "correct", "points"}).
			AddRow(1, "0", 2).
			AddRow(2, "Bishkek", 1).
			AddRow(3, nil, 1))

	questions, err := NewQuestionRepository(database).QuestionsForTest(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, grading.McqIndex, questions[0].Correct.Kind)
	assert.Equal(t, 2, questions[0].Points)
	assert.Equal(t, grading.FreeText, questions[1].Correct.Kind)
	assert.Equal(t, grading.Undefined, questions[2].Correct.Kind)
}

func TestListQuestionsDecodesOptions(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY ordinal, id")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "test_id", "ordinal", "text", "options", "correct", "points", "lang", "category_id"}).
			AddRow(1, 4, 1, "Capital?", `["Bishkek","Osh"]`, "0", 1, "ru", 2).
			AddRow(2, 4, 2, "Lake?", nil, "Issyk-Kul", 1, "ky", nil))

	questions, err := NewQuestionRepository(database).ListQuestions(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, []string{"Bishkek", "Osh"}, questions[0].Options)
	require.NotNil(t, questions[0].CategoryID)
	assert.Equal(t, 2, *questions[0].CategoryID)
	assert.Nil(t, questions[1].Options)
	assert.Nil(t, questions[1].CategoryID)
	assert.Equal(t, "Issyk-Kul", questions[1].Correct.String())
}

func TestDeleteQuestionRenumbers(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM questions WHERE id = $1 RETURNING test_id")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"test_id"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("ROW_NUMBER() OVER (ORDER BY ordinal, id)")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, NewQuestionRepository(database).DeleteQuestion(context.Background(), 5))
}

func TestDeleteQuestionNotFound(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM questions WHERE id = $1 RETURNING test_id")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"test_id"}))
	mock.ExpectRollback()

	err := NewQuestionRepository(database).DeleteQuestion(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveResult(t *testing.T) {
	database, mock := newMock(t)
	takenAt := time.Date(2025, 12, 5, 6, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO results (team_id, test_id, score, answers, taken_at)")).
		WithArgs(7, 1, 3, `[]`, takenAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := NewResultRepository(database).SaveResult(context.Background(), &models.Result{
		TeamID: 7, TestID: 1, Score: 3, Answers: `[]`, TakenAt: takenAt,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestListResultsFilters(t *testing.T) {
	database, mock := newMock(t)
	takenAt := time.Date(2025, 12, 5, 6, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("AND r.team_id = $1 AND r.test_id = $2 ORDER BY r.taken_at ASC, r.id ASC")).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "test_id", "score", "answers", "taken_at", "title", "team_name"}).
			AddRow(1, 7, 1, 3, `[]`, takenAt, "Demo Test", "Snow Leopards").
			AddRow(2, 7, nil, 0, `[]`, takenAt, nil, "Snow Leopards"))

	results, err := NewResultRepository(database).ListResults(context.Background(), ResultFilter{TeamID: 7, TestID: 1, Oldest: true})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Demo Test", results[0].TestTitle)
	assert.Equal(t, "Snow Leopards", results[0].TeamName)
	assert.Zero(t, results[1].TestID)
	assert.Empty(t, results[1].TestTitle)
}

func TestUpdateTestNotFound(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tests SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewTestRepository(database).UpdateTest(context.Background(), &models.Test{ID: 3, Lang: "ru", DurationMinutes: 30})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSettingsMissingRow(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM settings WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"badge1_ru"}))

	s, err := NewSettingsRepository(database).GetSettings(context.Background())

	require.NoError(t, err)
	assert.Nil(t, s.Badge1RU)
}

func TestLoadSeedData(t *testing.T) {
	data, err := LoadSeedData()
	require.NoError(t, err)

	assert.Len(t, data.Categories, 5)
	require.Len(t, data.Tests, 1)
	require.Len(t, data.Tests[0].Questions, 3)
	assert.Equal(t, "0", data.Tests[0].Questions[0].Correct)
	assert.Equal(t, []string{"3", "4", "5", "22"}, data.Tests[0].Questions[1].Options)
	require.NotNil(t, data.Settings.Day1Date)
	assert.Equal(t, "2025-12-05", *data.Settings.Day1Date)
}

func TestSeedSkipsDemoWhenTestsExist(t *testing.T) {
	database, mock := newMock(t)
	data, err := LoadSeedData()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM tests)")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, Seed(context.Background(), database, data, true))
}
