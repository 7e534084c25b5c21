package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"quizbowl_backend/db"
	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

// The handlers depend on these narrow views of the repositories in db.

type TeamStore interface {
	CreateTeam(ctx context.Context, t *models.Team) (int, error)
	TeamByLogin(ctx context.Context, login string) (models.Team, error)
	TeamByID(ctx context.Context, id int) (models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ResetTeams(ctx context.Context) error
}

type TestStore interface {
	ListTests(ctx context.Context, newestFirst bool) ([]models.Test, error)
	TestByID(ctx context.Context, id int) (models.Test, error)
	CreateTest(ctx context.Context, t *models.Test) (int, error)
	UpdateTest(ctx context.Context, t *models.Test) error
	DeleteTest(ctx context.Context, id int) error
}

type QuestionStore interface {
	ListQuestions(ctx context.Context, testID int) ([]models.Question, error)
	CreateQuestion(ctx context.Context, q *models.Question) (int, error)
	ImportQuestions(ctx context.Context, testID int, questions []models.Question) error
	UpdateQuestion(ctx context.Context, q *models.Question) error
	DeleteQuestion(ctx context.Context, id int) error
}

type ResultStore interface {
	SaveResult(ctx context.Context, res *models.Result) (int, error)
	ListResults(ctx context.Context, f db.ResultFilter) ([]models.Result, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (int, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id int) error
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, s *models.Settings) error
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireTest answers 404 and returns false when the test does not exist.
func requireTest(c *gin.Context, tests TestStore, testID int) bool {
	if _, err := tests.TestByID(c.Request.Context(), testID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
			return false
		}
		log.Printf("[%s] Error fetching test: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch test"})
		return false
	}
	return true
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
