package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"quizbowl_backend/grading"
	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

// Grader scores a team's answers for a test.
type Grader interface {
	Score(ctx context.Context, testID int, answers grading.Answers) (grading.Result, error)
}

type SubmissionHandler struct {
	teams   TeamStore
	tests   TestStore
	grader  Grader
	results ResultStore
	now     func() time.Time
}

func NewSubmissionHandler(teams TeamStore, tests TestStore, grader Grader, results ResultStore) *SubmissionHandler {
	return &SubmissionHandler{
		teams:   teams,
		tests:   tests,
		grader:  grader,
		results: results,
		now:     time.Now,
	}
}

// Submit grades a submission, stores it with its audit and returns the score.
// A token whose team no longer exists, for example after a reset, gets a
// 404 and nothing is stored.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}
	ctx := c.Request.Context()

	teamID := c.GetInt(middleware.TeamIDKey)
	if _, err := h.teams.TeamByID(ctx, teamID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		log.Printf("[%s] Error fetching team: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team"})
		return
	}

	if !requireTest(c, h.tests, testID) {
		return
	}

	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.grader.Score(ctx, testID, req.Answers)
	if err != nil {
		log.Printf("[%s] Error grading submission: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grade submission"})
		return
	}

	audit, err := grading.EncodeAudit(result.Audit)
	if err != nil {
		log.Printf("[%s] Error encoding audit: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save result"})
		return
	}

	record := models.Result{
		TeamID:  teamID,
		TestID:  testID,
		Score:   result.Score,
		Answers: audit,
		TakenAt: h.now().UTC(),
	}
	resultID, err := h.results.SaveResult(ctx, &record)
	if err != nil {
		log.Printf("[%s] Error saving result: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "score": result.Score, "result_id": resultID})
}
