package handlers

import (
	"log"
	"net/http"

	"quizbowl_backend/db"
	"quizbowl_backend/export"
	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrative views of teams and results.
type AdminHandler struct {
	teams     TeamStore
	results   ResultStore
	questions QuestionStore
	exporter  export.Exporter
}

func NewAdminHandler(teams TeamStore, results ResultStore, questions QuestionStore, exporter export.Exporter) *AdminHandler {
	return &AdminHandler{
		teams:     teams,
		results:   results,
		questions: questions,
		exporter:  exporter,
	}
}

func (h *AdminHandler) GetTeams(c *gin.Context) {
	teams, err := h.teams.ListTeams(c.Request.Context())
	if err != nil {
		log.Printf("[%s] Error fetching teams: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	for i := range teams {
		teams[i].Login = ""
		teams[i].CaptainPhone = ""
		teams[i].Members = ""
	}
	c.JSON(http.StatusOK, teams)
}

func (h *AdminHandler) ExportTeams(c *gin.Context) {
	teams, err := h.teams.ListTeams(c.Request.Context())
	if err != nil {
		log.Printf("[%s] Error fetching teams: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export teams"})
		return
	}
	sendDocument(c, export.Teams(teams))
}

// ResetTeams wipes every team and every result.
func (h *AdminHandler) ResetTeams(c *gin.Context) {
	if err := h.teams.ResetTeams(c.Request.Context()); err != nil {
		log.Printf("[%s] Error resetting teams: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset teams"})
		return
	}
	log.Printf("[%s] All teams and results were deleted", middleware.RequestIDFrom(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) GetResults(c *gin.Context) {
	results, err := h.results.ListResults(c.Request.Context(), db.ResultFilter{})
	if err != nil {
		log.Printf("[%s] Error fetching results: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch results"})
		return
	}
	c.JSON(http.StatusOK, results)
}

// ExportResults renders every submission, oldest first, as a spreadsheet.
// A test whose questions cannot be loaded is exported as if it had none.
func (h *AdminHandler) ExportResults(c *gin.Context) {
	ctx := c.Request.Context()

	results, err := h.results.ListResults(ctx, db.ResultFilter{Oldest: true})
	if err != nil {
		log.Printf("[%s] Error fetching results: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export results"})
		return
	}

	questionsByTest := make(map[int][]models.Question)
	for _, r := range results {
		if r.TestID == 0 {
			continue
		}
		if _, seen := questionsByTest[r.TestID]; seen {
			continue
		}
		questions, err := h.questions.ListQuestions(ctx, r.TestID)
		if err != nil {
			log.Printf("[%s] Error fetching questions for test %d: %v", middleware.RequestIDFrom(c), r.TestID, err)
			questions = []models.Question{}
		}
		questionsByTest[r.TestID] = questions
	}

	sendDocument(c, h.exporter.Results(results, questionsByTest))
}
