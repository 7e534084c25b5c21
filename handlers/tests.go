package handlers

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"quizbowl_backend/export"
	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultLang     = "ru"
	defaultDuration = 30
)

var (
	windowSeparator = regexp.MustCompile(`(?i)\s*до\s*`)
	windowBound     = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})[- ](\d{1,2}):(\d{2})$`)
)

// parseWindowRange reads "DD.MM.YYYY-HH:MM до DD.MM.YYYY-HH:MM" in the
// competition's time zone. A bound that does not parse comes back nil.
func parseWindowRange(s string) (start, end *time.Time) {
	parts := windowSeparator.Split(s, -1)
	if len(parts) != 2 {
		return nil, nil
	}
	return parseWindowBound(parts[0]), parseWindowBound(parts[1])
}

func parseWindowBound(s string) *time.Time {
	m := windowBound.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n := make([]int, 5)
	for i := range n {
		n[i], _ = strconv.Atoi(m[i+1])
	}
	day, month, year, hour, minute := n[0], n[1], n[2], n[3], n[4]
	if month < 1 || month > 12 || hour > 23 || minute > 59 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, export.Zone)
	// reject dates that time.Date normalized, such as 31.02
	if t.Day() != day || t.Month() != time.Month(month) {
		return nil
	}
	t = t.UTC()
	return &t
}

type TestHandler struct {
	tests     TestStore
	questions QuestionStore
}

func NewTestHandler(tests TestStore, questions QuestionStore) *TestHandler {
	return &TestHandler{tests: tests, questions: questions}
}

// GetTests lists tests for teams, in creation order.
func (h *TestHandler) GetTests(c *gin.Context) {
	tests, err := h.tests.ListTests(c.Request.Context(), false)
	if err != nil {
		log.Printf("[%s] Error fetching tests: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tests"})
		return
	}
	c.JSON(http.StatusOK, tests)
}

// GetTestByID returns the questions of a test without their answers.
func (h *TestHandler) GetTestByID(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}

	if !requireTest(c, h.tests, testID) {
		return
	}

	questions, err := h.questions.ListQuestions(c.Request.Context(), testID)
	if err != nil {
		log.Printf("[%s] Error fetching questions: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	public := make([]models.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		public = append(public, models.PublicQuestion{
			ID:      q.ID,
			Ordinal: q.Ordinal,
			Text:    q.Text,
			Options: options,
			Points:  q.Points,
		})
	}
	c.JSON(http.StatusOK, public)
}

// AdminGetTests lists every test, newest first.
func (h *TestHandler) AdminGetTests(c *gin.Context) {
	tests, err := h.tests.ListTests(c.Request.Context(), true)
	if err != nil {
		log.Printf("[%s] Error fetching tests: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tests"})
		return
	}
	c.JSON(http.StatusOK, tests)
}

func testFromRequest(req models.TestRequest) models.Test {
	t := models.Test{
		Title:           req.Title,
		Description:     req.Description,
		Lang:            req.Lang,
		DurationMinutes: req.DurationMinutes,
		WindowStart:     req.WindowStart,
		WindowEnd:       req.WindowEnd,
	}
	if t.Lang == "" {
		t.Lang = defaultLang
	}
	if t.DurationMinutes <= 0 {
		t.DurationMinutes = defaultDuration
	}
	start, end := parseWindowRange(req.WindowRange)
	if start != nil {
		t.WindowStart = start
	}
	if end != nil {
		t.WindowEnd = end
	}
	return t
}

func (h *TestHandler) CreateTest(c *gin.Context) {
	var req models.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := testFromRequest(req)
	id, err := h.tests.CreateTest(c.Request.Context(), &t)
	if err != nil {
		log.Printf("[%s] Error creating test: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create test"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

func (h *TestHandler) UpdateTest(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}

	var req models.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := testFromRequest(req)
	t.ID = testID
	if err := h.tests.UpdateTest(c.Request.Context(), &t); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
			return
		}
		log.Printf("[%s] Error updating test: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update test"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *TestHandler) DeleteTest(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}

	if err := h.tests.DeleteTest(c.Request.Context(), testID); err != nil {
		log.Printf("[%s] Error deleting test: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete test"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
