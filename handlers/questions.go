package handlers

import (
	"fmt"
	"log"
	"net/http"

	"quizbowl_backend/export"
	"quizbowl_backend/grading"
	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	tests     TestStore
	questions QuestionStore
}

func NewQuestionHandler(tests TestStore, questions QuestionStore) *QuestionHandler {
	return &QuestionHandler{tests: tests, questions: questions}
}

func questionFromRequest(req models.QuestionRequest) models.Question {
	q := models.Question{
		Ordinal:    req.Ordinal,
		Text:       req.Text,
		Options:    req.Options,
		Correct:    req.Correct,
		Points:     grading.EffectivePoints(req.Points),
		Lang:       req.Lang,
		CategoryID: req.CategoryID,
	}
	if q.Lang == "" {
		q.Lang = defaultLang
	}
	if !q.Correct.Valid() {
		q.Correct = grading.Text("")
	}
	if q.CategoryID != nil && *q.CategoryID <= 0 {
		q.CategoryID = nil
	}
	return q
}

// GetQuestions lists a test's questions with their answers.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}

	questions, err := h.questions.ListQuestions(c.Request.Context(), testID)
	if err != nil {
		log.Printf("[%s] Error fetching questions: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}

	var req models.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !requireTest(c, h.tests, testID) {
		return
	}

	q := questionFromRequest(req)
	q.TestID = testID
	id, err := h.questions.CreateQuestion(c.Request.Context(), &q)
	if err != nil {
		log.Printf("[%s] Error creating question: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "qid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var req models.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := questionFromRequest(req)
	q.ID = questionID
	if err := h.questions.UpdateQuestion(c.Request.Context(), &q); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		log.Printf("[%s] Error updating question: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteQuestion removes a question; the rest of its test is renumbered.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "qid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	if err := h.questions.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		log.Printf("[%s] Error deleting question: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *QuestionHandler) ExportCSV(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}

	questions, err := h.questions.ListQuestions(c.Request.Context(), testID)
	if err != nil {
		log.Printf("[%s] Error fetching questions: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	sendDocument(c, export.Questions(testID, questions))
}

// ImportCSV appends the questions of an uploaded CSV file to a test.
func (h *QuestionHandler) ImportCSV(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test ID"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file"})
		return
	}
	file, err := header.Open()
	if err != nil {
		log.Printf("[%s] Error opening upload: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	questions, err := export.ParseQuestions(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !requireTest(c, h.tests, testID) {
		return
	}

	if err := h.questions.ImportQuestions(c.Request.Context(), testID, questions); err != nil {
		log.Printf("[%s] Error importing questions: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": len(questions)})
}

// sendDocument writes a rendered CSV document as a download.
func sendDocument(c *gin.Context, doc export.Document) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
