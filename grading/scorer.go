// Package grading scores test submissions and records how each question
// was judged.
package grading

import (
	"context"
	"encoding/json"
	"strconv"
)

// Question is the part of a question definition the scorer needs.
type Question struct {
	ID      int
	Correct Correct
	Points  int
}

// Answers maps a question id (as a string, the way JSON object keys
// arrive) to the submitted answer. Keys that match no question are ignored.
type Answers map[string]Value

// AuditEntry records one question as it was judged at submission time.
type AuditEntry struct {
	QuestionID int   `json:"question_id"`
	Given      Value `json:"given"`
	Correct    Value `json:"correct"`
}

// Result is the outcome of grading one submission.
type Result struct {
	Score int
	Audit []AuditEntry
}

// QuestionProvider returns a test's questions in stored order.
type QuestionProvider interface {
	QuestionsForTest(ctx context.Context, testID int) ([]Question, error)
}

// Grade scores answers against questions. The audit list follows the
// order of questions and has one entry per question.
func Grade(questions []Question, answers Answers) Result {
	res := Result{Audit: make([]AuditEntry, 0, len(questions))}
	for _, q := range questions {
		given := answers[strconv.Itoa(q.ID)]
		res.Score += Award(q.Correct, given, q.Points)
		res.Audit = append(res.Audit, AuditEntry{
			QuestionID: q.ID,
			Given:      given,
			Correct:    q.Correct.Value(),
		})
	}
	return res
}

// Regrade re-derives the points for a stored audit entry.
func Regrade(e AuditEntry, points int) int {
	return Award(ParseCorrect(e.Correct), e.Given, points)
}

// EncodeAudit serializes an audit list for storage.
func EncodeAudit(audit []AuditEntry) (string, error) {
	if audit == nil {
		audit = []AuditEntry{}
	}
	b, err := json.Marshal(audit)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseAudit decodes a stored audit list. An empty blob yields no entries.
func ParseAudit(blob string) ([]AuditEntry, error) {
	if blob == "" {
		return nil, nil
	}
	var audit []AuditEntry
	if err := json.Unmarshal([]byte(blob), &audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// Scorer grades submissions against the questions of a test.
type Scorer struct {
	questions QuestionProvider
}

func NewScorer(questions QuestionProvider) *Scorer {
	return &Scorer{questions: questions}
}

// Score loads the questions of testID and grades answers against them.
// Storage errors are returned unchanged.
func (s *Scorer) Score(ctx context.Context, testID int, answers Answers) (Result, error) {
	questions, err := s.questions.QuestionsForTest(ctx, testID)
	if err != nil {
		return Result{}, err
	}
	return Grade(questions, answers), nil
}
