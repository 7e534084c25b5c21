package export

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"quizbowl_backend/grading"
	"quizbowl_backend/models"
)

const ResultsFilename = "results_export.csv"

// TotalPolicy selects what the total-score cell reports.
type TotalPolicy int

const (
	// TotalFromRecord reports the score stored at submission time.
	TotalFromRecord TotalPolicy = iota
	// TotalRegraded reports the sum of the re-graded per-question awards.
	TotalRegraded
)

// ParseTotalPolicy maps "record" or "regrade" to a TotalPolicy.
func ParseTotalPolicy(s string) (TotalPolicy, error) {
	switch s {
	case "", "record":
		return TotalFromRecord, nil
	case "regrade":
		return TotalRegraded, nil
	default:
		return TotalFromRecord, fmt.Errorf("unknown total policy %q", s)
	}
}

// Exporter renders stored results in the Google Forms response layout.
//
// Per-question point cells are always re-graded from the audit entry's
// stored given/correct pair, so changes to the grading rules show up in
// exports of old results. The total cell follows TotalPolicy.
type Exporter struct {
	TotalPolicy TotalPolicy
}

// FormatTimestamp renders t as "YYYY/MM/DD H:MM:SS AM GMT+6" in the fixed
// competition offset. A zero time renders as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Zone).Format("2006/01/02 3:04:05 PM") + " GMT+" + strconv.Itoa(TimezoneOffsetHours)
}

func pointsCell(awarded, max int) string {
	return fmt.Sprintf("%.2f / %d", float64(awarded), max)
}

func resultsHeader(slots int) string {
	cells := []string{"Отметка времени", "Всего баллов"}
	for i := 1; i <= slots; i++ {
		n := strconv.Itoa(i)
		cells = append(cells, n, n+" [Количество баллов]", n+" [Отзыв]")
	}
	return Row(cells...)
}

// Results renders results in the order given. questionsByTest holds each
// referenced test's questions in export column order; the number of
// question slots is the largest question count among referenced tests.
func (e Exporter) Results(results []models.Result, questionsByTest map[int][]models.Question) Document {
	slots := 0
	for _, r := range results {
		if n := len(questionsByTest[r.TestID]); n > slots {
			slots = n
		}
	}

	rows := make([]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, e.resultRow(r, questionsByTest[r.TestID], slots))
	}

	return Document{
		Filename:    ResultsFilename,
		ContentType: ContentType,
		Content:     spreadsheet(resultsHeader(slots), rows),
	}
}

func (e Exporter) resultRow(r models.Result, questions []models.Question, slots int) string {
	audit, err := grading.ParseAudit(r.Answers)
	if err != nil {
		log.Printf("Error parsing answers for result %d: %v", r.ID, err)
		audit = nil
	}
	byQuestion := make(map[int]grading.AuditEntry, len(audit))
	for _, entry := range audit {
		if _, seen := byQuestion[entry.QuestionID]; !seen {
			byQuestion[entry.QuestionID] = entry
		}
	}

	maxScore, regraded := 0, 0
	cells := make([]string, 0, 2+3*slots)
	cells = append(cells, FormatTimestamp(r.TakenAt), "")
	for i := 0; i < slots; i++ {
		if i >= len(questions) {
			cells = append(cells, "", "", "")
			continue
		}
		q := questions[i]
		points := grading.EffectivePoints(q.Points)
		entry := byQuestion[q.ID]
		awarded := grading.Regrade(entry, points)

		maxScore += points
		regraded += awarded
		cells = append(cells, entry.Given.String(), pointsCell(awarded, points), "")
	}

	total := r.Score
	if e.TotalPolicy == TotalRegraded {
		total = regraded
	}
	cells[1] = pointsCell(total, maxScore)

	return Row(cells...)
}
