package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizbowl_backend/grading"
	"quizbowl_backend/models"
)

const questionsHeader = "ordinal,text,options,correct,points,category_id"

// Questions renders a test's question bank in the import/export layout.
// Text-like columns are quoted, numeric ones are not.
func Questions(testID int, questions []models.Question) Document {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		options := ""
		if q.Options != nil {
			b, _ := json.Marshal(q.Options)
			options = string(b)
		}
		category := ""
		if q.CategoryID != nil {
			category = strconv.Itoa(*q.CategoryID)
		}
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(q.Ordinal),
			Quote(q.Text),
			Quote(options),
			Quote(q.Correct.String()),
			strconv.Itoa(grading.EffectivePoints(q.Points)),
			category,
		}, ","))
	}

	return Document{
		Filename:    fmt.Sprintf("test_%d_questions.csv", testID),
		ContentType: ContentType,
		Content:     []byte(questionsHeader + "\n" + strings.Join(lines, "\n")),
	}
}

// ParseQuestions reads a question bank CSV. Columns are located by header
// name and may appear in any order; missing columns read as empty.
// Options are either a JSON array or a "|"-separated list.
func ParseQuestions(r io.Reader) ([]models.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, BOM))] = i
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var questions []models.Question
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		options, err := parseOptions(field(record, "options"))
		if err != nil {
			return nil, fmt.Errorf("line %d: options: %w", line, err)
		}
		ordinal, _ := strconv.Atoi(strings.TrimSpace(field(record, "ordinal")))
		points, _ := strconv.Atoi(strings.TrimSpace(field(record, "points")))

		q := models.Question{
			Ordinal: ordinal,
			Text:    field(record, "text"),
			Options: options,
			Correct: grading.Text(field(record, "correct")),
			Points:  grading.EffectivePoints(points),
			Lang:    "ru",
		}
		if id, err := strconv.Atoi(strings.TrimSpace(field(record, "category_id"))); err == nil {
			q.CategoryID = &id
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func parseOptions(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var options []string
		if err := json.Unmarshal([]byte(trimmed), &options); err != nil {
			return nil, err
		}
		return options, nil
	}
	var options []string
	for _, o := range strings.Split(trimmed, "|") {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, o)
		}
	}
	return options, nil
}
