package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbowl_backend/grading"
	"quizbowl_backend/models"
)

func lines(t *testing.T, doc Document) []string {
	t.Helper()
	content := string(doc.Content)
	require.True(t, strings.HasPrefix(content, BOM), "document must start with a BOM")
	return strings.Split(strings.TrimPrefix(content, BOM), "\n")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"He said ""hi"""`, Quote(`He said "hi"`))
	assert.Equal(t, `""`, Quote(""))
	assert.Equal(t, `"a","","b"`, Row("a", "", "b"))
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "morning", at: time.Date(2025, 12, 5, 3, 4, 5, 0, time.UTC), want: "2025/12/05 9:04:05 AM GMT+6"},
		{name: "noon", at: time.Date(2025, 12, 5, 6, 0, 0, 0, time.UTC), want: "2025/12/05 12:00:00 PM GMT+6"},
		{name: "midnight", at: time.Date(2025, 12, 4, 18, 0, 9, 0, time.UTC), want: "2025/12/05 12:00:09 AM GMT+6"},
		{name: "evening", at: time.Date(2025, 1, 1, 13, 30, 0, 0, time.UTC), want: "2025/01/01 7:30:00 PM GMT+6"},
		{name: "source offset ignored", at: time.Date(2025, 1, 1, 15, 30, 0, 0, time.FixedZone("CET", 3600)), want: "2025/01/01 8:30:00 PM GMT+6"},
		{name: "zero", at: time.Time{}, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatTimestamp(tc.at))
		})
	}
}

func audit(t *testing.T, entries ...grading.AuditEntry) string {
	t.Helper()
	blob, err := grading.EncodeAudit(entries)
	require.NoError(t, err)
	return blob
}

func TestResultsNoRows(t *testing.T) {
	doc := Exporter{}.Results(nil, nil)

	assert.Equal(t, ResultsFilename, doc.Filename)
	assert.Equal(t, ContentType, doc.ContentType)
	assert.Equal(t, BOM+`"Отметка времени","Всего баллов"`+"\n", string(doc.Content))
}

func TestResultsPadsShorterTests(t *testing.T) {
	questions := map[int][]models.Question{
		1: {
			{ID: 11, Ordinal: 1, Points: 2},
			{ID: 12, Ordinal: 2, Points: 1},
			{ID: 13, Ordinal: 3, Points: 1},
		},
		2: {
			{ID: 21, Ordinal: 1, Points: 1},
			{ID: 22, Ordinal: 2, Points: 3},
		},
	}
	results := []models.Result{
		{
			ID: 1, TestID: 2, Score: 3,
			TakenAt: time.Date(2025, 12, 5, 6, 7, 8, 0, time.UTC),
			Answers: audit(t,
				grading.AuditEntry{QuestionID: 21, Given: grading.Text("1"), Correct: grading.Text("0")},
				grading.AuditEntry{QuestionID: 22, Given: grading.Text(" Osh"), Correct: grading.Text("osh")},
			),
		},
		{
			ID: 2, TestID: 1, Score: 2,
			TakenAt: time.Date(2025, 12, 5, 7, 0, 0, 0, time.UTC),
			Answers: audit(t,
				grading.AuditEntry{QuestionID: 11, Given: grading.Text("0"), Correct: grading.Text("0")},
			),
		},
	}

	got := lines(t, Exporter{}.Results(results, questions))
	require.Len(t, got, 3)

	header := strings.Split(got[0], ",")
	assert.Len(t, header, 3*3+2)
	assert.Equal(t, `"3 [Отзыв]"`, header[len(header)-1])

	assert.Equal(t,
		`"2025/12/05 12:07:08 PM GMT+6","3.00 / 4","1","0.00 / 1",""," Osh","3.00 / 3","","","",""`,
		got[1])
	assert.Equal(t,
		`"2025/12/05 1:00:00 PM GMT+6","2.00 / 4","0","2.00 / 2","","","0.00 / 1","","","0.00 / 1",""`,
		got[2])
}

func TestResultsShorterTestLeavesTrailingSlotsBlank(t *testing.T) {
	questions := map[int][]models.Question{
		5: {{ID: 1, Points: 1}, {ID: 2, Points: 1}},
		6: {{ID: 3, Points: 1}, {ID: 4, Points: 1}, {ID: 5, Points: 1}},
	}
	results := []models.Result{
		{
			ID: 9, TestID: 5, Score: 2,
			TakenAt: time.Date(2025, 12, 15, 4, 0, 0, 0, time.UTC),
			Answers: audit(t,
				grading.AuditEntry{QuestionID: 1, Given: grading.Text("2"), Correct: grading.Text("2")},
				grading.AuditEntry{QuestionID: 2, Given: grading.Text("Naryn"), Correct: grading.Text("naryn")},
			),
		},
		{ID: 10, TestID: 6, Answers: "[]"},
	}

	got := lines(t, Exporter{}.Results(results, questions))
	require.Len(t, got, 3)
	assert.Len(t, strings.Split(got[0], ","), 3*3+2)
	assert.Equal(t, `"2025/12/15 10:00:00 AM GMT+6","2.00 / 2","2","1.00 / 1","","Naryn","1.00 / 1","","","",""`, got[1])
	assert.Equal(t, `"","0.00 / 3","","0.00 / 1","","","0.00 / 1","","","0.00 / 1",""`, got[2])
}

func TestResultsCorruptAuditDegrades(t *testing.T) {
	questions := map[int][]models.Question{1: {{ID: 1, Points: 2}}}
	results := []models.Result{
		{ID: 1, TestID: 1, Score: 2, Answers: "{broken"},
		{ID: 2, TestID: 1, Score: 2, Answers: audit(t, grading.AuditEntry{QuestionID: 1, Given: grading.Text("x"), Correct: grading.Text("X")})},
	}

	got := lines(t, Exporter{}.Results(results, questions))
	require.Len(t, got, 3)
	assert.Equal(t, `"","2.00 / 2","","0.00 / 2",""`, got[1])
	assert.Equal(t, `"","2.00 / 2","x","2.00 / 2",""`, got[2])
}

func TestResultsTotalPolicy(t *testing.T) {
	questions := map[int][]models.Question{1: {{ID: 1, Points: 5}}}
	// stored before the correct answer was edited from "Osh" to "Naryn"
	results := []models.Result{{
		ID: 1, TestID: 1, Score: 5,
		Answers: audit(t, grading.AuditEntry{QuestionID: 1, Given: grading.Text("Osh"), Correct: grading.Text("Naryn")}),
	}}

	record := lines(t, Exporter{TotalPolicy: TotalFromRecord}.Results(results, questions))
	assert.Equal(t, `"","5.00 / 5","Osh","0.00 / 5",""`, record[1])

	regraded := lines(t, Exporter{TotalPolicy: TotalRegraded}.Results(results, questions))
	assert.Equal(t, `"","0.00 / 5","Osh","0.00 / 5",""`, regraded[1])
}

func TestParseTotalPolicy(t *testing.T) {
	p, err := ParseTotalPolicy("")
	require.NoError(t, err)
	assert.Equal(t, TotalFromRecord, p)

	p, err = ParseTotalPolicy("regrade")
	require.NoError(t, err)
	assert.Equal(t, TotalRegraded, p)

	_, err = ParseTotalPolicy("latest")
	assert.Error(t, err)
}

func TestTeams(t *testing.T) {
	teams := []models.Team{{
		ID: 4, TeamName: `Team "A"`, Login: "team-a", CaptainName: "Aibek",
		CaptainEmail: "a@example.kg", Members: `["Aibek","Dana"]`, School: "No. 5", City: "Osh",
		CreatedAt: time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC),
	}}

	doc := Teams(teams)
	got := lines(t, doc)

	assert.Equal(t, TeamsFilename, doc.Filename)
	require.Len(t, got, 2)
	assert.Equal(t, `"4","Team ""A""","team-a","Aibek","a@example.kg","","[""Aibek"",""Dana""]","No. 5","Osh","2025-10-01 08:00:00"`, got[1])
}

func TestQuestionsRoundTrip(t *testing.T) {
	category := 3
	questions := []models.Question{
		{Ordinal: 1, Text: `Capital of "KG"?`, Options: []string{"Bishkek", "Osh"}, Correct: grading.Text("0"), Points: 2, CategoryID: &category},
		{Ordinal: 2, Text: "Largest lake", Correct: grading.Text("Issyk-Kul"), Points: 1},
	}

	doc := Questions(7, questions)
	assert.Equal(t, "test_7_questions.csv", doc.Filename)
	assert.Equal(t,
		"ordinal,text,options,correct,points,category_id\n"+
			`1,"Capital of ""KG""?","[""Bishkek"",""Osh""]","0",2,3`+"\n"+
			`2,"Largest lake","","Issyk-Kul",1,`,
		string(doc.Content))

	parsed, err := ParseQuestions(strings.NewReader(string(doc.Content)))
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, questions[0].Text, parsed[0].Text)
	assert.Equal(t, questions[0].Options, parsed[0].Options)
	assert.Equal(t, "0", parsed[0].Correct.String())
	assert.Equal(t, 2, parsed[0].Points)
	require.NotNil(t, parsed[0].CategoryID)
	assert.Equal(t, 3, *parsed[0].CategoryID)
	assert.Nil(t, parsed[1].Options)
	assert.Nil(t, parsed[1].CategoryID)
	assert.Equal(t, "ru", parsed[1].Lang)
}

func TestParseQuestionsPipeOptions(t *testing.T) {
	input := "text,correct,options\n" +
		"\"2+2\",1,3 | 4 || 5\n"

	parsed, err := ParseQuestions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, []string{"3", "4", "5"}, parsed[0].Options)
	assert.Equal(t, 1, parsed[0].Points)
	assert.Zero(t, parsed[0].Ordinal)
}

func TestParseQuestionsBadOptions(t *testing.T) {
	_, err := ParseQuestions(strings.NewReader("text,options\nq,\"[broken\"\n"))
	assert.Error(t, err)
}
