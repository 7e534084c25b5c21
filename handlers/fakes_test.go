package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"quizbowl_backend/db"
	"quizbowl_backend/grading"
	"quizbowl_backend/models"
)

var (
	errBoom = errors.New("boom")

	// errForeignKey stands in for the database rejecting a dangling reference.
	errForeignKey = errors.New("violates foreign key constraint")
)

// memStore keeps everything in memory and satisfies every store interface.
type memStore struct {
	mu        sync.Mutex
	teams     []models.Team
	tests     map[int]models.Test
	questions []models.Question
	results   []models.Result
	listErr   map[int]error
	nextID    int
}

func newMemStore() *memStore {
	return &memStore{tests: map[int]models.Test{}, listErr: map[int]error{}}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateTeam(_ context.Context, t *models.Team) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.teams {
		if existing.Login == t.Login {
			return 0, db.ErrLoginExists
		}
	}
	t.ID = m.id()
	m.teams = append(m.teams, *t)
	return t.ID, nil
}

func (m *memStore) TeamByLogin(_ context.Context, login string) (models.Team, error) {
	for _, t := range m.teams {
		if t.Login == login {
			return t, nil
		}
	}
	return models.Team{}, db.ErrNotFound
}

func (m *memStore) TeamByID(_ context.Context, id int) (models.Team, error) {
	for _, t := range m.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Team{}, db.ErrNotFound
}

func (m *memStore) ListTeams(context.Context) ([]models.Team, error) {
	return append([]models.Team{}, m.teams...), nil
}

func (m *memStore) ResetTeams(context.Context) error {
	m.teams, m.results = nil, nil
	return nil
}

func (m *memStore) ListTests(_ context.Context, newestFirst bool) ([]models.Test, error) {
	tests := []models.Test{}
	for _, t := range m.tests {
		tests = append(tests, t)
	}
	sort.Slice(tests, func(i, j int) bool {
		if newestFirst {
			return tests[i].ID > tests[j].ID
		}
		return tests[i].ID < tests[j].ID
	})
	return tests, nil
}

func (m *memStore) TestByID(_ context.Context, id int) (models.Test, error) {
	t, ok := m.tests[id]
	if !ok {
		return models.Test{}, db.ErrNotFound
	}
	return t, nil
}

func (m *memStore) CreateTest(_ context.Context, t *models.Test) (int, error) {
	t.ID = m.id()
	m.tests[t.ID] = *t
	return t.ID, nil
}

func (m *memStore) UpdateTest(_ context.Context, t *models.Test) error {
	if _, ok := m.tests[t.ID]; !ok {
		return db.ErrNotFound
	}
	m.tests[t.ID] = *t
	return nil
}

func (m *memStore) DeleteTest(_ context.Context, id int) error {
	delete(m.tests, id)
	return nil
}

func (m *memStore) ListQuestions(_ context.Context, testID int) ([]models.Question, error) {
	if err := m.listErr[testID]; err != nil {
		return nil, err
	}
	questions := []models.Question{}
	for _, q := range m.questions {
		if q.TestID == testID {
			questions = append(questions, q)
		}
	}
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Ordinal < questions[j].Ordinal })
	return questions, nil
}

func (m *memStore) QuestionsForTest(_ context.Context, testID int) ([]grading.Question, error) {
	var questions []grading.Question
	for _, q := range m.questions {
		if q.TestID == testID {
			questions = append(questions, grading.Question{ID: q.ID, Correct: grading.ParseCorrect(q.Correct), Points: q.Points})
		}
	}
	return questions, nil
}

func (m *memStore) CreateQuestion(_ context.Context, q *models.Question) (int, error) {
	if _, ok := m.tests[q.TestID]; !ok {
		return 0, errForeignKey
	}
	q.ID = m.id()
	m.questions = append(m.questions, *q)
	return q.ID, nil
}

func (m *memStore) ImportQuestions(ctx context.Context, testID int, questions []models.Question) error {
	for i := range questions {
		questions[i].TestID = testID
		if _, err := m.CreateQuestion(ctx, &questions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) UpdateQuestion(_ context.Context, q *models.Question) error {
	for i := range m.questions {
		if m.questions[i].ID == q.ID {
			q.TestID = m.questions[i].TestID
			m.questions[i] = *q
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) DeleteQuestion(_ context.Context, id int) error {
	for i := range m.questions {
		if m.questions[i].ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) SaveResult(ctx context.Context, res *models.Result) (int, error) {
	if _, err := m.TeamByID(ctx, res.TeamID); err != nil {
		return 0, errForeignKey
	}
	if _, ok := m.tests[res.TestID]; !ok {
		return 0, errForeignKey
	}
	res.ID = m.id()
	m.results = append(m.results, *res)
	return res.ID, nil
}

func (m *memStore) ListResults(_ context.Context, f db.ResultFilter) ([]models.Result, error) {
	results := []models.Result{}
	for _, r := range m.results {
		if f.TeamID != 0 && r.TeamID != f.TeamID {
			continue
		}
		if f.TestID != 0 && r.TestID != f.TestID {
			continue
		}
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if f.Oldest {
			return results[i].TakenAt.Before(results[j].TakenAt)
		}
		return results[i].TakenAt.After(results[j].TakenAt)
	})
	return results, nil
}

// failingGrader simulates a storage failure while loading questions.
type failingGrader struct{}

func (failingGrader) Score(context.Context, int, grading.Answers) (grading.Result, error) {
	return grading.Result{}, errBoom
}
