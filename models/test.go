package models

import (
	"time"

	"quizbowl_backend/grading"
)

type Test struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Lang            string     `json:"lang"`
	DurationMinutes int        `json:"duration_minutes"`
	WindowStart     *time.Time `json:"window_start"`
	WindowEnd       *time.Time `json:"window_end"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TestRequest creates or updates a test. WindowRange, when it parses,
// takes precedence over WindowStart/WindowEnd.
type TestRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Lang            string     `json:"lang"`
	DurationMinutes int        `json:"duration_minutes"`
	WindowStart     *time.Time `json:"window_start"`
	WindowEnd       *time.Time `json:"window_end"`
	WindowRange     string     `json:"window_range"`
}

type Question struct {
	ID         int           `json:"id"`
	TestID     int           `json:"test_id"`
	Ordinal    int           `json:"ordinal"`
	Text       string        `json:"text"`
	Options    []string      `json:"options"`
	Correct    grading.Value `json:"correct"`
	Points     int           `json:"points"`
	Lang       string        `json:"lang"`
	CategoryID *int          `json:"category_id"`
}

// PublicQuestion is what a team sees while taking a test.
type PublicQuestion struct {
	ID      int      `json:"id"`
	Ordinal int      `json:"ordinal"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Points  int      `json:"points"`
}

type QuestionRequest struct {
	Ordinal    int           `json:"ordinal"`
	Text       string        `json:"text"`
	Options    []string      `json:"options"`
	Correct    grading.Value `json:"correct"`
	Points     int           `json:"points"`
	Lang       string        `json:"lang"`
	CategoryID *int          `json:"category_id"`
}

type SubmitRequest struct {
	Answers grading.Answers `json:"answers"`
}

// Result is one graded submission. Answers holds the serialized audit list.
type Result struct {
	ID        int       `json:"id"`
	TeamID    int       `json:"team_id"`
	TestID    int       `json:"test_id"`
	Score     int       `json:"score"`
	Answers   string    `json:"answers,omitempty"`
	TakenAt   time.Time `json:"taken_at"`
	TestTitle string    `json:"title"`
	TeamName  string    `json:"team_name,omitempty"`
}

type Category struct {
	ID        int       `json:"id"`
	NameRU    string    `json:"name_ru"`
	NameKY    string    `json:"name_ky"`
	DescRU    *string   `json:"desc_ru"`
	DescKY    *string   `json:"desc_ky"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryRequest struct {
	NameRU string `json:"name_ru" binding:"required"`
	NameKY string `json:"name_ky" binding:"required"`
	DescRU string `json:"desc_ru"`
	DescKY string `json:"desc_ky"`
}

// Settings is the single row of competition-wide display settings.
type Settings struct {
	Badge1RU     *string    `json:"badge1_ru" yaml:"badge1_ru"`
	Badge1KY     *string    `json:"badge1_ky" yaml:"badge1_ky"`
	Badge2RU     *string    `json:"badge2_ru" yaml:"badge2_ru"`
	Badge2KY     *string    `json:"badge2_ky" yaml:"badge2_ky"`
	Badge3RU     *string    `json:"badge3_ru" yaml:"badge3_ru"`
	Badge3KY     *string    `json:"badge3_ky" yaml:"badge3_ky"`
	Day1Date     *string    `json:"day1_date" yaml:"day1_date"`
	Day2Date     *string    `json:"day2_date" yaml:"day2_date"`
	Day3Date     *string    `json:"day3_date" yaml:"day3_date"`
	FinalPlaceRU *string    `json:"final_place_ru" yaml:"final_place_ru"`
	FinalPlaceKY *string    `json:"final_place_ky" yaml:"final_place_ky"`
	UpdatedAt    *time.Time `json:"updated_at" yaml:"-"`
}
