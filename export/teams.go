package export

import (
	"strconv"

	"quizbowl_backend/models"
)

const TeamsFilename = "teams_export.csv"

// Teams renders the team roster in the order given.
func Teams(teams []models.Team) Document {
	header := Row("ID", "Название команды", "Логин", "Капитан", "Email", "Телефон", "Участники", "Школа", "Город", "Дата регистрации")

	rows := make([]string, 0, len(teams))
	for _, t := range teams {
		created := ""
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.UTC().Format("2006-01-02 15:04:05")
		}
		rows = append(rows, Row(
			strconv.Itoa(t.ID),
			t.TeamName,
			t.Login,
			t.CaptainName,
			t.CaptainEmail,
			t.CaptainPhone,
			t.Members,
			t.School,
			t.City,
			created,
		))
	}

	return Document{
		Filename:    TeamsFilename,
		ContentType: ContentType,
		Content:     spreadsheet(header, rows),
	}
}
