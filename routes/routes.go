package routes

import (
	"database/sql"

	"quizbowl_backend/config"
	"quizbowl_backend/db"
	"quizbowl_backend/export"
	"quizbowl_backend/grading"
	"quizbowl_backend/handlers"
	"quizbowl_backend/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, database *sql.DB, cfg *config.Config) {
	// Repositories
	teams := db.NewTeamRepository(database)
	tests := db.NewTestRepository(database)
	questions := db.NewQuestionRepository(database)
	results := db.NewResultRepository(database)
	categories := db.NewCategoryRepository(database)
	settings := db.NewSettingsRepository(database)

	tokens := middleware.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(database)
	authHandler := handlers.NewAuthHandler(teams, results, tokens)
	testHandler := handlers.NewTestHandler(tests, questions)
	questionHandler := handlers.NewQuestionHandler(tests, questions)
	submissionHandler := handlers.NewSubmissionHandler(teams, tests, grading.NewScorer(questions), results)
	adminHandler := handlers.NewAdminHandler(teams, results, questions, export.Exporter{TotalPolicy: cfg.TotalPolicy})
	categoryHandler := handlers.NewCategoryHandler(categories)
	settingsHandler := handlers.NewSettingsHandler(settings)

	Register(r, Handlers{
		Health:     healthHandler,
		Auth:       authHandler,
		Tests:      testHandler,
		Questions:  questionHandler,
		Submission: submissionHandler,
		Admin:      adminHandler,
		Categories: categoryHandler,
		Settings:   settingsHandler,
	}, tokens, cfg.AdminToken)
}

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Tests      *handlers.TestHandler
	Questions  *handlers.QuestionHandler
	Submission *handlers.SubmissionHandler
	Admin      *handlers.AdminHandler
	Categories *handlers.CategoryHandler
	Settings   *handlers.SettingsHandler
}

// Register mounts the API on r.
func Register(r *gin.Engine, h Handlers, tokens *middleware.TokenService, adminToken string) {
	r.GET("/health", h.Health.HealthCheck)

	api := r.Group("/api")

	// Public routes
	api.GET("/ping", h.Health.Ping)
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.GET("/tests", h.Tests.GetTests)
	api.GET("/tests/:id", h.Tests.GetTestByID)
	api.GET("/categories", h.Categories.GetCategories)
	api.GET("/settings", h.Settings.GetSettings)

	// Team routes
	team := api.Group("/")
	team.Use(middleware.TeamAuth(tokens))
	{
		team.POST("/tests/:id/submit", h.Submission.Submit)
		team.GET("/me", h.Auth.Me)
		team.GET("/me/results", h.Auth.MyResults)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(adminToken))
	{
		// Test routes
		admin.GET("/tests", h.Tests.AdminGetTests)
		admin.POST("/tests", h.Tests.CreateTest)
		admin.PUT("/tests/:id", h.Tests.UpdateTest)
		admin.DELETE("/tests/:id", h.Tests.DeleteTest)

		// Question routes
		admin.GET("/tests/:id/questions", h.Questions.GetQuestions)
		admin.POST("/tests/:id/questions", h.Questions.CreateQuestion)
		admin.GET("/tests/:id/questions/export-csv", h.Questions.ExportCSV)
		admin.POST("/tests/:id/questions/import-csv", h.Questions.ImportCSV)
		admin.PUT("/questions/:qid", h.Questions.UpdateQuestion)
		admin.DELETE("/questions/:qid", h.Questions.DeleteQuestion)

		// Category routes
		admin.GET("/categories", h.Categories.GetCategories)
		admin.POST("/categories", h.Categories.CreateCategory)
		admin.PUT("/categories/:id", h.Categories.UpdateCategory)
		admin.DELETE("/categories/:id", h.Categories.DeleteCategory)

		// Team and result routes
		admin.GET("/teams", h.Admin.GetTeams)
		admin.GET("/teams/export-csv", h.Admin.ExportTeams)
		admin.POST("/reset-teams", h.Admin.ResetTeams)
		admin.GET("/results", h.Admin.GetResults)
		admin.GET("/results/export-csv", h.Admin.ExportResults)

		// Settings route
		admin.PUT("/settings", h.Settings.UpdateSettings)
	}
}
