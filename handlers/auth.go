package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"quizbowl_backend/db"
	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	teams        TeamStore
	results      ResultStore
	tokenService *middleware.TokenService
}

func NewAuthHandler(teams TeamStore, results ResultStore, tokens *middleware.TokenService) *AuthHandler {
	return &AuthHandler{
		teams:        teams,
		results:      results,
		tokenService: tokens,
	}
}

// strongPassword requires at least 8 characters and one uppercase letter.
func strongPassword(pw string) bool {
	if len([]rune(pw)) < 8 {
		return false
	}
	return strings.IndexFunc(pw, unicode.IsUpper) >= 0
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	if req.CaptainEmail != "" && !emailPattern.MatchString(req.CaptainEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}
	if !strongPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Weak password"})
		return
	}

	members := "[]"
	if raw := strings.TrimSpace(string(req.Members)); raw != "" && raw != "null" {
		members = raw
	}

	hashedPassword, err := middleware.HashPassword(req.Password)
	if err != nil {
		log.Printf("[%s] Error hashing password: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	team := models.Team{
		TeamName:     req.TeamName,
		Login:        req.Login,
		PasswordHash: hashedPassword,
		CaptainName:  req.CaptainName,
		CaptainEmail: req.CaptainEmail,
		CaptainPhone: req.CaptainPhone,
		Members:      members,
		School:       req.School,
		City:         req.City,
	}
	if _, err := h.teams.CreateTeam(c.Request.Context(), &team); err != nil {
		if errors.Is(err, db.ErrLoginExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Login exists"})
			return
		}
		log.Printf("[%s] Error creating team: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid"})
		return
	}

	team, err := h.teams.TeamByLogin(c.Request.Context(), req.Login)
	if isNotFound(err) || (err == nil && !middleware.VerifyPassword(team.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid"})
		return
	} else if err != nil {
		log.Printf("[%s] Error querying team: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}

	token, err := h.tokenService.Sign(team)
	if err != nil {
		log.Printf("[%s] Error generating token: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		OK: true,
		Team: models.TeamSession{
			ID:           team.ID,
			TeamName:     team.TeamName,
			Login:        team.Login,
			CaptainName:  team.CaptainName,
			CaptainEmail: team.CaptainEmail,
			Token:        token,
		},
	})
}

// Me returns the authenticated team's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	team, err := h.teams.TeamByID(c.Request.Context(), c.GetInt(middleware.TeamIDKey))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}
	if err != nil {
		log.Printf("[%s] Error fetching team: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team"})
		return
	}

	team.Members = ""
	team.CaptainPhone = ""
	c.JSON(http.StatusOK, gin.H{"ok": true, "team": team})
}

// MyResults lists the authenticated team's submissions, newest first.
func (h *AuthHandler) MyResults(c *gin.Context) {
	results, err := h.results.ListResults(c.Request.Context(), db.ResultFilter{TeamID: c.GetInt(middleware.TeamIDKey)})
	if err != nil {
		log.Printf("[%s] Error fetching results: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch results"})
		return
	}

	for i := range results {
		results[i].Answers = ""
		results[i].TeamName = ""
	}
	c.JSON(http.StatusOK, results)
}
