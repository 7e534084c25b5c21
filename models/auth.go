package models

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type RegisterRequest struct {
	TeamName     string          `json:"team_name" binding:"required"`
	Login        string          `json:"login" binding:"required"`
	Password     string          `json:"password" binding:"required"`
	CaptainName  string          `json:"captain_name"`
	CaptainEmail string          `json:"captain_email"`
	CaptainPhone string          `json:"captain_phone"`
	Members      json.RawMessage `json:"members"`
	School       string          `json:"school"`
	City         string          `json:"city"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Claims identify a team in its bearer token.
type Claims struct {
	TeamID   int    `json:"id"`
	TeamName string `json:"team_name"`
	Login    string `json:"login"`
	jwt.RegisteredClaims
}

type LoginResponse struct {
	OK   bool        `json:"ok"`
	Team TeamSession `json:"team"`
}

type TeamSession struct {
	ID           int    `json:"id"`
	TeamName     string `json:"team_name"`
	Login        string `json:"login"`
	CaptainName  string `json:"captain_name"`
	CaptainEmail string `json:"captain_email"`
	Token        string `json:"token"`
}

type Team struct {
	ID           int       `json:"id"`
	TeamName     string    `json:"team_name"`
	Login        string    `json:"login,omitempty"`
	PasswordHash string    `json:"-"`
	CaptainName  string    `json:"captain_name"`
	CaptainEmail string    `json:"captain_email"`
	CaptainPhone string    `json:"captain_phone,omitempty"`
	Members      string    `json:"members,omitempty"` // JSON array as submitted at registration
	School       string    `json:"school"`
	City         string    `json:"city"`
	CreatedAt    time.Time `json:"created_at"`
}
