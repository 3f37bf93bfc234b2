package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/emberdate/emberdate/config"
	"github.com/emberdate/emberdate/pkg/helpers"
)

type demoUser struct {
	username string
	email    string
	age      int
	bio      string
}

// Seeds a handful of demo accounts for local swiping. Every account gets the
// same password so the terminal client can log in as any of them.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "Demo!234"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := []demoUser{
		{"maija", "maija@example.com", 26, "Likes hiking and bad puns."},
		{"pekka", "pekka@example.com", 31, "Coffee first, questions later."},
		{"sanni", "sanni@example.com", 24, "Cat person. Non-negotiable."},
		{"jussi", "jussi@example.com", 29, "Weekend climber, weekday cook."},
		{"elina", "elina@example.com", 27, "Ask me about my record collection."},
	}

	now := time.Now().UnixMilli()
	for _, u := range users {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (id, email, password_hash, username, age, bio, registered_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
			RETURNING id
		`, uuid.NewString(), u.email, hash, u.username, u.age, u.bio, now).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.username, err)
		}
		fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", id, u.email, u.username, password)
	}
}
