package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/deskhive/helpdesk-api/config"
	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Ensure the fixed role set exists
	for _, name := range entity.KnownRoles {
		var id string
		if err := db.QueryRow(`
			INSERT INTO roles (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id
		`, name).Scan(&id); err != nil {
			log.Fatalf("failed to upsert role %s: %v", name, err)
		}
		fmt.Printf("role ensured: %s=%s\n", name, id)
	}

	// Bootstrap admin account
	email := "admin@deskhive.local"
	userName := "admin"
	password := "changeme123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (user_name, email, full_name, language, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET user_name = EXCLUDED.user_name
		RETURNING id
	`, userName, email, "Administrator", int(entity.LanguageEnglish), entity.RoleSuperAdmin, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)
}
