//cmd/seeder/main.go
package main

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/clubops/annonce-backend/internal/auth"
	"github.com/clubops/annonce-backend/internal/db"
	"github.com/clubops/annonce-backend/internal/model"
	"github.com/clubops/annonce-backend/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	conn, err := db.NewHandle().Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedFiles := []string{
		"seed/schema.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read %s: %v", file, err)
		}

		_, err = conn.Exec(string(content))
		if err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("Seeded: %s\n", file)
	}

	if err := seedAdminOperator(conn); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Database seeding completed successfully!")
}

// seedAdminOperator creates the dashboard operator account if it does not
// exist yet. Email and password come from the environment; a random password
// is generated and printed once when none is set.
func seedAdminOperator(conn *sql.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		fmt.Println("ADMIN_EMAIL not set, skipping operator seeding")
		return nil
	}

	authRepo := &repository.AuthRepository{DB: conn}

	existing, err := authRepo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("lookup operator: %w", err)
	}
	if existing != nil {
		fmt.Printf("Operator %s already exists\n", email)
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		password = hex.EncodeToString(buf)
		fmt.Printf("Generated password for %s: %s\n", email, password)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := authRepo.Create(&model.Operator{Email: email, PasswordHash: hash}); err != nil {
		return fmt.Errorf("create operator: %w", err)
	}
	fmt.Printf("Created operator: %s\n", email)
	return nil
}
