package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"daycare-backend/internal/auth"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Daycare Database")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all managers and babysitters")
	fmt.Println("  - Delete all children, schedules and incidents")
	fmt.Println("  - Delete all parent payments and expenses")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "daycare_db"),
		getEnv("DB_SSLMODE", "disable"))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("Resetting database...")

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	// Children first so the cascade order does not matter
	tables := []string{
		"expenses",
		"parent_payments",
		"incidents",
		"schedules",
		"child",
		"baby_sitters",
		"managers",
	}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  Cleared %s\n", table)
	}

	email := getEnv("RESET_MANAGER_EMAIL", "manager@daycare.local")
	password := getEnv("RESET_MANAGER_PASSWORD", "manager123")
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v\n", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO managers (fullname, age, gender, nin, email, phone, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		"Default Manager", 30, "Female", "CM00000000000A", email, "0700000000", hash,
	)
	if err != nil {
		log.Fatalf("Failed to create manager: %v\n", err)
	}
	fmt.Println("  Created default manager")

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Database reset successful!")
	fmt.Println()
	fmt.Println("Default credentials:")
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
