// Command provision bootstraps the first CMS account. There is no public
// sign-up path, so a fresh deployment runs this once before the server
// can be used:
//
//	provision -email admin@example.com -username admin -role admin
//
// The password is read from PROVISION_PASSWORD rather than a flag so it
// never appears in shell history or process listings.
package main

import (
	"context"
	"flag"
	"log"
	"net/mail"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/conbyt/conbyt-cms/internal/config"
	"github.com/conbyt/conbyt-cms/internal/database"
	"github.com/conbyt/conbyt-cms/internal/repository"
)

func main() {
	email := flag.String("email", "", "email address for the new account")
	username := flag.String("username", "", "display name for the new account")
	role := flag.String("role", "admin", "role for the new account (admin or editor)")
	flag.Parse()

	if *email == "" || *username == "" {
		flag.Usage()
		os.Exit(2)
	}
	if _, err := mail.ParseAddress(*email); err != nil {
		log.Fatalf("invalid email: %v", err)
	}
	if *role != "admin" && *role != "editor" {
		log.Fatalf("invalid role %q: must be admin or editor", *role)
	}
	password := os.Getenv("PROVISION_PASSWORD")
	if len(password) < 8 {
		log.Fatal("PROVISION_PASSWORD must be set and at least 8 characters")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admins := repository.NewAdminRepo(db)
	id, err := admins.Create(ctx, *email, *username, password, *role, cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			log.Fatalf("an account with email %s already exists", *email)
		}
		log.Fatalf("failed to create account: %v", err)
	}
	log.Printf("created %s account id=%d email=%s", *role, id, *email)
}
