package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"aguaviva.org/internal/auth"
)

// Seeds the default platform accounts. Safe to run repeatedly: accounts that
// already exist are left untouched.
func main() {
	log.SetFlags(0)
	dsn := flag.String("dsn", os.Getenv("AGUAVIVA_PG_DSN"), "PostgreSQL DSN")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or AGUAVIVA_PG_DSN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// The issuer is unused here but the service requires one.
	tokens, err := auth.NewTokenIssuer("seed-only")
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}
	svc, err := auth.NewService(auth.NewPGStore(db), tokens)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	defaults := []auth.RegisterUserInput{
		{Name: "Administrador", Email: "admin@agua-viva.com", Password: "admin123", Role: auth.RoleAdmin},
		{Name: "Avaliador", Email: "avaliador@agua-viva.com", Password: "avaliador123", Role: auth.RoleEvaluator},
		{Name: "Proprietário", Email: "proprietario@agua-viva.com", Password: "proprietario123", Role: auth.RoleOwner},
	}

	for _, in := range defaults {
		_, err := svc.RegisterUser(ctx, in)
		switch {
		case err == nil:
			log.Printf("usuário %s criado", in.Email)
		case errors.Is(err, auth.ErrEmailTaken):
			log.Printf("usuário %s já existe", in.Email)
		default:
			log.Fatalf("seed %s: %v", in.Email, err)
		}
	}
}
