package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"projectmanager/internal/db"
	"projectmanager/internal/logger"
	"projectmanager/internal/repository"
	"projectmanager/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "demo@example.com", "account email")
	password := flag.String("password", "demo-password", "account password")
	fullName := flag.String("name", "Demo User", "display name")
	flag.Parse()

	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	tokens, err := service.NewTokenIssuer(os.Getenv("JWT_SECRET"), service.DefaultTokenTTL)
	if err != nil {
		logger.Fatal("token issuer", "error", err)
	}

	pool := db.Connect(dsn, 2)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(users, service.NewPasswordHasher(0), tokens)
	ctx := context.Background()

	res, err := auth.Register(ctx, *email, *password, *fullName)
	if errors.Is(err, service.ErrEmailTaken) {
		logger.Info("user already exists, logging in", "email", *email)
		res, err = auth.Login(ctx, *email, *password)
	}
	if err != nil {
		logger.Fatal("create test user failed", "error", err)
	}

	logger.Info("test user ready", "user_id", res.UserID, "email", res.Email)
	logger.Info("token", "token", res.Token)
}
