package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/art-school-server/config"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
	"github.com/oksasatya/art-school-server/internal/infrastructure/mongodb"
)

// seed creates the collection indexes and bootstraps the first admin, since
// role changes themselves require an admin token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.SeedAdminEmail == "" {
		log.Fatal("SEED_ADMIN_EMAIL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoConnectionURI(), cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	fmt.Println("indexes ensured")

	users := mongodb.NewUserRepository(db)
	existing, err := users.GetByEmail(ctx, cfg.SeedAdminEmail)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		now := time.Now().UTC()
		u := &entity.User{
			Email:     cfg.SeedAdminEmail,
			Name:      cfg.SeedAdminName,
			Role:      entity.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		fmt.Printf("seeded admin: id=%s email=%s\n", u.ID.Hex(), u.Email)
	case err != nil:
		log.Fatalf("failed to look up admin: %v", err)
	default:
		res, err := users.UpdateRole(ctx, existing.ID.Hex(), entity.RoleAdmin)
		if err != nil {
			log.Fatalf("failed to promote admin: %v", err)
		}
		fmt.Printf("promoted %s to admin (modified=%d)\n", existing.Email, res.ModifiedCount)
	}
}
