package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/config"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/database"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/models"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/users"
)

// createadmin seeds the first super_admin account so the API is usable on a
// fresh database. It is idempotent: an existing account is left untouched.
func main() {
	var (
		email    = flag.String("email", "", "admin email (defaults to DEFAULT_ADMIN_EMAIL)")
		password = flag.String("password", "", "admin password (defaults to DEFAULT_ADMIN_PASSWORD)")
		name     = flag.String("name", "Super Admin", "admin display name")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *email == "" {
		*email = cfg.Admin.DefaultEmail
	}
	if *password == "" {
		*password = cfg.Admin.DefaultPassword
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := users.NewMongoUserRepository(client.Database(cfg.MongoDB.Database).Collection("adminusers"))
	svc := users.NewService(repo)

	if _, err := repo.GetByEmail(ctx, *email); err == nil {
		log.Printf("admin %s already exists, nothing to do", *email)
		return
	} else if err != users.ErrNotFound {
		log.Fatalf("lookup: %v", err)
	}

	u, err := svc.Register(ctx, *email, *password, *name, models.RoleSuperAdmin)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("created super_admin %s (id %s); change the password after first login", u.Email, u.ID)
}
