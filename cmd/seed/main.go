package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	"github.com/nexcruit/ats-backend/internal/infrastructure/mongodb"
	"github.com/nexcruit/ats-backend/pkg/helpers"
)

const defaultTemplateName = "Standard Offer"

const defaultTemplateBody = `Dear {{name}},

We are pleased to offer you the position of {{position}} on our {{technology}} team.
Your starting salary will be {{salary}} and your first day is {{startingDate}}.

Please confirm your acceptance by {{acceptanceDeadline}}.

Kind regards,
{{company}}`

var defaultSections = []string{
	"Shortlisted",
	"HR Screening",
	"Technical Interview",
	"Managerial Interview",
	"Hired",
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	fmt.Println("indexes ensured")

	email := helpers.NormalizeEmail(getenv("SEED_ADMIN_EMAIL", "admin@nexcruit.local"))
	password := getenv("SEED_ADMIN_PASSWORD", "password123")
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	admin, err := mongodb.NewUserRepository(store).UpsertVerified(ctx, &entity.User{
		Email:    email,
		Password: hash,
		Name:     "Admin",
	})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", admin.ID, admin.Email, password)

	templates := mongodb.NewOfferTemplateRepository(store)
	existing, err := templates.List(ctx)
	if err != nil {
		log.Fatalf("failed to list templates: %v", err)
	}
	found := false
	for _, t := range existing {
		if t.Name == defaultTemplateName {
			found = true
			break
		}
	}
	if !found {
		t := &entity.OfferTemplate{
			Name:    defaultTemplateName,
			Subject: "Offer for {{name}}",
			Body:    defaultTemplateBody,
		}
		if err := templates.Create(ctx, t); err != nil {
			log.Fatalf("failed to seed template: %v", err)
		}
		fmt.Printf("seeded offer template: id=%s\n", t.ID)
	}

	sections := mongodb.NewSectionRepository(store)
	current, err := sections.Get(ctx)
	if err != nil {
		log.Fatalf("failed to load sections: %v", err)
	}
	if len(current) == 0 {
		if _, err := sections.Save(ctx, defaultSections); err != nil {
			log.Fatalf("failed to seed sections: %v", err)
		}
		fmt.Println("seeded pipeline sections")
	}
}
