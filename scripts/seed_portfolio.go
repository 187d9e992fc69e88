package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/content"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// Seeds an empty database with a starter profile and status so the public
// page renders something before the first admin edit.
func main() {
	fmt.Println("seeding portfolio content...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewNopLogger()

	stores, closeStores, err := persistence.OpenStores(cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot open stores: %v", err)
	}
	defer closeStores()

	ctx := context.Background()
	events := event.NewLogPublisher(appLogger)
	cache := persistence.NopSnapshotCache{}

	profiles := content.NewManager[portfolio.Profile](portfolio.ProfileSchema, stores.Profiles, events, cache, appLogger)
	if current, err := profiles.Current(ctx); err != nil {
		log.Fatalf("cannot read profile: %v", err)
	} else if current != nil {
		fmt.Printf("profile '%s' already exists, nothing to do\n", current.Name)
		return
	}

	name := os.Getenv("OWNER_NAME")
	if name == "" {
		name = cfg.Site.Title
	}
	email := os.Getenv("OWNER_EMAIL")
	if email == "" {
		email = "owner@example.com"
	}

	if _, err := profiles.SaveSingleton(ctx, &portfolio.Profile{
		Name:  name,
		Title: "Software Engineer",
		Bio:   "Tell visitors who you are.",
		Email: email,
	}); err != nil {
		log.Fatalf("cannot save profile: %v", err)
	}

	status := content.NewManager[portfolio.Status](portfolio.StatusSchema, stores.Status, events, cache, appLogger)
	if _, err := status.SaveSingleton(ctx, &portfolio.Status{
		IsAvailable: true,
		StatusText:  "Open to new opportunities",
	}); err != nil {
		log.Fatalf("cannot save status: %v", err)
	}

	fmt.Printf("seeded profile '%s' successfully!\n", name)
}
