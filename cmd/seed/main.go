// Command seed loads the sample catalog and, optionally, demo accounts.
package main

import (
	"context"
	"flag"
	"log"

	"hiresynapse/internal/bootstrap"
	"hiresynapse/internal/config"
	"hiresynapse/internal/database"
	"hiresynapse/internal/seed"
)

func main() {
	users := flag.Int("users", 0, "Number of demo accounts to create")
	applications := flag.Int("applications", 5, "Applications per demo account")
	fakerSeed := flag.Int64("seed", 0, "Random seed for demo data (0 = time based)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, _, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{ApplySchema: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	svc := bootstrap.Services(cfg, db)

	result, err := seed.SeedCatalog(ctx, svc.Jobs, svc.Interview)
	if err != nil {
		log.Fatalf("Catalog seeding failed: %v", err)
	}
	log.Printf("jobs: added=%d skipped=%d errored=%d; questions added=%d",
		result.Jobs.Added, result.Jobs.Skipped, result.Jobs.Errored, result.QuestionsAdded)

	if *users > 0 {
		seeder := seed.NewDemoSeeder(svc.Users, svc.Profiles, svc.Applications, svc.CoverLetters, *fakerSeed)
		created, err := seeder.Run(ctx, seed.DemoOptions{Users: *users, Applications: *applications})
		if err != nil {
			log.Fatalf("Demo seeding failed after %d accounts: %v", len(created), err)
		}
		log.Printf("created %d demo accounts; password: %s", len(created), seed.DemoPassword)
	}
}
