package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/formdesk/server/internal/config"
	"github.com/formdesk/server/internal/db"
	"github.com/formdesk/server/internal/gelf"
	"github.com/formdesk/server/internal/handler"
	"github.com/formdesk/server/internal/pdf"
	"github.com/formdesk/server/internal/repository"
	"github.com/formdesk/server/internal/router"
	"github.com/formdesk/server/internal/service"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	database, err := db.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB, database %q", cfg.MongoDB)

	// Repositories
	userRepo := repository.NewUserRepo(database)
	templateRepo := repository.NewTemplateRepo(database)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	formSvc := service.NewFormService(userRepo, templateRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(formSvc)
	formH := handler.NewFormHandler(formSvc, pdf.NewAssembler(cfg.AssetsDir))

	// Router
	r := router.New(cfg.JWTSecret, userRepo, authH, userH, formH)

	// Index creation and template seeding run in background so a slow or
	// cold database does not delay accepting requests.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		log.Printf("Background init: creating user indexes...")
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Printf("Warning: user index creation failed: %v", err)
		}
		log.Printf("Background init: creating template indexes...")
		if err := templateRepo.EnsureIndexes(ctx); err != nil {
			log.Printf("Warning: template index creation failed: %v", err)
		}
		log.Printf("Background init: seeding form templates...")
		if err := templateRepo.Seed(ctx, cfg.TemplateDir); err != nil {
			log.Printf("Warning: template seeding failed: %v", err)
		}
		log.Printf("Background init: done")
	}()

	log.Printf("Forms server starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
