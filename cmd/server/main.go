package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/nightwalk/night-walk/internal/config"   // Internal config loader
	"github.com/nightwalk/night-walk/internal/database" // MySQL connection pool
	"github.com/nightwalk/night-walk/internal/handler"  // HTTP handlers
	"github.com/nightwalk/night-walk/internal/queue"    // RabbitMQ consumer
	"github.com/nightwalk/night-walk/internal/repository"
	"github.com/nightwalk/night-walk/internal/router" // Internal router setup
	queue_publisher "github.com/nightwalk/night-walk/internal/service"
	"github.com/nightwalk/night-walk/internal/vacancy" // Vacancy status core
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	// Redis backs the public response cache and the rate limiter.
	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	shops := repository.NewShopRepo(db)
	jobs := repository.NewJobRepo(db)
	vacancies := repository.NewVacancyRepo(db)
	audits := repository.NewAuditRepo(db)
	subs := repository.NewSubscriptionRepo(db)

	// Vacancy core: MySQL-backed records, shop existence checks, RabbitMQ
	// fan-out and audit rows on every accepted write.
	svc := vacancy.NewService(vacancies, shops, queue_publisher.Publisher{}, audits)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens, audits)
	vacancyH := handler.NewVacancyHandler(svc, users, vacancies)
	publicH := &handler.PublicHandler{ShopRepo: shops, JobRepo: jobs, VacancyRepo: vacancies}
	ownerH := handler.NewOwnerHandler(shops, jobs, audits)
	adminH := handler.NewAdminHandler(vacancies, audits, subs)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, vacancyH, rdb, cfg.PollInterval)
	router.RegisterStaff(e, vacancyH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Consume vacancy.updated events into the on-disk activity log.  The
	// consumer reconnects on its own; a hard failure only loses the log.
	go func() {
		if err := queue.StartVacancyConsumer(); err != nil {
			log.Printf("vacancy consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
