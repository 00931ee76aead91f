package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spoorthyhm/dreampath/internal/config"
	"github.com/spoorthyhm/dreampath/internal/database"
	"github.com/spoorthyhm/dreampath/internal/handlers"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"github.com/spoorthyhm/dreampath/internal/scheduler"
	"github.com/spoorthyhm/dreampath/internal/services"
	"github.com/spoorthyhm/dreampath/pkg/ai"
	"github.com/spoorthyhm/dreampath/pkg/email"
	"github.com/spoorthyhm/dreampath/pkg/logger"
	"github.com/spoorthyhm/dreampath/pkg/middleware"
	"github.com/spoorthyhm/dreampath/pkg/push"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// The whole system schedules in one fixed timezone.
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	roadmapRepo := repository.NewRoadmapRepository(db)
	dreamNoteRepo := repository.NewDreamNoteRepository(db)
	futureMessageRepo := repository.NewFutureMessageRepository(db)
	decoderRepo := repository.NewDecoderRepository(db)

	// --- Outbound channels & AI ---
	mailer := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)
	pusher := push.NewSender(cfg.VAPIDEmail, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	aiClient := ai.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)

	// --- Scheduler ---
	sched := scheduler.New(scheduler.Config{
		Reminders: reminderRepo,
		Users:     userRepo,
		Roadmaps:  roadmapRepo,
		Mailer:    mailer,
		Pusher:    pusher,
		Location:  loc,
	})
	sched.Start()

	// Re-register triggers for every persisted reminder.
	if err := sched.Rehydrate(context.Background()); err != nil {
		logger.Log.WithError(err).Error("Failed to rehydrate reminders")
	}

	// --- Services ---
	userService := services.NewUserService(userRepo, mailer)
	reminderService := services.NewReminderService(reminderRepo, sched)
	roadmapService := services.NewRoadmapService(roadmapRepo, userRepo, sched, aiClient)
	dreamNoteService := services.NewDreamNoteService(dreamNoteRepo)
	futureMessageService := services.NewFutureMessageService(futureMessageRepo)
	decoderService := services.NewDecoderService(decoderRepo, aiClient)
	progressService := services.NewProgressService(dreamNoteRepo, roadmapRepo, futureMessageRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapService)
	dreamNoteHandler := handlers.NewDreamNoteHandler(dreamNoteService)
	futureMessageHandler := handlers.NewFutureMessageHandler(futureMessageService)
	decoderHandler := handlers.NewDecoderHandler(decoderService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	// Public auth routes
	api.HandleFunc("/auth/register", userHandler.RegisterUserHandler).Methods("POST")
	api.HandleFunc("/auth/login", userHandler.LoginUserHandler).Methods("POST")
	api.HandleFunc("/auth/logout", userHandler.LogoutUserHandler).Methods("POST")
	api.HandleFunc("/auth/request-password-reset", userHandler.RequestPasswordResetHandler).Methods("POST")
	api.HandleFunc("/auth/reset-password", userHandler.ResetPasswordHandler).Methods("POST")

	// Protected account routes
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	authRoutes.HandleFunc("/profile", userHandler.UpdateProfileHandler).Methods("PATCH")
	authRoutes.HandleFunc("/password", userHandler.UpdatePasswordHandler).Methods("PATCH")
	authRoutes.HandleFunc("/theme", userHandler.UpdateThemeHandler).Methods("PATCH")
	authRoutes.HandleFunc("/subscribe", userHandler.SubscribePushHandler).Methods("POST")

	// Dream note routes
	dreamRoutes := api.PathPrefix("/dream").Subrouter()
	dreamRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	dreamRoutes.HandleFunc("", dreamNoteHandler.CreateDreamNoteHandler).Methods("POST")
	dreamRoutes.HandleFunc("", dreamNoteHandler.GetDreamNotesHandler).Methods("GET")
	dreamRoutes.HandleFunc("/{id}", dreamNoteHandler.UpdateDreamNoteHandler).Methods("PUT")
	dreamRoutes.HandleFunc("/{id}", dreamNoteHandler.DeleteDreamNoteHandler).Methods("DELETE")

	// Decoder routes
	decoderRoutes := api.PathPrefix("/decoder").Subrouter()
	decoderRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	decoderRoutes.HandleFunc("", decoderHandler.CreateDecoderHandler).Methods("POST")
	decoderRoutes.HandleFunc("", decoderHandler.GetDecodersHandler).Methods("GET")
	decoderRoutes.HandleFunc("/decode", decoderHandler.DecodeDreamHandler).Methods("POST")

	// Roadmap routes
	roadmapRoutes := api.PathPrefix("/roadmap").Subrouter()
	roadmapRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	roadmapRoutes.HandleFunc("/generate", roadmapHandler.GenerateRoadmapHandler).Methods("POST")
	roadmapRoutes.HandleFunc("", roadmapHandler.GetRoadmapsHandler).Methods("GET")
	roadmapRoutes.HandleFunc("/step", roadmapHandler.UpdateRoadmapStepHandler).Methods("PATCH")

	// Progress routes
	progressRoutes := api.PathPrefix("/progress").Subrouter()
	progressRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	progressRoutes.HandleFunc("", progressHandler.GetProgressHandler).Methods("GET")

	// Future message routes
	futureRoutes := api.PathPrefix("/future-messages").Subrouter()
	futureRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	futureRoutes.HandleFunc("", futureMessageHandler.CreateFutureMessageHandler).Methods("POST")
	futureRoutes.HandleFunc("", futureMessageHandler.GetFutureMessagesHandler).Methods("GET")
	futureRoutes.HandleFunc("/{id}/open", futureMessageHandler.OpenFutureMessageHandler).Methods("POST")

	// Reminder routes
	reminderRoutes := api.PathPrefix("/reminders").Subrouter()
	reminderRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	reminderRoutes.HandleFunc("", reminderHandler.CreateReminderHandler).Methods("POST")
	reminderRoutes.HandleFunc("", reminderHandler.GetRemindersHandler).Methods("GET")
	reminderRoutes.HandleFunc("/{id}", reminderHandler.UpdateReminderHandler).Methods("PUT")
	reminderRoutes.HandleFunc("/{id}", reminderHandler.DeleteReminderHandler).Methods("DELETE")

	// Health check
	router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is awake"))
	}).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
