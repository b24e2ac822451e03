package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/adelacruz/timeplan/internal/clock"
	"github.com/adelacruz/timeplan/internal/config"
	"github.com/adelacruz/timeplan/internal/database"
	"github.com/adelacruz/timeplan/internal/handlers"
	"github.com/adelacruz/timeplan/internal/middleware"
	"github.com/adelacruz/timeplan/internal/repository"
	"github.com/adelacruz/timeplan/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Resolve the fixed reference timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.Timezone, err)
	}
	clk := clock.New(loc)

	// Connect to database; the handle is owned here, not by the core
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// Run migrations and seed the category/priority vocabularies
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	recurringRepo := repository.NewRecurringTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	priorityRepo := repository.NewPriorityRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	taskService := services.NewTaskService(taskRepo, categoryRepo, priorityRepo, clk)
	recurringService := services.NewRecurringService(recurringRepo, clk)
	calendarService := services.NewCalendarService(taskRepo, recurringRepo, clk)
	authService := services.NewAuthService(userRepo)

	// Nightly reconciliation at local midnight
	scheduler := services.NewSchedulerService(loc)
	if _, err := scheduler.ScheduleMidnight("reconcile-past-due", taskService.ReconcilePastDue); err != nil {
		log.Fatalf("Failed to schedule reconciliation job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	calendarHandler := handlers.NewCalendarHandler(calendarService, clk)

	// Initialize Gin router
	r := gin.Default()

	// Cookie-backed sessions; a single-owner desktop companion needs no
	// shared session store
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("timeplan_session", store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TimePlan API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/search", taskHandler.SearchTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskOwner(taskService), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskOwner(taskService), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskOwner(taskService), taskHandler.DeleteTask)
			tasks.POST("/:id/complete", middleware.RequireTaskOwner(taskService), taskHandler.CompleteTask)
			tasks.POST("/:id/uncomplete", middleware.RequireTaskOwner(taskService), taskHandler.UncompleteTask)
		}

		// Lookup vocabularies (protected)
		api.GET("/categories", middleware.RequireAuth(), taskHandler.ListCategories)
		api.GET("/priorities", middleware.RequireAuth(), taskHandler.ListPriorities)

		// Recurring task routes (protected)
		recurring := api.Group("/recurring")
		recurring.Use(middleware.RequireAuth())
		{
			recurring.GET("", recurringHandler.List)
			recurring.GET("/today", recurringHandler.TodayStatuses)
			recurring.POST("", recurringHandler.Create)
			recurring.PATCH("/:id", recurringHandler.Update)
			recurring.DELETE("/:id", recurringHandler.Delete)
			recurring.POST("/:id/complete", recurringHandler.Complete)
			recurring.POST("/:id/uncomplete", recurringHandler.Uncomplete)
		}

		// Calendar feed (protected)
		api.GET("/calendar", middleware.RequireAuth(), calendarHandler.Entries)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
