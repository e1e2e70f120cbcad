package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/bloghive/backend/internal/handlers"
	"github.com/bloghive/backend/internal/middleware"
	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/bloghive/backend/pkg/email"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, redisClient *redis.Client, firebaseAuthClient *auth.Client, mongoDatabase string) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Comment{},
		&models.Message{},
		&models.Notification{},
		&models.Follow{},
		&models.Block{},
		&models.PostLike{},
		&models.CommentLike{},
		&models.Task{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and services ---
	store := repositories.NewGormStore(pgdb)
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	roleRepo := repositories.NewPostgresRoleRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(mongoDatabase))
	progressStore := repositories.NewRedisProgressStore(redisClient)

	if err := roleRepo.EnsureDefaultRoles(); err != nil {
		log.Fatalf("Failed to seed default roles: %v", err)
	}
	log.Println("Default roles seeded.")

	notificationService := services.NewNotificationService(store, postRepo)
	commentService := services.NewCommentService(store, postRepo)
	messageService := services.NewMessageService(store, postRepo)
	socialService := services.NewSocialService(store, postRepo)
	postService := services.NewPostService(store, postRepo)
	activityService := services.NewActivityService(store, postRepo)
	roleService := services.NewRoleService(store)
	taskService := services.NewTaskService(store, postRepo, progressStore, email.NewLogMailer(), services.GoroutineTaskRunner{})

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, roleRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(userRepo))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	postHandler := handlers.NewPostHandler(postService, userRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	commentHandler := handlers.NewCommentHandler(commentService, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	messageHandler := handlers.NewMessageHandler(messageService, userRepo)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	followHandler := handlers.NewFollowHandler(socialService, userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationService, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	activityHandler := handlers.NewActivityHandler(activityService, userRepo)
	activityHandler.RegisterActivityRoutes(api)
	log.Println("Activity routes configured.")

	taskHandler := handlers.NewTaskHandler(taskService, userRepo)
	taskHandler.RegisterTaskRoutes(api)
	log.Println("Task routes configured.")

	roleHandler := handlers.NewRoleHandler(roleService, userRepo)
	roleHandler.RegisterRoleRoutes(api)
	log.Println("Role routes configured.")

	log.Println("All routes configured.")
}
