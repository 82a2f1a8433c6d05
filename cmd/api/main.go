package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/hr-api/internal/config"
	"github.com/yourusername/hr-api/internal/handler"
	"github.com/yourusername/hr-api/internal/middleware"
	pgRepo "github.com/yourusername/hr-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/hr-api/internal/repository/redis"
	"github.com/yourusername/hr-api/internal/service"
	"github.com/yourusername/hr-api/pkg/auth"
	"github.com/yourusername/hr-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	userRepo := pgRepo.NewUserRepo(db)
	employeeRepo := pgRepo.NewEmployeeRepo(db)
	contractRepo := pgRepo.NewContractRepo(db)
	otpRepo := pgRepo.NewOtpRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Services
	otpService, err := service.NewOtpService(
		otpRepo,
		time.Duration(cfg.Otp.ExpiryMinutes)*time.Minute,
		cfg.Otp.ScanLimit,
	)
	if err != nil {
		log.Printf("Failed to initialize OtpService: %v", err)
		os.Exit(1)
	}

	var emailService service.EmailService
	if cfg.Email.ApiKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.ApiKey, cfg.Email.From, cfg.Otp.ExpiryMinutes)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY not set, recovery codes will not be mailed")
		emailService = &service.NoopEmailService{}
	}

	passwordResetService, err := service.NewPasswordResetService(otpService, userRepo, emailService)
	if err != nil {
		log.Printf("Failed to initialize PasswordResetService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	employeeService := service.NewEmployeeService(employeeRepo, contractRepo, cacheRepo)
	contractService := service.NewContractService(contractRepo, employeeRepo)
	reportService := service.NewReportService()

	// Handlers and middleware
	authHandler := handler.NewAuthHandler(authService, passwordResetService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	contractHandler := handler.NewContractHandler(contractService)
	reportHandler := handler.NewReportHandler(reportService, employeeService, contractService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	allowOrigins := cfg.CORS.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-devpreview"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
		})
		api.GET("/diag", func(c *gin.Context) {
			dbOK := true
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				dbOK = false
			}
			redisOK := redisClient.Ping(c.Request.Context()).Err() == nil
			c.JSON(http.StatusOK, gin.H{
				"db":    dbOK,
				"redis": redisOK,
				"email": cfg.Email.ApiKey != "",
				"mode":  gin.Mode(),
			})
		})

		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.LimitByIP(middleware.DefaultAuthRateLimitConfig()))
		{
			authGroup.POST("/login", rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()), authHandler.Login)
		}

		// Recovery endpoints are unauthenticated by design and carry the
		// strict limit against code guessing.
		otpGroup := api.Group("/otp")
		otpGroup.Use(rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()))
		{
			otpGroup.POST("/send", authHandler.SendOtp)
			otpGroup.POST("/verify", authHandler.VerifyOtp)
		}
		api.POST("/password/reset",
			rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()),
			authHandler.ResetPassword)

		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.GetMe)
		}

		employees := api.Group("/employees")
		employees.Use(authMiddleware.RequireAuth())
		{
			employees.POST("", employeeHandler.Create)
			employees.GET("", employeeHandler.List)
			employees.GET("/:id", employeeHandler.Get)
			employees.PUT("/:id", employeeHandler.Update)
			employees.DELETE("/:id", employeeHandler.Delete)
			employees.GET("/:id/contracts/pdf", reportHandler.EmployeePDF)
			employees.GET("/:id/contracts/xlsx", reportHandler.EmployeeXLSX)
			employees.GET("/:id/contracts/csv", reportHandler.EmployeeCSV)
		}

		contracts := api.Group("/contracts")
		contracts.Use(authMiddleware.RequireAuth())
		{
			contracts.POST("", contractHandler.Create)
			contracts.GET("", contractHandler.List)
			contracts.GET("/:id", contractHandler.Get)
			contracts.PUT("/:id", contractHandler.Update)
			contracts.DELETE("/:id", contractHandler.Delete)
		}

		api.GET("/search", authMiddleware.RequireAuth(), employeeHandler.Search)

		reports := api.Group("/reports")
		reports.Use(authMiddleware.RequireAuth())
		{
			reports.GET("/contracts/pdf", reportHandler.GlobalPDF)
			reports.GET("/contracts/xlsx", reportHandler.GlobalXLSX)
			reports.GET("/contracts/csv", reportHandler.GlobalCSV)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
