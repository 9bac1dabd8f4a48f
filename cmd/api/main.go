package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"realty-marketplace/internal/auth"
	"realty-marketplace/internal/config"
	"realty-marketplace/internal/database"
	"realty-marketplace/internal/handlers"
	"realty-marketplace/internal/market"
	"realty-marketplace/internal/ratelimit"
	"realty-marketplace/internal/scheduler"
	"realty-marketplace/internal/search"
	"realty-marketplace/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	db           *database.DB
	gormDB       *database.GormDB
	searchClient *search.SearchClient
	appConfig    *config.Config
	rateLimiter  *ratelimit.RateLimiter
	appScheduler *scheduler.Scheduler
	indexWorker  *scheduler.IndexWorker
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "/app/config/marketplace_config.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize database based on configuration
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "mysql")
	}

	if dbType == "mysql" {
		log.Println("Using MySQL with GORM")
		mysqlCfg := appConfig.Database.MySQL

		// Get port as string, handle 0 as empty
		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}

		gormDB, err = database.NewGormDB(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "marketplace_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "marketplace_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "marketplace_db"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer gormDB.Close()

		// Initialize schema with GORM AutoMigrate
		if err := gormDB.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres

		portStr := ""
		if pgCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", pgCfg.Port)
		}

		db, err = database.NewDB(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portStr, "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "marketplace_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "marketplace_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "marketplace_db"),
			getEnvOrConfig(pgCfg.SSLMode, "DB_SSLMODE", "disable"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	}

	// Initialize Meilisearch using config
	meilisearchHost := appConfig.Search.Meilisearch.Host
	if meilisearchHost == "" {
		meilisearchHost = getEnv("MEILISEARCH_HOST", "http://meilisearch:7700")
	}
	meilisearchKey := appConfig.Search.Meilisearch.APIKey
	if meilisearchKey == "" {
		meilisearchKey = getEnv("MEILISEARCH_KEY", "masterKey123")
	}

	searchClient = search.NewSearchClient(meilisearchHost, meilisearchKey)

	// Wait for Meilisearch to be ready
	time.Sleep(2 * time.Second)

	if err := searchClient.InitIndex(); err != nil {
		log.Printf("Warning: Failed to initialize search index: %v", err)
	}

	// Initialize rate limiter
	rateLimiter = ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour per client (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)

	// Token signing
	jwtSecret := getEnvOrConfig(appConfig.Auth.JWTSecret, "JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT secret is not configured (set auth.jwt_secret or JWT_SECRET)")
	}
	jwtService := auth.NewService(jwtSecret, appConfig.Auth.TokenTTL())

	// Photo storage
	store := storage.NewStore(getEnvOrConfig(appConfig.Storage.Root, "STORAGE_ROOT", "/app/data/photos"))

	// Initialize and start scheduler and index worker (MySQL only)
	if gormDB != nil {
		appScheduler = scheduler.NewScheduler(gormDB.DB(), appConfig)
		if err := appScheduler.Start(); err != nil {
			log.Printf("Warning: Failed to start scheduler: %v", err)
		}
		defer appScheduler.Stop()

		indexWorker = scheduler.NewIndexWorker(gormDB.DB(), searchClient)
		indexWorker.Start()
		defer indexWorker.Stop()
		log.Println("Index worker started")
	}

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{getEnv("FRONTEND_ORIGIN", "http://localhost:5173")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Routes
	r.GET("/health", healthCheck)
	r.GET("/api/search", searchListings)
	r.GET("/api/ratelimit/stats", getRateLimitStats)

	if gormDB == nil {
		// PostgreSQL fallback: public read-only listing endpoints only.
		r.GET("/api/properties", getPublishedProperties)
		r.GET("/api/properties/:id", getPublishedProperty)

		log.Println("Warning: Running in read-only mode (accounts, listings management and inquiries require MySQL/GORM)")
	} else {
		registerRoutes(r, jwtService, store)
	}

	port := getEnv("PORT", "8084")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes wires the full API surface backed by GORM.
func registerRoutes(r *gin.Engine, jwtService *auth.Service, store *storage.Store) {
	authHandler := handlers.NewAuthHandler(gormDB, jwtService)
	profileHandler := handlers.NewProfileHandler(gormDB)
	propertyHandler := handlers.NewPropertyHandler(gormDB)
	photoHandler := handlers.NewPhotoHandler(gormDB, store, appConfig.Storage.MaxUploadBytes())
	savedHandler := handlers.NewSavedHandler(gormDB)
	messageHandler := handlers.NewMessageHandler(gormDB)
	marketHandler := handlers.NewMarketHandler(market.NewService(gormDB.DB()))

	// Account routes, rate limited by address
	r.POST("/api/auth/register", rateLimitMiddleware(), authHandler.Register)
	r.POST("/api/auth/login", rateLimitMiddleware(), authHandler.Login)

	// Public listing routes; a token widens visibility to owned rows
	public := r.Group("/api", auth.OptionalAuth(jwtService))
	{
		public.GET("/properties", propertyHandler.List)
		public.GET("/properties/:id", propertyHandler.Get)
		public.GET("/properties/:id/photos", photoHandler.List)
		public.GET("/agents", profileHandler.ListAgents)
		public.GET("/agents/:id", profileHandler.GetAgent)
		public.GET("/market/stats", marketHandler.Stats)
	}

	// Authenticated routes
	authed := r.Group("/api", auth.RequireAuth(jwtService))
	{
		authed.GET("/me", profileHandler.Me)
		authed.PUT("/me", profileHandler.UpdateMe)
		authed.GET("/me/properties", propertyHandler.ListOwn)

		// Listing management with rate limiting on writes
		authed.POST("/properties", rateLimitMiddleware(), propertyHandler.Create)
		authed.PUT("/properties/:id", propertyHandler.Update)
		authed.POST("/properties/:id/status", propertyHandler.SetStatus)
		authed.DELETE("/properties/:id", propertyHandler.Delete)

		authed.POST("/properties/:id/photos", rateLimitMiddleware(), photoHandler.Upload)
		authed.PUT("/properties/:id/photos/order", photoHandler.Reorder)
		authed.DELETE("/photos/:photoID", photoHandler.Delete)

		authed.GET("/saved", savedHandler.List)
		authed.POST("/saved/:id", rateLimitMiddleware(), savedHandler.Save)
		authed.DELETE("/saved/:id", savedHandler.Unsave)

		authed.POST("/messages", rateLimitMiddleware(), messageHandler.Create)
		authed.GET("/messages", messageHandler.List)
		authed.GET("/messages/:id", messageHandler.Get)
		authed.POST("/messages/:id/status", messageHandler.SetStatus)
	}

	// Admin API routes
	adminHandler := handlers.NewAdminHandler(gormDB.DB(), appScheduler)

	admin := r.Group("/api/admin", auth.RequireAuth(jwtService), auth.RequireAdmin())
	{
		// Statistics
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/activity", adminHandler.GetRecentActivity)
		admin.GET("/city-stats", adminHandler.GetCityStats)
		admin.GET("/price-distribution", adminHandler.GetPriceDistribution)

		// Market aggregation control
		admin.POST("/market/trigger", adminHandler.TriggerMarketAggregation)

		// Cleanup operations
		admin.POST("/cleanup/run", adminHandler.RunCleanup)
		admin.GET("/cleanup/logs", adminHandler.GetDeleteLogs)

		// Index queue stats
		admin.GET("/queue/stats", getQueueStats)
	}

	log.Println("Admin API routes registered at /api/admin/*")
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// searchListings runs a full-text query against the published-only
// search index. No token is consulted: the index never contains drafts.
func searchListings(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil {
		limit = 20
	}

	params := search.FilterParams{
		Query: c.Query("q"),
		Limit: limit,
	}

	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		if minPrice, err := strconv.ParseInt(minPriceStr, 10, 64); err == nil {
			params.MinPrice = &minPrice
		}
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseInt(maxPriceStr, 10, 64); err == nil {
			params.MaxPrice = &maxPrice
		}
	}
	if forRentStr := c.Query("for_rent"); forRentStr != "" {
		if forRent, err := strconv.ParseBool(forRentStr); err == nil {
			params.ForRent = &forRent
		}
	}
	if minBedsStr := c.Query("min_beds"); minBedsStr != "" {
		if minBeds, err := strconv.Atoi(minBedsStr); err == nil {
			params.MinBeds = &minBeds
		}
	}
	if minBathsStr := c.Query("min_baths"); minBathsStr != "" {
		if minBaths, err := strconv.Atoi(minBathsStr); err == nil {
			params.MinBaths = &minBaths
		}
	}
	if cities := c.QueryArray("city"); len(cities) > 0 {
		params.Cities = cities
	}
	if sortBy := c.Query("sort_by"); sortBy != "" {
		params.SortBy = sortBy
	}

	properties, err := searchClient.FilterSearch(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// getPublishedProperties serves the PostgreSQL read-only path.
func getPublishedProperties(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	properties, err := db.GetPublishedProperties(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

func getPublishedProperty(c *gin.Context) {
	property, err := db.GetPublishedPropertyByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// rateLimitMiddleware returns a Gin middleware that enforces per-client
// rate limiting. Authenticated clients are keyed by account, anonymous
// ones by address.
func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := auth.CurrentActor(c).ID
		if key == "" {
			key = c.ClientIP()
		}

		if !rateLimiter.AllowRequest(key) {
			stats := rateLimiter.GetStats()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
				"stats":   stats,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// getRateLimitStats returns current rate limiter statistics
func getRateLimitStats(c *gin.Context) {
	stats := rateLimiter.GetStats()
	c.JSON(http.StatusOK, stats)
}

// getQueueStats returns current index queue statistics
func getQueueStats(c *gin.Context) {
	if indexWorker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Index worker is not available (requires MySQL/GORM)",
		})
		return
	}

	stats := indexWorker.GetQueueStats()
	c.JSON(http.StatusOK, stats)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
