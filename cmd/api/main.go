package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"brandmarket/internal/config"
	"brandmarket/internal/database"
	"brandmarket/internal/middleware"
	"brandmarket/internal/modules/admin"
	"brandmarket/internal/modules/auth"
	"brandmarket/internal/modules/catalog"
	"brandmarket/internal/modules/contact"
	"brandmarket/internal/modules/favorite"
	"brandmarket/internal/modules/notify"
	"brandmarket/internal/modules/upload"
	"brandmarket/internal/pkg/imaging"
	jwtsvc "brandmarket/internal/pkg/jwt"
	"brandmarket/internal/pkg/mailer"
	"brandmarket/internal/repository"
	"brandmarket/internal/storage"
)

func main() {
	// .env is optional; real deployments export the variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	store, err := storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	contactRepo := repository.NewContactRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	var mail mailer.Mailer
	if cfg.MailDevMode {
		mail = mailer.NewDevConsoleMailer(true)
	} else {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	hub := notify.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, refreshRepo, brandRepo, j, mail, auth.Config{
		VerificationCodePepper: cfg.VerificationCodePepper,
		VerifyCodeTTL:          cfg.VerifyCodeTTL,
		VerifyMaxAttempts:      config.VerifyMaxAttempts,
		VerifyBlockWindow:      cfg.VerifyBlockWindow,
		VerifyResendCooldown:   cfg.VerifyResendCooldown,
		RefreshTokenPepper:     cfg.RefreshTokenPepper,
		RefreshTTL:             cfg.RefreshTTL,
	})
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(brandRepo, productRepo, categoryRepo, hub)
	catalogHandler := catalog.NewHandler(catalogService, userRepo)

	favoriteHandler := favorite.NewHandler(favoriteRepo, brandRepo)
	contactHandler := contact.NewHandler(contactRepo, hub)
	notifyHandler := notify.NewHandler(hub, j)

	adminService := admin.NewService(userRepo, brandRepo, productRepo, categoryRepo, contactRepo, hub)
	adminHandler := admin.NewHandler(adminService)

	uploadService := upload.NewService(uploadRepo, store, imaging.NewProcessor(85))
	uploadHandler := upload.NewHandler(uploadService, userRepo)

	gate := middleware.NewAccountGate(userRepo)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)
		authHandler.RegisterAdminAuthRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)
		contactHandler.RegisterRoutes(api)

		// websocket feed checks its own token, browsers cannot set headers
		// on the handshake
		notifyHandler.RegisterRoutes(api.Group("/admin"))

		// authenticated
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)

			verified := protected.Group("/")
			verified.Use(gate.RequireVerified())
			{
				favoriteHandler.RegisterRoutes(verified)
				uploadHandler.RegisterRoutes(verified)
				catalogHandler.RegisterOwnerRoutes(verified)
			}
		}

		// admin panel
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	log.Printf("listening on %s env=%s storage=%s", cfg.HTTPAddr, cfg.AppEnv, cfg.Storage.Type)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
