package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "schoolsite-backend/internal/adapter/http"
	mw "schoolsite-backend/internal/adapter/middleware"
	"schoolsite-backend/internal/adapter/repository/gormstore"
	"schoolsite-backend/internal/config"
	"schoolsite-backend/internal/infrastructure/cache"
	"schoolsite-backend/internal/infrastructure/db"
	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/internal/infrastructure/mail"
	"schoolsite-backend/internal/infrastructure/storage"
	appuc "schoolsite-backend/internal/usecase/application"
	"schoolsite-backend/internal/usecase/auth"
	jobuc "schoolsite-backend/internal/usecase/job"
	sponsorshipuc "schoolsite-backend/internal/usecase/sponsorship"
	"schoolsite-backend/internal/usecase/upload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), !cfg.IsProduction())
	if err != nil {
		lg.Fatal("database connect failed", "driver", cfg.DBDriver, "error", err)
	}
	if cfg.DBAutoMigrate {
		if err := gormstore.AutoMigrate(gdb); err != nil {
			lg.Fatal("migration failed", "error", err)
		}
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		lg.Fatal("redis connect failed", "addr", cfg.RedisAddr, "error", err)
	}
	defer rdb.Close()

	objects, err := storage.NewGCS(ctx, storage.Options{
		Bucket:          cfg.GCSBucket,
		CredentialsFile: cfg.GCSCredentialsFile,
		EmulatorHost:    cfg.GCSEmulatorHost,
	})
	if err != nil {
		lg.Fatal("storage init failed", "error", err)
	}
	defer objects.Close()

	var m appuc.Mailer = mail.Nop{}
	if cfg.SendgridAPIKey != "" {
		m = mail.NewSendGrid(cfg.SendgridAPIKey, cfg.MailFromName, cfg.MailFromEmail)
	} else {
		lg.Warn("SENDGRID_API_KEY not set, emails are dropped")
	}

	// repositories
	jobs := gormstore.NewJobRepository(gdb)
	categories := gormstore.NewCategoryRepository(gdb)
	apps := gormstore.NewApplicationRepository(gdb)
	children := gormstore.NewChildRepository(gdb)
	ledger := gormstore.NewSponsorshipRepository(gdb)
	admins := gormstore.NewAdminRepository(gdb)
	tx := gormstore.NewGormUoW(gdb)

	// usecases
	uploads := upload.NewUsecase(objects, cfg.SignedURLTTL, lg)
	authUC := auth.NewUsecase(admins, cfg.JWTSecret, cfg.AdminSessionTTL, lg)
	sponsorUC := sponsorshipuc.NewUsecase(children, ledger, tx, uploads, lg)

	if cfg.AdminEmail != "" {
		if err := authUC.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, "Administrator"); err != nil {
			lg.Fatal("seed admin failed", "error", err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.HTTPErrorHandler = httpadp.NewHTTPErrorHandler(lg)
	if e.IPExtractor, err = mw.IPExtractor(cfg.TrustedProxies); err != nil {
		lg.Fatal("trusted proxies", "error", err)
	}
	e.Use(middleware.RequestID(), mw.RequestLog(lg), middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, mw.HeaderIdempotencyKey,
		},
	}))
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: "1M",
		// multipart routes carry their own larger limit
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/uploads/documents" || strings.HasSuffix(c.Path(), "/photo")
		},
	}))

	limiter := mw.NewRedisLimiter(rdb, lg)
	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Base: httpadp.NewHandler(httpadp.DonationConfig{
			CampaignID:            cfg.DonationCampaignID,
			SponsorshipCampaignID: cfg.SponsorshipCampaignID,
			WidgetURL:             cfg.DonationWidgetURL,
		}),
		Jobs:         httpadp.NewJobHandler(jobuc.NewUsecase(jobs, categories, apps), lg),
		Applications: httpadp.NewApplicationHandler(appuc.NewUsecase(apps, jobs, uploads, m, lg), lg),
		Uploads:      httpadp.NewUploadHandler(uploads, lg),
		Children:     httpadp.NewChildHandler(sponsorUC, lg),
		Webhooks:     httpadp.NewWebhookHandler(sponsorUC, lg),
		Auth:         httpadp.NewAuthHandler(authUC, lg),
	}, httpadp.RouteMiddleware{
		Admin:              mw.AdminAuth(authUC),
		Idempotency:        mw.Idempotency(rdb, cfg.IdempotencyTTL(), lg),
		WebhookSignature:   mw.WebhookSignature(cfg.WebhookSecret, lg),
		WebhookIdempotency: mw.Idempotency(rdb, cfg.IdempotencyTTL(), lg, mw.HeaderWebhookEventID),
		LoginRateLimit:     mw.RateLimit(limiter, "login", cfg.LoginRateLimit, cfg.LoginRateWindow),
		UploadBodyLimit:    middleware.BodyLimit("6M"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		lg.Info("listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Error("graceful shutdown failed", "error", err)
	}
}
