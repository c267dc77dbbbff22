package main

import (
	"context"
	"hostel-server/config"
	"hostel-server/routes"
	"hostel-server/services"
	"hostel-server/storage"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		golog.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		golog.Fatal(err)
	}

	logger := golog.New()
	logger.SetLevel(cfg.LogLevel)

	db, err := storage.InitializeDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Info("connected to the database")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err = storage.InitializeRedis(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Fatal(err)
		}
		logger.Info("connected to redis")
	} else {
		logger.Warn("REDIS_URL is not set, refresh tokens are disabled")
	}

	var mailer services.Mailer
	if cfg.Mail.Enabled() {
		mailer = services.NewMailjetMailer(cfg.Mail.APIKey, cfg.Mail.SecretKey, cfg.Mail.From, cfg.Mail.FromName)
	} else {
		logger.Warn("Mailjet keys are not set, emails will be logged instead of sent")
		mailer = services.NewLogMailer(logger)
	}

	var uploader services.Uploader
	if cfg.Cloudinary.Enabled() {
		cld, err := services.NewCloudinaryUploader(cfg.Cloudinary)
		if err != nil {
			logger.Fatal(err)
		}
		uploader = cld
	} else {
		logger.Warn("Cloudinary is not configured, images are stored as submitted")
	}

	seeded, err := services.NewFacilityService(storage.NewFacilityStore(db)).SeedDefaults(context.Background(), false)
	if err != nil {
		logger.Errorf("seeding facilities: %v", err)
	} else if seeded {
		logger.Info("seeded default facilities")
	}

	app := routes.NewApp(routes.Dependencies{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    rdb,
		Mailer:   mailer,
		Uploader: uploader,
	})

	iris.RegisterOnInterrupt(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(ctx); err != nil {
			logger.Errorf("shutting down: %v", err)
		}
		if err := storage.CloseDB(db); err != nil {
			logger.Errorf("closing database: %v", err)
		}
		if rdb != nil {
			rdb.Close()
		}
		logger.Info("server stopped")
	})

	if err := app.Listen(":"+cfg.Port, iris.WithoutInterruptHandler, iris.WithoutServerError(iris.ErrServerClosed)); err != nil {
		logger.Fatal(err)
	}
}
