package main

import (
	"cinemaverse/cache"
	"cinemaverse/config"
	"cinemaverse/database"
	"cinemaverse/events"
	"cinemaverse/handler"
	"cinemaverse/helper"
	"cinemaverse/jobs"
	"cinemaverse/logger"
	"cinemaverse/mailer"
	"cinemaverse/repository"
	"cinemaverse/router"
	"cinemaverse/service"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func main() {
	settings := config.Load()
	logger.Setup(settings.IsDev(), settings.LogLevel)

	db, err := database.ConnectDB(settings)
	if err != nil {
		logger.Log.WithError(err).Fatal("database unavailable")
	}
	database.SeedData(db)
	if settings.PaymentWebhookSecret == "" && !settings.IsDev() {
		logger.Log.Warn("PAYMENT_WEBHOOK_SECRET is not set, payment webhook is unauthenticated")
	}

	deps := service.Deps{
		UoW:      repository.NewUnitOfWork(db),
		Settings: settings,
	}

	var rdb *redis.Client
	if settings.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.WithError(err).Warn("redis unreachable, caching disabled")
			_ = rdb.Close()
			rdb = nil
		} else {
			deps.Cache = cache.NewRedisCache(rdb)
		}
		cancel()
	}

	if settings.RabbitURL != "" {
		publisher, err := events.NewAMQPPublisher(settings.RabbitURL)
		if err != nil {
			logger.Log.WithError(err).Warn("rabbitmq unreachable, events disabled")
		} else {
			deps.Events = publisher
			defer publisher.Close()
		}
	}

	if settings.CloudinaryEnabled() {
		store, err := helper.InitCloudinary(settings.CloudinaryCloudName, settings.CloudinaryAPIKey, settings.CloudinaryAPISecret)
		if err != nil {
			logger.Log.WithError(err).Warn("cloudinary disabled")
		} else {
			deps.Images = store
		}
	}

	if settings.SMTPEnabled() {
		smtpCfg := mailer.SMTPConfig{
			Host:     settings.SMTPHost,
			Port:     settings.SMTPPort,
			Username: settings.SMTPUsername,
			Password: settings.SMTPPassword,
			From:     settings.SMTPFrom,
		}
		deps.Mailer = mailer.NewSMTPMailer(smtpCfg)
		deps.Accounts = mailer.NewAccountMailer(smtpCfg)
	}

	services := service.New(deps)
	h := handler.New(services, settings, db, rdb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go h.Hub.Run(ctx)

	runner, err := jobs.New(services, settings)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to schedule jobs")
	}
	runner.Start()

	app := router.New(h, services.Tokens(), settings)
	go func() {
		if err := app.Listen(":" + settings.Port); err != nil {
			logger.Log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.WithError(err).Warn("server shutdown")
	}
	if err := runner.Stop(); err != nil {
		logger.Log.WithError(err).Warn("scheduler shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
