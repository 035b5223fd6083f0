package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/nitt-hospital/backend/internal/api/http"
	"github.com/nitt-hospital/backend/internal/cache"
	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/db"
	"github.com/nitt-hospital/backend/internal/queue/asynqserver"
	queueClient "github.com/nitt-hospital/backend/internal/queue/client"
	"github.com/nitt-hospital/backend/internal/repository"
	"github.com/nitt-hospital/backend/internal/server"
	"github.com/nitt-hospital/backend/internal/service"
	"github.com/nitt-hospital/backend/internal/worker"
	"github.com/nitt-hospital/backend/pkg/auth"
	"github.com/nitt-hospital/backend/pkg/email/smtp"
	"github.com/nitt-hospital/backend/pkg/hash"
	"github.com/nitt-hospital/backend/pkg/logger"
	"github.com/nitt-hospital/backend/pkg/otp"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	appLogger.Info("starting backend api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Error("smtp sender creation failed", zap.Error(err))
		os.Exit(1)
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		os.Exit(1)
	}

	otpGenerator, err := otp.NewGenerator(cfg.OTP.Generator)
	if err != nil {
		appLogger.Error("otp generator creation err", zap.Error(err))
		os.Exit(1)
	}

	deps := service.Deps{
		Config:         cfg,
		Repos:          repository.NewRepositories(dbMySQL),
		PasswordHasher: hash.NewBcryptHasher(),
		CodeHasher:     hash.NewSHA256CodeHasher(),
		OtpGenerator:   otpGenerator,
		TokenManager:   tokenManager,
		EmailSender:    emailSender,
	}

	if cfg.RedisRequired() {
		redisClient, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			appLogger.Error("redis connect problem", zap.Error(err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				appLogger.Error("error when closing redis", zap.Error(err))
			}
		}()
		appLogger.Info("redis connection done")

		if cfg.OTP.ResendCooldown > 0 {
			deps.Cooldown = cache.NewRedisCooldown(redisClient)
		}
	}

	var queue *queueClient.Client
	if cfg.Queue.Enabled {
		queue = queueClient.New(cfg.Cache)
		defer queue.Close()
		deps.Notices = queue
	}

	// Services & API Handlers
	services := service.NewServices(deps)
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	if cfg.Queue.Enabled {
		workers := worker.NewWorkers(worker.Deps{Services: services})

		asynqSrv, mux := asynqserver.New(cfg, workers)
		if err := asynqSrv.Start(mux); err != nil {
			appLogger.Error("asynq server start failed", zap.Error(err))
			os.Exit(1)
		}
		defer asynqSrv.Shutdown()

		scheduler, err := asynqserver.NewScheduler(cfg)
		if err != nil {
			appLogger.Error("asynq scheduler creation failed", zap.Error(err))
			os.Exit(1)
		}
		if scheduler != nil {
			if err := scheduler.Start(); err != nil {
				appLogger.Error("asynq scheduler start failed", zap.Error(err))
				os.Exit(1)
			}
			defer scheduler.Shutdown()
		}
		appLogger.Info("queue started")
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(appCtx))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("addr", srv.Addr()))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
