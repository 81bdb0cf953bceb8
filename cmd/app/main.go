package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apiHttp "github.com/barangay-connect/backend/internal/api/http"
	"github.com/barangay-connect/backend/internal/cache"
	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/internal/db"
	"github.com/barangay-connect/backend/internal/matching"
	"github.com/barangay-connect/backend/internal/metrics"
	"github.com/barangay-connect/backend/internal/queue/asynqserver"
	queueClient "github.com/barangay-connect/backend/internal/queue/client"
	"github.com/barangay-connect/backend/internal/realtime"
	"github.com/barangay-connect/backend/internal/repository"
	"github.com/barangay-connect/backend/internal/server"
	"github.com/barangay-connect/backend/internal/service"
	"github.com/barangay-connect/backend/internal/worker"
	"github.com/barangay-connect/backend/pkg/auth"
	"github.com/barangay-connect/backend/pkg/email/smtp"
	"github.com/barangay-connect/backend/pkg/hash"
	"github.com/barangay-connect/backend/pkg/logger"
	"github.com/barangay-connect/backend/pkg/otp"
	"github.com/barangay-connect/backend/pkg/pdf"
	smsProvider "github.com/barangay-connect/backend/pkg/sms"
	"github.com/barangay-connect/backend/pkg/validator"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting barangay registration api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	// Init redis
	rdb, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		return
	}

	receipts, err := pdf.NewGenerator(cfg.PDF.FontPath)
	if err != nil {
		logger.Error("pdf generator creation failed", zap.Error(err))
		return
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Queue
	redisOpt := asynqserver.RedisOptions(cfg.Cache)
	asynqClient := asynq.NewClient(redisOpt)
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("error when closing asynq client", zap.Error(err))
		}
	}()
	queueClient.SetClient(asynqClient)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	var smsSender smsProvider.Sender
	if cfg.SMS.Enabled {
		client, err := smsProvider.NewClient(cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.SenderName, cfg.SMS.Timeout)
		if err != nil {
			logger.Error("sms client creation failed", zap.Error(err))
			return
		}
		smsSender = client
	}

	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		SMSProvider:   smsSender,
		Config:        cfg,
	})
	asynqSrv, mux := asynqserver.New(cfg, workers)

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL, rdb)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otp.NewGOTPGenerator(),
		Repos:        repos,
		Matching:     matching.NewClient(cfg.Matching),
		MatchStatus:  realtime.NewMatchStatus(rdb),
		Receipts:     receipts,
		Validate:     validator.New(),
		Metrics:      appMetrics,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg, appMetrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := server.NewServer(ctx, cfg, handlers.Init(cfg))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server started", zap.String("port", cfg.HttpServer.Port))
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("queue worker started", zap.Int("concurrency", cfg.Queue.Concurrency))
		return asynqSrv.Start(mux)
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()

		const timeout = 5 * time.Second

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("failed to stop server", zap.Error(err))
		}
		asynqSrv.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("app stopped with error", zap.Error(err))
		return
	}

	logger.Info("app stopped")
}
