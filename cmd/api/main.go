package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/api/routes"
	"github.com/ArowuTest/numbers-lottery-backend/internal/config"
	"github.com/ArowuTest/numbers-lottery-backend/internal/database"
	"github.com/ArowuTest/numbers-lottery-backend/internal/draw"
	"github.com/ArowuTest/numbers-lottery-backend/internal/handlers"
	"github.com/ArowuTest/numbers-lottery-backend/internal/lock"
	"github.com/ArowuTest/numbers-lottery-backend/internal/logging"
	"github.com/ArowuTest/numbers-lottery-backend/internal/metrics"
	"github.com/ArowuTest/numbers-lottery-backend/internal/realtime"
	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/jwt"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/messenger"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
	log.Info("Server exiting")
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx := context.Background()
	m := metrics.New()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	store, closeStore, err := database.Open(connectCtx, cfg, log)
	cancel()
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.WithError(err).Warn("Error closing store")
		}
	}()

	locker, closeLocker, err := newLocker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLocker()

	gateway, err := newGateway(cfg, log)
	if err != nil {
		return err
	}

	sampler, err := draw.NewSampler(cfg.Lottery.NumberRange, cfg.Lottery.PickCount, draw.NewTimeSeededSource())
	if err != nil {
		return err
	}
	prizes, err := draw.ParsePrizeTable(cfg.Lottery.FundRate, cfg.Lottery.TierShares, cfg.Lottery.PickCount)
	if err != nil {
		return err
	}
	base, err := decimal.NewFromString(cfg.Lottery.BaseJackpot)
	if err != nil {
		return fmt.Errorf("config: Lottery.BaseJackpot: %w", err)
	}
	perTicket, err := decimal.NewFromString(cfg.Lottery.PerTicketContribution)
	if err != nil {
		return fmt.Errorf("config: Lottery.PerTicketContribution: %w", err)
	}

	tokens, err := jwt.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(log.WithField("component", "hub"), cfg.Server.AllowedHosts, m.Viewers)
	defer hub.Close()

	notifier := services.NewNotificationService(gateway, services.NotifierOptions{
		Workers:       cfg.Notifier.Workers,
		QueueSize:     cfg.Notifier.QueueSize,
		RatePerSecond: cfg.Telegram.RatePerSecond,
		Burst:         cfg.Telegram.Burst,
		Currency:      cfg.Lottery.Currency,
	}, m, log.WithField("component", "notifier"))
	notifier.Start(ctx)
	defer notifier.Stop()

	jackpotService := services.NewJackpotService(store.Tickets, base, perTicket, hub, m, log.WithField("component", "jackpot"))
	drawService := services.NewDrawService(services.DrawDependencies{
		Tickets:      store.Tickets,
		Draws:        store.Draws,
		PrizeResults: store.PrizeResults,
		Recorder:     services.NewSettlementRecorder(store.Settlements),
		Sampler:      sampler,
		Prizes:       prizes,
		Locker:       locker,
		Notifier:     notifier,
		Jackpot:      jackpotService,
		Metrics:      m,
		Logger:       log.WithField("component", "draw"),
		HistoryLimit: cfg.Lottery.HistoryLimit,
	})
	ticketService := services.NewTicketService(store.Tickets, jackpotService, cfg.Lottery.NumberRange, cfg.Lottery.PickCount, log.WithField("component", "tickets"))
	authService := services.NewAuthService(cfg.Operator.Username, cfg.Operator.PasswordHash, tokens, log.WithField("component", "auth"))

	if jackpot, err := jackpotService.Current(ctx); err == nil {
		m.Jackpot(jackpot.InexactFloat64())
	}

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthHandler:    handlers.NewAuthHandler(authService),
		DrawHandler:    handlers.NewDrawHandler(drawService),
		JackpotHandler: handlers.NewJackpotHandler(jackpotService),
		TicketHandler:  handlers.NewTicketHandler(ticketService),
		WSHandler:      handlers.NewWSHandler(hub, jackpotService, log.WithField("component", "ws")),
		Tokens:         tokens,
		Metrics:        m,
		Logger:         log.WithField("component", "http"),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down server...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func newLocker(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (lock.Locker, func(), error) {
	if cfg.Lock.Backend != "redis" {
		return lock.NewLocalLocker(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.WithField("addr", cfg.Redis.Addr).Info("Draw lock backed by Redis")
	return lock.NewRedisLocker(client, cfg.Lock.TTL), func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Error closing Redis client")
		}
	}, nil
}

func newGateway(cfg *config.Config, log logrus.FieldLogger) (messenger.Gateway, error) {
	if cfg.Telegram.Mock || cfg.Telegram.BotToken == "" {
		log.Info("Winner messages go to the mock gateway")
		return messenger.NewMockGateway(log.WithField("component", "messenger")), nil
	}
	return messenger.NewTelegramGateway(cfg.Telegram.BotToken)
}
