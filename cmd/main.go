// Package main wires the buoy notification service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/yakoovad/buoy-notify/internal/api"
	"github.com/yakoovad/buoy-notify/internal/auth"
	"github.com/yakoovad/buoy-notify/internal/config"
	"github.com/yakoovad/buoy-notify/internal/db"
	"github.com/yakoovad/buoy-notify/internal/event"
	"github.com/yakoovad/buoy-notify/internal/mail"
	"github.com/yakoovad/buoy-notify/internal/repository"
	"github.com/yakoovad/buoy-notify/internal/service"
	"github.com/yakoovad/buoy-notify/pkg/logger"
	"go.uber.org/zap"
)

const version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	log.Info("starting application", zap.String("version", version))

	pool, err := newPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	log.Info("database connection established")

	migrateCtx, cancel := context.WithTimeout(ctx, cfg.Postgres.MigrateTimeout)
	err = db.Migrate(migrateCtx, pool)
	cancel()
	if err != nil {
		log.Fatal("failed to apply migrations", zap.Error(err))
	}

	issuer, err := auth.NewIssuer(cfg.Auth.Secret)
	if err != nil {
		log.Fatal("failed to create token issuer", zap.Error(err))
	}

	links := service.SiteLinks{
		Prefix:          cfg.Notify.Prefix,
		SiteName:        cfg.Site.Name,
		ServerName:      cfg.Site.ServerName,
		AdminURL:        cfg.Site.AdminURL,
		HomeURL:         cfg.Site.HomeURL,
		RegistrationURL: cfg.Site.RegistrationURL,
		FromLocal:       cfg.Mail.FromLocal,
	}
	mailer := newMailer(cfg.Mail, links)

	transactor := db.NewPgxTransactor(pool)

	teamRepo := repository.NewPgxTeamRepository(pool)
	userRepo := repository.NewPgxUserRepository(pool)
	alertRepo := repository.NewPgxAlertRepository(pool)
	notificationRepo := repository.NewPgxNotificationRepository(pool, cfg.Notify.Prefix)

	queue := service.NewQueueService(transactor).WithNotificationRepo(notificationRepo)
	invites := service.NewInviteService(links).WithQueue(queue).WithTeamRepo(teamRepo).WithUserRepo(userRepo).WithMailer(mailer)
	alerts := service.NewAlertService(links).WithAlertRepo(alertRepo).WithTeamRepo(teamRepo).WithUserRepo(userRepo).WithMailer(mailer)

	dispatcher := event.NewDispatcher()
	service.RegisterHandlers(dispatcher, invites, alerts)

	checker, err := api.NewHealthChecker(version, api.PostgresCheck(pool))
	if err != nil {
		log.Fatal("failed to create health checker", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	api.NewHandler(log, dispatcher, issuer).WithHealthChecker(checker).RegisterRoutes(e)

	go func() {
		log.Info("server starting", zap.String("addr", cfg.ServerAddr()))
		if err := e.Start(cfg.ServerAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown", zap.Duration("timeout", cfg.Server.ShutdownTimeout), zap.Error(err))
	}
}

func newPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func newMailer(cfg config.MailConfig, links service.SiteLinks) mail.Mailer {
	if cfg.Driver == config.MailDriverLog {
		return mail.Log{}
	}
	return &mail.SMTP{
		Host: cfg.Host,
		Port: cfg.Port,
		User: cfg.User,
		Pass: cfg.Password,
		From: links.FromAddress(),
	}
}
