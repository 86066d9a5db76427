package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/habitta/internal/audit"
	"github.com/BruksfildServices01/habitta/internal/auth"
	"github.com/BruksfildServices01/habitta/internal/avatar"
	"github.com/BruksfildServices01/habitta/internal/cache"
	"github.com/BruksfildServices01/habitta/internal/config"
	dbpkg "github.com/BruksfildServices01/habitta/internal/db"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/jobs"
	"github.com/BruksfildServices01/habitta/internal/locale"
	"github.com/BruksfildServices01/habitta/internal/logging"
	"github.com/BruksfildServices01/habitta/internal/mailer"
	"github.com/BruksfildServices01/habitta/internal/metrics"
	"github.com/BruksfildServices01/habitta/internal/middleware"
	"github.com/BruksfildServices01/habitta/internal/routes"
	"github.com/BruksfildServices01/habitta/internal/storage"
)

func main() {

	cfg := config.Load()
	logger := logging.Setup(cfg)
	locale.SetTimezone(cfg.Timezone)

	gin.SetMode(cfg.GinMode)

	db := dbpkg.NewDB(cfg)
	m := metrics.New()

	// ------------------------------
	// Redis (opcional)
	// ------------------------------
	var (
		revoker     auth.Revoker = auth.NopRevoker{}
		avatarCache avatar.Cache = avatar.NoCache{}
		redisClient *cache.Client
	)
	if cfg.RedisEnabled() {
		client, err := cache.NewClient(cfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect redis")
		}
		redisClient = client
		revoker = cache.NewSessionStore(client)
		avatarCache = cache.NewAvatarCache(client, cfg.AvatarCacheTTL)
	} else {
		logger.Warn("REDIS_ADDR not set: logout only clears the cookie and avatars are not cached")
	}

	driver, err := storage.New(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to init storage")
	}

	mail, err := mailer.New(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to init mailer")
	}

	dispatcher := audit.NewDispatcher(audit.New(db))
	dispatcher.OnDrop(m.AuditDropped.Inc)

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SessionRememberTTL, revoker)

	// ------------------------------
	// Jobs
	// ------------------------------
	scheduler := jobs.NewScheduler()
	users := repository.NewUserGormRepository(db)
	if err := scheduler.Hourly("purge_reset_tokens", func(ctx context.Context) error {
		return jobs.PurgeResetTokens(ctx, users, func(n int64) {
			m.TokensPurged.Add(float64(n))
		})
	}); err != nil {
		logger.WithError(err).Fatal("failed to schedule jobs")
	}
	scheduler.Start()

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.New()
	r.MaxMultipartMemory = avatar.MaxBytes
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Metrics(m),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)

	routes.RegisterRoutes(r, db, cfg, routes.Services{
		Sessions:    sessions,
		Storage:     driver,
		AvatarCache: avatarCache,
		Mailer:      mail,
		Audit:       dispatcher,
		Metrics:     m,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}

	scheduler.Stop()
	dispatcher.Close()

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
