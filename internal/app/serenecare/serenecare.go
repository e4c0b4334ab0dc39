// Package serenecare собирает основное приложение: подключения к хранилищам,
// сервисы, маршруты и HTTP-сервер.
package serenecare

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/serenecare/internal/cache"
	"github.com/magabrotheeeer/serenecare/internal/config"
	"github.com/magabrotheeeer/serenecare/internal/lib/jwt"
	"github.com/magabrotheeeer/serenecare/internal/migrations"
	authservice "github.com/magabrotheeeer/serenecare/internal/services/auth"
	chatservice "github.com/magabrotheeeer/serenecare/internal/services/chat"
	dailylogservice "github.com/magabrotheeeer/serenecare/internal/services/dailylog"
	doctorservice "github.com/magabrotheeeer/serenecare/internal/services/doctor"
	profileservice "github.com/magabrotheeeer/serenecare/internal/services/profile"
	"github.com/magabrotheeeer/serenecare/internal/session"
	"github.com/magabrotheeeer/serenecare/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	sessionStore := session.NewStore(cacheRedis, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, sessionStore, jwtMaker)
	dailyLogService := dailylogservice.NewDailyLogService(db, cacheRedis, logger)
	chatService := chatservice.NewChatService(db, logger)
	doctorService := doctorservice.NewDoctorService(db, cacheRedis, logger)
	profileService := profileservice.NewProfileService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:     authService,
		DailyLog: dailyLogService,
		Chat:     chatService,
		Doctor:   doctorService,
		Profile:  profileService,
	}, sessionStore, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
