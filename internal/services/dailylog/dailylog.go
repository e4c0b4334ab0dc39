// Package services содержит бизнес-логику для ведения дневника самочувствия,
// включая кеширование записей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/storage/repository"
)

// ErrLogNotFound запись не существует или принадлежит другому пользователю.
var ErrLogNotFound = errors.New("daily log not found")

// DailyLogRepository определяет методы для работы с записями дневника в хранилище.
type DailyLogRepository interface {
	// CreateDailyLog добавляет новую запись и возвращает её ID.
	CreateDailyLog(ctx context.Context, entry models.DailyLog) (int64, error)
	// ReadDailyLog возвращает запись по ID в пределах владельца.
	ReadDailyLog(ctx context.Context, id, userID int64) (*models.DailyLog, error)
	// ListDailyLogs возвращает записи пользователя с пагинацией.
	ListDailyLogs(ctx context.Context, userID int64, limit, offset int) ([]*models.DailyLog, error)
	// UpdateDailyLog частично обновляет запись, возвращает число обновленных строк.
	UpdateDailyLog(ctx context.Context, id, userID int64, patch models.DailyLogPatch) (int64, error)
	// RemoveDailyLog удаляет запись, возвращает число удалённых строк.
	RemoveDailyLog(ctx context.Context, id, userID int64) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// DailyLogService реализует бизнес-логику дневника самочувствия.
type DailyLogService struct {
	repo  DailyLogRepository
	cache Cache
	log   *slog.Logger
}

// NewDailyLogService создает новый экземпляр DailyLogService.
func NewDailyLogService(repo DailyLogRepository, cache Cache, log *slog.Logger) *DailyLogService {
	return &DailyLogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id, userID int64) string {
	return fmt.Sprintf("dailylog:%d:%d", userID, id)
}

// Create создает новую запись дневника для пользователя и возвращает её ID.
func (s *DailyLogService) Create(ctx context.Context, userID int64, req models.DummyDailyLog) (int64, error) {
	entry := models.DailyLog{
		UserID:           userID,
		PainLevel:        req.PainLevel,
		SleepQuality:     req.SleepQuality,
		Mood:             req.Mood,
		Symptoms:         req.Symptoms,
		Triggers:         req.Triggers,
		DietMeals:        req.DietMeals,
		PhysicalActivity: req.PhysicalActivity,
		Medications:      req.Medications,
		AdditionalNotes:  req.AdditionalNotes,
	}

	id, err := s.repo.CreateDailyLog(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new daily log", slog.Int64("id", id), slog.Int64("user_id", userID))
	return id, nil
}

// Read возвращает запись по ID, используя кеш или репозиторий.
func (s *DailyLogService) Read(ctx context.Context, id, userID int64) (*models.DailyLog, error) {
	var result *models.DailyLog
	key := cacheKey(id, userID)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadDailyLog(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrLogNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache daily log", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает записи пользователя от новых к старым с пагинацией.
func (s *DailyLogService) List(ctx context.Context, userID int64, limit, offset int) ([]*models.DailyLog, error) {
	return s.repo.ListDailyLogs(ctx, userID, limit, offset)
}

// Update частично обновляет запись и инвалидирует кеш.
func (s *DailyLogService) Update(ctx context.Context, id, userID int64, patch models.DailyLogPatch) error {
	count, err := s.repo.UpdateDailyLog(ctx, id, userID, patch)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrLogNotFound
	}

	key := cacheKey(id, userID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
	}
	s.log.Info("updated daily log", slog.Int64("id", id))
	return nil
}

// Remove удаляет запись и инвалидирует кеш.
func (s *DailyLogService) Remove(ctx context.Context, id, userID int64) error {
	key := cacheKey(id, userID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), slog.Any("err", err))
	}

	count, err := s.repo.RemoveDailyLog(ctx, id, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrLogNotFound
	}
	return nil
}
