// Package services содержит бизнес-логику каталога врачей.
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

// ErrDoctorNotFound пользователь не существует или не является врачом.
var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorRepository определяет методы для чтения каталога врачей из хранилища.
type DoctorRepository interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	ListDoctors(ctx context.Context, limit, offset int) ([]*models.DoctorProfile, error)
	ListSpecializations(ctx context.Context) ([]string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// DoctorService реализует бизнес-логику каталога врачей.
type DoctorService struct {
	repo  DoctorRepository
	cache Cache
	log   *slog.Logger
}

// NewDoctorService создает новый экземпляр DoctorService.
func NewDoctorService(repo DoctorRepository, cache Cache, log *slog.Logger) *DoctorService {
	return &DoctorService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает страницу каталога врачей, отсортированных по рейтингу.
func (s *DoctorService) List(ctx context.Context, limit, offset int) ([]*models.DoctorProfile, error) {
	var result []*models.DoctorProfile
	key := fmt.Sprintf("doctors:%d:%d", limit, offset)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListDoctors(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache doctors page", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// Get возвращает публичный профиль врача по его ID.
func (s *DoctorService) Get(ctx context.Context, doctorID int64) (*models.DoctorProfile, error) {
	user, err := s.repo.GetUser(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleDoctor {
		return nil, ErrDoctorNotFound
	}

	return &models.DoctorProfile{
		ID:              user.ID,
		FullName:        user.FullName,
		Specialization:  user.Specialization,
		LicenseNumber:   user.LicenseNumber,
		ExperienceYears: user.ExperienceYears,
		Bio:             user.Bio,
		Location:        user.Location,
		Rating:          user.Rating,
		ReviewCount:     user.ReviewCount,
	}, nil
}

// Specializations возвращает список различных специализаций врачей.
func (s *DoctorService) Specializations(ctx context.Context) ([]string, error) {
	var result []string
	const key = "doctors:specializations"
	found, err := s.cache.Get(key, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListSpecializations(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache specializations", slog.Any("err", err))
	}
	return result, nil
}
