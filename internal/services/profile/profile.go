// Package services содержит бизнес-логику личного кабинета пользователя.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/storage/repository"
)

// ErrUserNotFound пользователь не существует.
var ErrUserNotFound = errors.New("user not found")

// ProfileRepository определяет методы для работы с профилем в хранилище.
type ProfileRepository interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, fullName, bio, location string) (*models.User, error)
}

// UserView проекция пользователя для личного кабинета, без хэша пароля.
type UserView struct {
	ID              int64       `json:"id"`
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	FullName        string      `json:"full_name"`
	Role            models.Role `json:"role"`
	Specialization  string      `json:"specialization,omitempty"`
	LicenseNumber   string      `json:"license_number,omitempty"`
	ExperienceYears int         `json:"experience_years,omitempty"`
	Bio             string      `json:"bio,omitempty"`
	Location        string      `json:"location,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// ProfileService реализует бизнес-логику личного кабинета.
type ProfileService struct {
	repo ProfileRepository
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// Get возвращает профиль пользователя.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*UserView, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserView(user), nil
}

// Update обновляет редактируемые поля профиля и возвращает обновленный профиль.
func (s *ProfileService) Update(ctx context.Context, userID int64, fullName, bio, location string) (*UserView, error) {
	user, err := s.repo.UpdateProfile(ctx, userID, fullName, bio, location)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.log.Info("profile updated", slog.Int64("user_id", userID))
	return toUserView(user), nil
}

func toUserView(user *models.User) *UserView {
	return &UserView{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            user.Role,
		Specialization:  user.Specialization,
		LicenseNumber:   user.LicenseNumber,
		ExperienceYears: user.ExperienceYears,
		Bio:             user.Bio,
		Location:        user.Location,
		CreatedAt:       user.CreatedAt,
	}
}
