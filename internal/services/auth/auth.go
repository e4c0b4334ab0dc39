// Package services содержит логику бизнес-уровня для регистрации,
// входа и выхода пользователей SereneCare.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/serenecare/internal/lib/jwt"
	"github.com/magabrotheeeer/serenecare/internal/lib/password"
	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/session"
	"github.com/magabrotheeeer/serenecare/internal/storage/repository"
)

// Ошибки бизнес-уровня, которые обработчики переводят в HTTP-статусы.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("unknown role")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore описывает контракт хранилища сессий.
type SessionStore interface {
	Set(sess session.Session) error
	Clear(token string) error
}

// RegisterRequest данные регистрации. Для роли DOCTOR дополнительно
// передаются специализация и номер лицензии.
type RegisterRequest struct {
	Username       string
	Email          string
	Password       string
	FullName       string
	Role           models.Role
	Specialization string
	LicenseNumber  string
}

// AuthService отвечает за регистрацию, вход и выход.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Сессия при регистрации не создается: клиент отправляется на страницу входа.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	if req.Role == "" {
		req.Role = models.RolePatient
	}
	if !req.Role.Valid() {
		return 0, ErrInvalidRole
	}

	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return 0, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return 0, err
	}
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return 0, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return 0, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hashed,
		FullName:       req.FullName,
		Role:           req.Role,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя, генерирует JWT и записывает сессию.
// Все пять полей сессии записываются одной операцией.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (session.Session, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return session.Session{}, ErrInvalidCredentials
		}
		return session.Session{}, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return session.Session{}, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, string(user.Role), user.ID)
	if err != nil {
		return session.Session{}, err
	}
	sess := session.Session{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	if err := s.sessions.Set(sess); err != nil {
		return session.Session{}, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Logout удаляет сессию по токену. Повторный выход безвреден.
func (s *AuthService) Logout(_ context.Context, token string) error {
	return s.sessions.Clear(token)
}
