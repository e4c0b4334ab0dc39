package session

import (
	"fmt"
	"time"
)

// Cache описывает методы хранилища, в котором живут сессии.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Store единственная точка доступа к выданным сессиям.
type Store struct {
	cache Cache
	ttl   time.Duration
}

// NewStore создает Store поверх кеша; ttl совпадает со сроком жизни токена,
// чтобы запись не переживала сам токен.
func NewStore(cache Cache, ttl time.Duration) *Store {
	return &Store{
		cache: cache,
		ttl:   ttl,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Set записывает все пять полей сессии одной операцией.
// Вызывается только после подтвержденного успешного логина;
// входные данные здесь не валидируются.
func (s *Store) Set(sess Session) error {
	const op = "session.Set"
	if err := s.cache.Set(sessionKey(sess.Token), sess, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get возвращает сессию по токену. Отсутствие записи — не ошибка:
// возвращается пустая сессия и found=false.
func (s *Store) Get(token string) (Session, bool, error) {
	const op = "session.Get"
	if token == "" {
		return Session{}, false, nil
	}
	var sess Session
	found, err := s.cache.Get(sessionKey(token), &sess)
	if err != nil {
		return Session{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return Session{}, false, nil
	}
	return sess, true, nil
}

// Clear удаляет сессию по токену. Повторный вызов безвреден:
// удаление отсутствующего ключа ничего не меняет.
func (s *Store) Clear(token string) error {
	const op = "session.Clear"
	if token == "" {
		return nil
	}
	if err := s.cache.Invalidate(sessionKey(token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
