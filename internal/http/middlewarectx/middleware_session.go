// Package middlewarectx содержит HTTP middleware для проверки сессий и ролей.
//
// SessionMiddleware читает JWT из заголовка Authorization, проверяет его
// подпись и наличие серверной сессии и кладет сессию в контекст запроса.
// Посетитель без токена отправляется на страницу логина; посетитель с
// отозванным или истекшим токеном получает 401 и просьбу войти заново.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/serenecare/internal/gate"
	"github.com/magabrotheeeer/serenecare/internal/http/response"
	"github.com/magabrotheeeer/serenecare/internal/lib/jwt"
	"github.com/magabrotheeeer/serenecare/internal/lib/sl"
	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey — ключ, под которым сессия лежит в контексте запроса.
const SessionKey Key = "session"

// SessionStore описывает методы хранилища сессий, нужные middleware.
type SessionStore interface {
	Get(token string) (session.Session, bool, error)
	Clear(token string) error
}

// WithSession кладет сессию в контекст. Используется middleware и тестами
// обработчиков.
func WithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// SessionFromContext достает сессию из контекста запроса.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(session.Session)
	return sess, ok
}

// SessionMiddleware возвращает HTTP middleware, который восстанавливает сессию
// по JWT из заголовка Authorization.
//
// Запрос без токена — посетитель, который никогда не входил: ответ 303
// с редиректом на страницу логина, без сообщения об ошибке. Запрос с токеном,
// который не проходит проверку или чья сессия уже отозвана, получает 401
// с просьбой войти заново, а остатки сессии удаляются.
func SessionMiddleware(store SessionStore, maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				decision := gate.Guard(session.Session{})
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			if _, err := maker.ParseToken(tokenStr); err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				if clearErr := store.Clear(tokenStr); clearErr != nil {
					log.Error("failed to clear session", sl.Err(clearErr))
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired, please log in again"))
				return
			}

			sess, found, err := store.Get(tokenStr)
			if err != nil {
				log.Error("failed to read session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if !found {
				log.Error("session revoked or expired")
				if clearErr := store.Clear(tokenStr); clearErr != nil {
					log.Error("failed to clear session", sl.Err(clearErr))
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired, please log in again"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireRole возвращает middleware, который пропускает дальше только
// сессии с указанной ролью.
func RequireRole(role models.Role, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"

			sess, ok := SessionFromContext(r.Context())
			if !ok {
				log.Error("session missing in context", slog.String("op", op))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired, please log in again"))
				return
			}
			if !gate.RoleVisible(sess, role) {
				log.Error("access denied for role",
					slog.String("op", op),
					slog.String("role", string(sess.Role)))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
