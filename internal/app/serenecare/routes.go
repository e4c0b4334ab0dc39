// Package serenecare предоставляет маршруты для основного приложения.
package serenecare

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/serenecare/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/auth/register"
	chatlist "github.com/magabrotheeeer/serenecare/internal/http/handlers/chat/list"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/chat/messages"
	chatremove "github.com/magabrotheeeer/serenecare/internal/http/handlers/chat/remove"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/chat/send"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/chat/start"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/daily/create"
	dailylist "github.com/magabrotheeeer/serenecare/internal/http/handlers/daily/list"
	dailyread "github.com/magabrotheeeer/serenecare/internal/http/handlers/daily/read"
	dailyremove "github.com/magabrotheeeer/serenecare/internal/http/handlers/daily/remove"
	dailyupdate "github.com/magabrotheeeer/serenecare/internal/http/handlers/daily/update"
	doctorlist "github.com/magabrotheeeer/serenecare/internal/http/handlers/doctor/list"
	doctorread "github.com/magabrotheeeer/serenecare/internal/http/handlers/doctor/read"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/doctor/specializations"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/health"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/user/navigation"
	"github.com/magabrotheeeer/serenecare/internal/http/handlers/user/profile"
	profileupdate "github.com/magabrotheeeer/serenecare/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/serenecare/internal/http/middlewarectx"
	"github.com/magabrotheeeer/serenecare/internal/lib/jwt"
	"github.com/magabrotheeeer/serenecare/internal/models"
	authservice "github.com/magabrotheeeer/serenecare/internal/services/auth"
	chatservice "github.com/magabrotheeeer/serenecare/internal/services/chat"
	dailylogservice "github.com/magabrotheeeer/serenecare/internal/services/dailylog"
	doctorservice "github.com/magabrotheeeer/serenecare/internal/services/doctor"
	profileservice "github.com/magabrotheeeer/serenecare/internal/services/profile"
	"github.com/magabrotheeeer/serenecare/internal/session"
)

// Services объединяет сервисы, используемые HTTP-обработчиками.
type Services struct {
	Auth     *authservice.AuthService
	DailyLog *dailylogservice.DailyLogService
	Chat     *chatservice.ChatService
	Doctor   *doctorservice.DoctorService
	Profile  *profileservice.ProfileService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svcs *Services, sessionStore *session.Store, jwtMaker jwt.Maker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svcs.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svcs.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessionStore, jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/logout", logout.New(logger, svcs.Auth).ServeHTTP)

			r.Post("/dailylogs", create.New(logger, svcs.DailyLog).ServeHTTP)
			r.Get("/dailylogs", dailylist.New(logger, svcs.DailyLog).ServeHTTP)
			r.Get("/dailylogs/{id}", dailyread.New(logger, svcs.DailyLog).ServeHTTP)
			r.Patch("/dailylogs/{id}", dailyupdate.New(logger, svcs.DailyLog).ServeHTTP)
			r.Delete("/dailylogs/{id}", dailyremove.New(logger, svcs.DailyLog).ServeHTTP)

			r.Get("/doctors", doctorlist.New(logger, svcs.Doctor).ServeHTTP)
			r.Get("/doctors/specializations", specializations.New(logger, svcs.Doctor).ServeHTTP)
			r.Get("/doctors/{id}", doctorread.New(logger, svcs.Doctor).ServeHTTP)

			r.Get("/chats", chatlist.New(logger, svcs.Chat).ServeHTTP)
			r.Get("/chats/{id}/messages", messages.New(logger, svcs.Chat).ServeHTTP)
			r.Post("/chats/{id}/messages", send.New(logger, svcs.Chat).ServeHTTP)
			r.Delete("/chats/{id}", chatremove.New(logger, svcs.Chat).ServeHTTP)

			r.Get("/profile", profile.New(logger, svcs.Profile).ServeHTTP)
			r.Patch("/profile", profileupdate.New(logger, svcs.Profile).ServeHTTP)
			r.Get("/navigation", navigation.New(logger).ServeHTTP)

			// Открыть чат может только пациент
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RolePatient, logger))
				r.Post("/chats/start", start.New(logger, svcs.Chat).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
