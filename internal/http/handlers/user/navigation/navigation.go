// Package navigation реализует HTTP-обработчик ролевой навигации.
//
// Обработчик собирает пункты меню для владельца сессии: общие пункты видны
// всем, ролевые только пользователям с точно совпадающей ролью. Пункт
// "Doctors" показывается пациенту, "My Patients" врачу, и никогда обоим сразу.
package navigation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/serenecare/internal/gate"
	"github.com/magabrotheeeer/serenecare/internal/http/middlewarectx"
	"github.com/magabrotheeeer/serenecare/internal/http/response"
	"github.com/magabrotheeeer/serenecare/internal/models"
)

// Item один пункт меню.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Handler управляет HTTP-запросами навигации.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Навигация для текущей сессии
// @Description Возвращает пункты меню, видимые владельцу сессии с учетом роли.
// @Tags Profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Пункты меню"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /navigation [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.navigation"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	items := []Item{
		{Label: "Daily Log", Path: "/dailylogs"},
		{Label: "Chats", Path: "/chats"},
		{Label: "Profile", Path: "/profile"},
	}
	if gate.RoleVisible(sess, models.RolePatient) {
		items = append(items, Item{Label: "Doctors", Path: "/doctors"})
	}
	if gate.RoleVisible(sess, models.RoleDoctor) {
		items = append(items, Item{Label: "My Patients", Path: "/chats"})
	}

	log.Info("navigation built", slog.String("role", string(sess.Role)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": items,
	}))
}
