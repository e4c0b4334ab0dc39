// Package list реализует HTTP-обработчик списка чатов пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/serenecare/internal/http/middlewarectx"
	"github.com/magabrotheeeer/serenecare/internal/http/response"
	"github.com/magabrotheeeer/serenecare/internal/lib/sl"
	"github.com/magabrotheeeer/serenecare/internal/models"
)

// Handler управляет HTTP-запросами списка чатов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка чатов.
type Service interface {
	List(ctx context.Context, userID int64, role models.Role) ([]*models.ChatSummary, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список чатов
// @Description Возвращает чаты текущего пользователя от свежих к старым.
// @Tags Chats
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список чатов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /chats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.list"
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

	res, err := h.service.List(r.Context(), sess.UserID, sess.Role)
	if err != nil {
		log.Error("failed to list chats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list"))
		return
	}

	log.Info("list chats", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"chats":      res,
	}))
}
