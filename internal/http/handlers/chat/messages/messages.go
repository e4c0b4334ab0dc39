// Package messages реализует HTTP-обработчик истории сообщений чата.
package messages

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/serenecare/internal/http/middlewarectx"
	"github.com/magabrotheeeer/serenecare/internal/http/response"
	"github.com/magabrotheeeer/serenecare/internal/lib/sl"
	"github.com/magabrotheeeer/serenecare/internal/models"
	services "github.com/magabrotheeeer/serenecare/internal/services/chat"
)

// Handler управляет HTTP-запросами истории сообщений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения истории чата.
type Service interface {
	Messages(ctx context.Context, chatID, userID int64) ([]*models.Message, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary История сообщений чата
// @Description Возвращает сообщения чата от старых к новым. Доступно только участникам.
// @Tags Chats
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID чата"
// @Success 200 {object} map[string]any "Сообщения чата"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не участник чата"
// @Failure 404 {object} response.ErrorResponse "Чат не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /chats/{id}/messages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.messages"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	chatID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	sess, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Messages(r.Context(), int64(chatID), sess.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChatNotFound):
			log.Error("chat not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("chat not found"))
		case errors.Is(err, services.ErrForbidden):
			log.Error("user is not a participant", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		default:
			log.Error("failed to list messages", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal service error"))
		}
		return
	}

	log.Info("list messages", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"messages":   res,
	}))
}
