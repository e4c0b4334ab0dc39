// Package start реализует HTTP-обработчик открытия чата с врачом.
//
// Начать чат может только пациент: маршрут дополнительно закрыт ролевым
// middleware, а сервис проверяет роль еще раз. Повторный запрос для той же
// пары пациент-врач возвращает уже существующий чат.
package start

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/serenecare/internal/http/middlewarectx"
	"github.com/magabrotheeeer/serenecare/internal/http/response"
	"github.com/magabrotheeeer/serenecare/internal/lib/sl"
	"github.com/magabrotheeeer/serenecare/internal/models"
	services "github.com/magabrotheeeer/serenecare/internal/services/chat"
)

// Request — структура входных данных для открытия чата.
type Request struct {
	DoctorID int64 `json:"doctor_id" validate:"required"`
}

// Handler управляет HTTP-запросами открытия чата.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики открытия чата.
type Service interface {
	Start(ctx context.Context, patientID int64, patientRole models.Role, doctorID int64) (*models.Chat, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Открыть чат с врачом
// @Description Открывает чат пациента с выбранным врачом или возвращает уже существующий.
// @Tags Chats
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "ID врача"
// @Success 200 {object} response.OKResponse "Чат"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Начать чат может только пациент"
// @Failure 404 {object} response.ErrorResponse "Врач не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /chats/start [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.start"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	sess, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	chat, err := h.service.Start(r.Context(), sess.UserID, sess.Role, req.DoctorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPatient):
			log.Error("only a patient can start a chat", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("only a patient can start a chat"))
		case errors.Is(err, services.ErrNotDoctor):
			log.Error("doctor not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("doctor not found"))
		default:
			log.Error("failed to start chat", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal service error"))
		}
		return
	}

	log.Info("chat started", slog.Int64("chat_id", chat.ID))
	render.JSON(w, r, response.OKWithData(chat))
}
