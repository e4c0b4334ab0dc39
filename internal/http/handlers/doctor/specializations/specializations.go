// Package specializations реализует HTTP-обработчик списка специализаций врачей.
package specializations

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/serenecare/internal/http/response"
	"github.com/magabrotheeeer/serenecare/internal/lib/sl"
)

// Handler управляет HTTP-запросами списка специализаций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка специализаций.
type Service interface {
	Specializations(ctx context.Context) ([]string, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Специализации врачей
// @Description Возвращает список различных специализаций для фильтров поиска.
// @Tags Doctors
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список специализаций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /doctors/specializations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.doctor.specializations"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Specializations(r.Context())
	if err != nil {
		log.Error("failed to list specializations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list"))
		return
	}

	log.Info("list specializations", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"specializations": res,
	}))
}
