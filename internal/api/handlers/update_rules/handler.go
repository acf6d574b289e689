package update_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/KH-BookingService/internal/api/handlers"
	"github.com/m04kA/KH-BookingService/internal/service/rules"
	"github.com/m04kA/KH-BookingService/internal/service/rules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты правила, ожидается YYYY-MM-DD"
	msgInvalidPrice       = "цена не может быть отрицательной"
	msgInvalidStatus      = "статус правила должен быть available или blocked"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidDate):
			h.logger.Warn("POST /admin/rules - Invalid rule date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rules.ErrInvalidPrice):
			h.logger.Warn("POST /admin/rules - Invalid rule price: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPrice)

		case errors.Is(err, rules.ErrInvalidStatus):
			h.logger.Warn("POST /admin/rules - Invalid rule status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("POST /admin/rules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/rules - Failed to update rules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/rules - Rules updated, total=%d", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
