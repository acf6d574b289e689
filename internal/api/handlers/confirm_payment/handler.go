package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/KH-BookingService/internal/api/handlers"
	confirmPayment "github.com/m04kA/KH-BookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgVerificationFailed = "проверка платежа не пройдена"
	msgInvalidState       = "бронирование нельзя подтвердить"
	msgDatesUnavailable   = "даты уже заняты, платеж будет возвращен"
	msgMonthlyLimit       = "лимит бронирований на месяц исчерпан, платеж будет возвращен"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{reference}/confirm-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%s/confirm-payment - Invalid request body: %v", reference, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reference))
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%s/confirm-payment - Booking not found", reference)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrVerificationFailed):
			h.logger.Warn("POST /bookings/%s/confirm-payment - Verification failed", reference)
			handlers.RespondBadRequest(w, msgVerificationFailed)

		case errors.Is(err, confirmPayment.ErrInvalidState):
			h.logger.Warn("POST /bookings/%s/confirm-payment - Invalid state", reference)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, confirmPayment.ErrDatesUnavailable):
			h.logger.Warn("POST /bookings/%s/confirm-payment - Dates unavailable", reference)
			handlers.RespondConflict(w, msgDatesUnavailable)

		case errors.Is(err, confirmPayment.ErrMonthlyLimitReached):
			h.logger.Warn("POST /bookings/%s/confirm-payment - Monthly limit reached", reference)
			handlers.RespondConflict(w, msgMonthlyLimit)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%s/confirm-payment - Invalid input: %v", reference, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/%s/confirm-payment - Failed to confirm payment: %v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%s/confirm-payment - Payment confirmed, payment_id=%s", reference, result.PaymentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
