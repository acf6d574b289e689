package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/KH-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/KH-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGuestName    = "имя гостя должно содержать минимум 3 буквы"
	msgInvalidEmail        = "некорректный email"
	msgInvalidPhone        = "некорректный номер телефона"
	msgInvalidGuestsCount  = "некорректное количество гостей"
	msgInvalidDates        = "дата выезда должна быть позже даты заезда"
	msgDateInPast          = "дата заезда уже прошла"
	msgStayTooLong         = "слишком длительное проживание"
	msgDatesUnavailable    = "выбранные даты недоступны"
	msgMonthlyLimitReached = "достигнут лимит бронирований на этот месяц"
	msgPaymentOrderFailed  = "не удалось создать платежный заказ, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrDatesUnavailable):
			h.logger.Warn("POST /bookings - Dates unavailable: checkIn=%s, checkOut=%s", req.CheckIn, req.CheckOut)
			handlers.RespondConflict(w, msgDatesUnavailable)

		case errors.Is(err, createBooking.ErrMonthlyLimitReached):
			h.logger.Warn("POST /bookings - Monthly limit reached: checkIn=%s", req.CheckIn)
			handlers.RespondConflict(w, msgMonthlyLimitReached)

		case errors.Is(err, createBooking.ErrInvalidGuestName):
			handlers.RespondBadRequest(w, msgInvalidGuestName)

		case errors.Is(err, createBooking.ErrInvalidEmail):
			handlers.RespondBadRequest(w, msgInvalidEmail)

		case errors.Is(err, createBooking.ErrInvalidPhone):
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrInvalidGuestsCount):
			handlers.RespondBadRequest(w, msgInvalidGuestsCount)

		case errors.Is(err, createBooking.ErrInvalidDates):
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, createBooking.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrStayTooLong):
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrPaymentOrderFailed):
			h.logger.Error("POST /bookings - Payment order failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentOrderFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: reference=%s, total=%d",
		result.Reference, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
