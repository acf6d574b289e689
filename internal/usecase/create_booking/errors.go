package create_booking

import "errors"

var (
	// ErrInvalidGuestName возвращается при некорректном имени гостя
	ErrInvalidGuestName = errors.New("create_booking: invalid guest name")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("create_booking: invalid email")

	// ErrInvalidPhone возвращается при некорректном номере телефона
	ErrInvalidPhone = errors.New("create_booking: invalid phone number")

	// ErrInvalidGuestsCount возвращается при некорректном количестве гостей
	ErrInvalidGuestsCount = errors.New("create_booking: invalid guests count")

	// ErrInvalidDates возвращается при некорректном диапазоне дат
	ErrInvalidDates = errors.New("create_booking: invalid date range")

	// ErrDateInPast возвращается, когда дата заезда уже прошла
	ErrDateInPast = errors.New("create_booking: check-in date is in the past")

	// ErrStayTooLong возвращается, когда длительность проживания превышает лимит
	ErrStayTooLong = errors.New("create_booking: stay is too long")

	// ErrDatesUnavailable возвращается, когда даты заняты или заблокированы
	ErrDatesUnavailable = errors.New("create_booking: dates are not available")

	// ErrMonthlyLimitReached возвращается при превышении месячной квоты бронирований
	ErrMonthlyLimitReached = errors.New("create_booking: monthly booking limit reached")

	// ErrPaymentOrderFailed возвращается, когда платежный шлюз не смог создать заказ
	ErrPaymentOrderFailed = errors.New("create_booking: failed to create payment order")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
