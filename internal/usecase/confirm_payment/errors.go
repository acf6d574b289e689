package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrVerificationFailed возвращается при несовпадении подписи платежа
	ErrVerificationFailed = errors.New("confirm_payment: payment verification failed")

	// ErrInvalidState возвращается, когда бронирование нельзя подтвердить из текущего статуса
	ErrInvalidState = errors.New("confirm_payment: booking cannot be confirmed")

	// ErrDatesUnavailable возвращается, когда даты успели занять, пока платеж обрабатывался
	ErrDatesUnavailable = errors.New("confirm_payment: dates are no longer available")

	// ErrMonthlyLimitReached возвращается, когда квоту месяца добрали, пока платеж обрабатывался
	ErrMonthlyLimitReached = errors.New("confirm_payment: monthly booking limit reached")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
