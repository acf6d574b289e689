package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDatesUnavailable возвращается, когда вставка или подтверждение
	// нарушает exclusion constraint на пересечение дат подтвержденных бронирований
	ErrDatesUnavailable = errors.New("booking.repository: dates unavailable")

	// ErrInvalidTransition возвращается, когда статус бронирования
	// не допускает запрошенный переход
	ErrInvalidTransition = errors.New("booking.repository: invalid status transition")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
