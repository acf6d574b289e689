package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListConfirmedOverlapping(ctx context.Context, checkIn, checkOut time.Time) ([]*domain.Booking, error)
	CountConfirmedByMonth(ctx context.Context, year int, month time.Month) (int, error)
	ConfirmWithPayment(ctx context.Context, id int64, orderID, paymentID, signature string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// PaymentVerifier интерфейс проверки подписи платежа
type PaymentVerifier interface {
	VerifySignature(orderID, paymentID, signature string) error
}

// Notifier интерфейс постановки уведомлений в очередь
// Уведомления отправляются best-effort, ошибка не влияет на подтверждение
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
