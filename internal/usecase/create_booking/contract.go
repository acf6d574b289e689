package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
	"github.com/m04kA/KH-BookingService/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListConfirmedOverlapping(ctx context.Context, checkIn, checkOut time.Time) ([]*domain.Booking, error)
	CountConfirmedByMonth(ctx context.Context, year int, month time.Month) (int, error)
	UpdateOrderID(ctx context.Context, id int64, orderID string) error
}

// RuleRepository интерфейс репозитория календарных правил
type RuleRepository interface {
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.CalendarRule, error)
}

// PaymentGateway интерфейс клиента платежного шлюза
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (*payments.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
