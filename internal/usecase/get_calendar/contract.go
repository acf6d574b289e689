package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmedFrom(ctx context.Context, from time.Time) ([]*domain.Booking, error)
}

// RuleRepository интерфейс репозитория календарных правил
type RuleRepository interface {
	ListAll(ctx context.Context) ([]*domain.CalendarRule, error)
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
