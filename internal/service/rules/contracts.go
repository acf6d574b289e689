package rules

import (
	"context"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
)

// RuleRepository интерфейс репозитория календарных правил
type RuleRepository interface {
	Upsert(ctx context.Context, rule *domain.CalendarRule) (*domain.CalendarRule, error)
	ListAll(ctx context.Context) ([]*domain.CalendarRule, error)
	DeleteByDate(ctx context.Context, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
