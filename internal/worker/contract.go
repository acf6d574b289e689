package worker

import (
	"context"
	"time"

	"github.com/m04kA/KH-BookingService/internal/integrations/calendarsync"
	"github.com/m04kA/KH-BookingService/internal/integrations/mailer"
	"github.com/m04kA/KH-BookingService/pkg/jobqueue"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExpirePending(ctx context.Context, olderThan time.Time) (int64, error)
}

// TaskQueue интерфейс очереди фоновых задач
type TaskQueue interface {
	Publish(ctx context.Context, taskType string, payload interface{}) error
	Consume(ctx context.Context, handler func(ctx context.Context, task *jobqueue.Task) error)
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	SendConfirmation(ctx context.Context, email *mailer.ConfirmationEmail) error
}

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	CreateStayEvent(ctx context.Context, event *calendarsync.StayEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
