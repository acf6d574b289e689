package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/KH-BookingService/internal/domain"
	"github.com/m04kA/KH-BookingService/internal/integrations/calendarsync"
	"github.com/m04kA/KH-BookingService/internal/integrations/mailer"
	"github.com/m04kA/KH-BookingService/pkg/jobqueue"
	"github.com/m04kA/KH-BookingService/pkg/types"
)

// TaskTypeBookingConfirmed задача отправки уведомлений о подтвержденном бронировании
const TaskTypeBookingConfirmed = "booking_confirmed"

// BookingConfirmedPayload данные задачи booking_confirmed
type BookingConfirmedPayload struct {
	Reference   string           `json:"reference"`
	GuestName   string           `json:"guest_name"`
	Email       string           `json:"email"`
	CheckIn     types.DateString `json:"check_in"`
	CheckOut    types.DateString `json:"check_out"`
	GuestsCount int              `json:"guests_count"`
	TotalAmount int64            `json:"total_amount"`
}

// NotificationProducer кладет задачи уведомлений в очередь
type NotificationProducer struct {
	queue TaskQueue
}

// NewNotificationProducer создает producer уведомлений
func NewNotificationProducer(queue TaskQueue) *NotificationProducer {
	return &NotificationProducer{queue: queue}
}

// BookingConfirmed ставит в очередь уведомления о подтвержденном бронировании
func (p *NotificationProducer) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return p.queue.Publish(ctx, TaskTypeBookingConfirmed, &BookingConfirmedPayload{
		Reference:   booking.Reference,
		GuestName:   booking.GuestName,
		Email:       booking.Email,
		CheckIn:     types.NewDateString(booking.CheckIn),
		CheckOut:    types.NewDateString(booking.CheckOut),
		GuestsCount: booking.GuestsCount,
		TotalAmount: booking.TotalAmount,
	})
}

// DirectNotifier отправляет уведомления синхронно, без очереди
// Используется, когда Redis выключен в конфигурации
type DirectNotifier struct {
	mailer   MailerClient
	calendar CalendarClient
	logger   Logger
}

// NewDirectNotifier создает синхронный notifier
func NewDirectNotifier(mailerClient MailerClient, calendarClient CalendarClient, logger Logger) *DirectNotifier {
	return &DirectNotifier{
		mailer:   mailerClient,
		calendar: calendarClient,
		logger:   logger,
	}
}

// BookingConfirmed отправляет письмо и событие календаря в момент вызова
func (n *DirectNotifier) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	if err := n.mailer.SendConfirmation(ctx, &mailer.ConfirmationEmail{
		To:          booking.Email,
		GuestName:   booking.GuestName,
		Reference:   booking.Reference,
		CheckIn:     types.NewDateString(booking.CheckIn),
		CheckOut:    types.NewDateString(booking.CheckOut),
		GuestsCount: booking.GuestsCount,
		TotalAmount: booking.TotalAmount,
	}); err != nil {
		n.logger.Error("notifier: failed to send confirmation email reference=%s: %v", booking.Reference, err)
	}

	if err := n.calendar.CreateStayEvent(ctx, &calendarsync.StayEvent{
		Reference: booking.Reference,
		GuestName: booking.GuestName,
		CheckIn:   types.NewDateString(booking.CheckIn),
		CheckOut:  types.NewDateString(booking.CheckOut),
	}); err != nil {
		n.logger.Error("notifier: failed to create calendar event reference=%s: %v", booking.Reference, err)
	}

	return nil
}

// NotifierWorker разбирает очередь уведомлений: письмо гостю
// и событие во внешнем календаре. Обе отправки best-effort
type NotifierWorker struct {
	queue    TaskQueue
	mailer   MailerClient
	calendar CalendarClient
	logger   Logger
}

// NewNotifierWorker создает воркер отправки уведомлений
func NewNotifierWorker(
	queue TaskQueue,
	mailerClient MailerClient,
	calendarClient CalendarClient,
	logger Logger,
) *NotifierWorker {
	return &NotifierWorker{
		queue:    queue,
		mailer:   mailerClient,
		calendar: calendarClient,
		logger:   logger,
	}
}

// Run запускает обработку очереди, возвращается при отмене контекста
func (w *NotifierWorker) Run(ctx context.Context) {
	w.queue.Consume(ctx, w.handle)
}

// handle обрабатывает одну задачу из очереди
func (w *NotifierWorker) handle(ctx context.Context, task *jobqueue.Task) error {
	switch task.Type {
	case TaskTypeBookingConfirmed:
		return w.handleBookingConfirmed(ctx, task)
	default:
		w.logger.Warn("notifier: unknown task type=%s, dropping", task.Type)
		return nil
	}
}

// handleBookingConfirmed отправляет письмо и создает событие в календаре
func (w *NotifierWorker) handleBookingConfirmed(ctx context.Context, task *jobqueue.Task) error {
	var payload BookingConfirmedPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		w.logger.Error("notifier: failed to unmarshal payload, dropping: %v", err)
		return nil
	}

	var firstErr error

	if err := w.mailer.SendConfirmation(ctx, &mailer.ConfirmationEmail{
		To:          payload.Email,
		GuestName:   payload.GuestName,
		Reference:   payload.Reference,
		CheckIn:     payload.CheckIn,
		CheckOut:    payload.CheckOut,
		GuestsCount: payload.GuestsCount,
		TotalAmount: payload.TotalAmount,
	}); err != nil {
		w.logger.Error("notifier: failed to send confirmation email reference=%s: %v", payload.Reference, err)
		firstErr = fmt.Errorf("send confirmation: %w", err)
	}

	if err := w.calendar.CreateStayEvent(ctx, &calendarsync.StayEvent{
		Reference: payload.Reference,
		GuestName: payload.GuestName,
		CheckIn:   payload.CheckIn,
		CheckOut:  payload.CheckOut,
	}); err != nil {
		w.logger.Error("notifier: failed to create calendar event reference=%s: %v", payload.Reference, err)
		if firstErr == nil {
			firstErr = fmt.Errorf("create calendar event: %w", err)
		}
	}

	return firstErr
}
