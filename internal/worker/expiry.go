package worker

import (
	"context"
	"time"
)

// ExpiryWorker периодически переводит зависшие pending бронирования в failed
// Pending не занимает даты, но отображается в админке - без чистки
// список заявок зарастает брошенными оплатами
type ExpiryWorker struct {
	bookingRepo BookingRepository
	interval    time.Duration
	pendingTTL  time.Duration
	logger      Logger
}

// NewExpiryWorker создает воркер очистки просроченных бронирований
func NewExpiryWorker(
	bookingRepo BookingRepository,
	interval time.Duration,
	pendingTTL time.Duration,
	logger Logger,
) *ExpiryWorker {
	return &ExpiryWorker{
		bookingRepo: bookingRepo,
		interval:    interval,
		pendingTTL:  pendingTTL,
		logger:      logger,
	}
}

// Run запускает цикл очистки, возвращается при отмене контекста
func (w *ExpiryWorker) Run(ctx context.Context) {
	w.logger.Info("expiry worker: started, interval=%s, ttl=%s", w.interval, w.pendingTTL)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("expiry worker: stopped")
			return
		case <-ticker.C:
			w.expire(ctx)
		}
	}
}

// expire переводит в failed все pending старше pendingTTL
func (w *ExpiryWorker) expire(ctx context.Context) {
	olderThan := time.Now().Add(-w.pendingTTL)

	expired, err := w.bookingRepo.ExpirePending(ctx, olderThan)
	if err != nil {
		w.logger.Error("expiry worker: failed to expire pending bookings: %v", err)
		return
	}

	if expired > 0 {
		w.logger.Info("expiry worker: expired %d stale pending bookings", expired)
	}
}
