package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusFailed    BookingStatus = "failed"
)

// Booking represents a guest reservation for a date range
// Занятость считается полуоткрытым интервалом [CheckIn, CheckOut):
// день выезда свободен для нового заезда
type Booking struct {
	ID          int64
	Reference   string // публичный идентификатор бронирования (uuid)
	GuestName   string
	Email       string
	Phone       string
	GuestsCount int
	CheckIn     time.Time
	CheckOut    time.Time
	TotalAmount int64 // сумма в рупиях, всегда пересчитывается сервером
	Status      BookingStatus

	// Реквизиты платежа, заполняются после успешной оплаты
	PaymentOrderID   *string
	PaymentID        *string
	PaymentSignature *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Nights returns the number of nights in the stay
func (b *Booking) Nights() int {
	return int(dateOnly(b.CheckOut).Sub(dateOnly(b.CheckIn)).Hours() / 24)
}

// Occupies returns true if the given date falls within [CheckIn, CheckOut)
func (b *Booking) Occupies(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(b.CheckIn)) && d.Before(dateOnly(b.CheckOut))
}

// OverlapsRange returns true if [CheckIn, CheckOut) intersects [checkIn, checkOut)
// Граничные случаи не считаются пересечением: выезд и заезд в один день допустимы
func (b *Booking) OverlapsRange(checkIn, checkOut time.Time) bool {
	return dateOnly(b.CheckIn).Before(dateOnly(checkOut)) && dateOnly(b.CheckOut).After(dateOnly(checkIn))
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusFailed
}

// CanBeConfirmed returns true if the booking is awaiting payment
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanTransitionTo validates the booking state machine:
// pending -> confirmed | failed, confirmed -> cancelled
// Из cancelled и failed переходов нет, повторный вход в pending запрещен
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusFailed
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
