package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNights тестирует подсчет количества ночей
func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{name: "one night", checkIn: "2024-06-01", checkOut: "2024-06-02", want: 1},
		{name: "week long stay", checkIn: "2024-06-01", checkOut: "2024-06-08", want: 7},
		{name: "stay across month boundary", checkIn: "2024-06-29", checkOut: "2024-07-02", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{CheckIn: date(tt.checkIn), CheckOut: date(tt.checkOut)}
			assert.Equal(t, tt.want, b.Nights())
		})
	}
}

// TestCanTransitionTo тестирует state machine статусов бронирования
func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, want: true},
		{name: "pending to failed", from: StatusPending, to: StatusFailed, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: false},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, want: true},
		{name: "confirmed to failed", from: StatusConfirmed, to: StatusFailed, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusPending, want: false},
		{name: "failed is terminal", from: StatusFailed, to: StatusConfirmed, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

// TestOccupies тестирует принадлежность даты полуоткрытому интервалу проживания
func TestOccupies(t *testing.T) {
	b := &Booking{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-05")}

	assert.True(t, b.Occupies(date("2024-06-01")))
	assert.True(t, b.Occupies(date("2024-06-04")))
	// День выезда не занят
	assert.False(t, b.Occupies(date("2024-06-05")))
	assert.False(t, b.Occupies(date("2024-05-31")))
}
