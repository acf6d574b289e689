package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KH-BookingService/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func validRequest() *Request {
	return &Request{
		GuestName:   "Priya Sharma",
		Email:       "priya@example.com",
		Phone:       "+919876543210",
		GuestsCount: 2,
		CheckIn:     date("2030-06-01"),
		CheckOut:    date("2030-06-03"),
	}
}

// TestValidateRequest тестирует валидацию полей заявки
func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:   "valid request passes",
			mutate: func(r *Request) {},
		},
		{
			name:    "empty guest name",
			mutate:  func(r *Request) { r.GuestName = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "guest name too short",
			mutate:  func(r *Request) { r.GuestName = "Al" },
			wantErr: ErrInvalidGuestName,
		},
		{
			name:    "guest name with digits",
			mutate:  func(r *Request) { r.GuestName = "Priya123" },
			wantErr: ErrInvalidGuestName,
		},
		{
			name:    "email without at sign",
			mutate:  func(r *Request) { r.Email = "priya.example.com" },
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "email without domain",
			mutate:  func(r *Request) { r.Email = "priya@" },
			wantErr: ErrInvalidEmail,
		},
		{
			name:   "phone without country code",
			mutate: func(r *Request) { r.Phone = "9876543210" },
		},
		{
			name:    "phone starting below six",
			mutate:  func(r *Request) { r.Phone = "+915876543210" },
			wantErr: ErrInvalidPhone,
		},
		{
			name:    "phone too short",
			mutate:  func(r *Request) { r.Phone = "+91987654321" },
			wantErr: ErrInvalidPhone,
		},
		{
			name:    "zero guests",
			mutate:  func(r *Request) { r.GuestsCount = 0 },
			wantErr: ErrInvalidGuestsCount,
		},
		{
			name:    "too many guests",
			mutate:  func(r *Request) { r.GuestsCount = 50 },
			wantErr: ErrInvalidGuestsCount,
		},
		{
			name:    "zero check-in date",
			mutate:  func(r *Request) { r.CheckIn = time.Time{} },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateDates тестирует валидацию диапазона дат
func TestValidateDates(t *testing.T) {
	now := date("2024-06-15")

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{
			name:     "future range is valid",
			checkIn:  "2024-06-20",
			checkOut: "2024-06-22",
		},
		{
			name:     "check-in today is valid",
			checkIn:  "2024-06-15",
			checkOut: "2024-06-16",
		},
		{
			name:     "check-out equals check-in",
			checkIn:  "2024-06-20",
			checkOut: "2024-06-20",
			wantErr:  ErrInvalidDates,
		},
		{
			name:     "check-out before check-in",
			checkIn:  "2024-06-22",
			checkOut: "2024-06-20",
			wantErr:  ErrInvalidDates,
		},
		{
			name:     "check-in in the past",
			checkIn:  "2024-06-10",
			checkOut: "2024-06-12",
			wantErr:  ErrDateInPast,
		},
		{
			name:     "stay longer than limit",
			checkIn:  "2024-06-20",
			checkOut: "2024-08-20",
			wantErr:  ErrStayTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDates(date(tt.checkIn), date(tt.checkOut), now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
