package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
)

var (
	guestNameRegexp = regexp.MustCompile(domain.GuestNamePattern)
	emailRegexp     = regexp.MustCompile(domain.EmailPattern)
	phoneRegexp     = regexp.MustCompile(domain.PhonePattern)
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if !guestNameRegexp.MatchString(name) {
		return fmt.Errorf("%w: must be at least 3 letters", ErrInvalidGuestName)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if !phoneRegexp.MatchString(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	if req.GuestsCount < domain.MinGuestsCount || req.GuestsCount > domain.MaxGuestsCount {
		return fmt.Errorf("%w: must be between %d and %d",
			ErrInvalidGuestsCount, domain.MinGuestsCount, domain.MaxGuestsCount)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	return nil
}

// validateDates проверяет диапазон дат заезда и выезда
// Выезд должен быть строго позже заезда, заезд - не в прошлом
func validateDates(checkIn, checkOut, now time.Time) error {
	checkInDay := truncateToDay(checkIn)
	checkOutDay := truncateToDay(checkOut)
	today := truncateToDay(now)

	if !checkOutDay.After(checkInDay) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidDates)
	}

	if checkInDay.Before(today) {
		return ErrDateInPast
	}

	nights := int(checkOutDay.Sub(checkInDay).Hours() / 24)
	if nights > domain.MaxStayNights {
		return fmt.Errorf("%w: maximum stay is %d nights", ErrStayTooLong, domain.MaxStayNights)
	}

	return nil
}

// truncateToDay отбрасывает время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
