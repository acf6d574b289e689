package models

import (
	"errors"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	Reference   string  `json:"reference"`
	GuestName   string  `json:"guestName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	GuestsCount int     `json:"guestsCount"`
	CheckIn     string  `json:"checkIn"`  // "2025-10-15"
	CheckOut    string  `json:"checkOut"` // "2025-10-18"
	Nights      int     `json:"nights"`
	TotalAmount int64   `json:"totalAmount"`
	Status      string  `json:"status"`
	PaymentID   *string `json:"paymentId,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID,
		Reference:   b.Reference,
		GuestName:   b.GuestName,
		Email:       b.Email,
		Phone:       b.Phone,
		GuestsCount: b.GuestsCount,
		CheckIn:     b.CheckIn.Format(domain.DateFormat),
		CheckOut:    b.CheckOut.Format(domain.DateFormat),
		Nights:      b.Nights(),
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		PaymentID:   b.PaymentID,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch status {
	case string(domain.StatusPending):
		return domain.StatusPending, nil
	case string(domain.StatusConfirmed):
		return domain.StatusConfirmed, nil
	case string(domain.StatusCancelled):
		return domain.StatusCancelled, nil
	case string(domain.StatusFailed):
		return domain.StatusFailed, nil
	default:
		return "", ErrInvalidStatus
	}
}
