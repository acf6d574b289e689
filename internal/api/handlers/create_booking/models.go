package create_booking

import (
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
	createBooking "github.com/m04kA/KH-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	GuestName   string `json:"guestName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	GuestsCount int    `json:"guestsCount"`
	CheckIn     string `json:"checkIn"`  // "2025-10-15"
	CheckOut    string `json:"checkOut"` // "2025-10-18"

	// TotalAmount принимается для совместимости со старыми клиентами
	// и игнорируется: сумма всегда считается на сервере
	TotalAmount *int64 `json:"totalAmount,omitempty"`
}

// PaymentOrderResponse данные платежного заказа для оплаты на клиенте
type PaymentOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"` // В пайсах
	Currency string `json:"currency"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Reference   string                `json:"reference"`
	GuestName   string                `json:"guestName"`
	CheckIn     string                `json:"checkIn"`
	CheckOut    string                `json:"checkOut"`
	Nights      int                   `json:"nights"`
	GuestsCount int                   `json:"guestsCount"`
	TotalAmount int64                 `json:"totalAmount"`
	Status      string                `json:"status"`
	Order       *PaymentOrderResponse `json:"order,omitempty"`
	CreatedAt   string                `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		GuestName:   r.GuestName,
		Email:       r.Email,
		Phone:       r.Phone,
		GuestsCount: r.GuestsCount,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	response := &BookingResponse{
		Reference:   resp.Reference,
		GuestName:   resp.GuestName,
		CheckIn:     resp.CheckIn.Format(domain.DateFormat),
		CheckOut:    resp.CheckOut.Format(domain.DateFormat),
		Nights:      resp.Nights,
		GuestsCount: resp.GuestsCount,
		TotalAmount: resp.TotalAmount,
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.Order != nil {
		response.Order = &PaymentOrderResponse{
			OrderID:  resp.Order.OrderID,
			Amount:   resp.Order.Amount,
			Currency: resp.Order.Currency,
		}
	}

	return response
}
