package confirm_payment

import (
	"github.com/m04kA/KH-BookingService/internal/domain"
	confirmPayment "github.com/m04kA/KH-BookingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Reference   string `json:"reference"`
	GuestName   string `json:"guestName"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	Nights      int    `json:"nights"`
	TotalAmount int64  `json:"totalAmount"`
	Status      string `json:"status"`
	PaymentID   string `json:"paymentId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest(reference string) *confirmPayment.Request {
	return &confirmPayment.Request{
		Reference: reference,
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *BookingResponse {
	return &BookingResponse{
		Reference:   resp.Reference,
		GuestName:   resp.GuestName,
		CheckIn:     resp.CheckIn.Format(domain.DateFormat),
		CheckOut:    resp.CheckOut.Format(domain.DateFormat),
		Nights:      resp.Nights,
		TotalAmount: resp.TotalAmount,
		Status:      resp.Status,
		PaymentID:   resp.PaymentID,
	}
}
