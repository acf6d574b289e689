package mailer

import "github.com/m04kA/KH-BookingService/pkg/types"

// ConfirmationEmail данные для письма-подтверждения бронирования
type ConfirmationEmail struct {
	To          string           `json:"to"`
	GuestName   string           `json:"guest_name"`
	Reference   string           `json:"reference"`
	CheckIn     types.DateString `json:"check_in"`
	CheckOut    types.DateString `json:"check_out"`
	GuestsCount int              `json:"guests_count"`
	TotalAmount int64            `json:"total_amount"`
}

// sendRequest тело запроса к почтовому сервису
type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
