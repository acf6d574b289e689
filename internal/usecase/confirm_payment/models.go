package confirm_payment

import "time"

// Request модель запроса на подтверждение оплаты
type Request struct {
	Reference string // Публичный идентификатор бронирования
	OrderID   string // ID заказа платежного шлюза
	PaymentID string // ID платежа
	Signature string // Подпись шлюза (HMAC-SHA256)
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	Reference   string    // Публичный идентификатор бронирования
	GuestName   string    // Имя гостя
	CheckIn     time.Time // Дата заезда
	CheckOut    time.Time // Дата выезда
	Nights      int       // Количество ночей
	TotalAmount int64     // Итоговая сумма
	Status      string    // Статус бронирования
	PaymentID   string    // ID платежа
}
