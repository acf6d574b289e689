package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	GuestName   string    // Имя гостя
	Email       string    // Email для подтверждения
	Phone       string    // Номер телефона (индийский формат)
	GuestsCount int       // Количество гостей
	CheckIn     time.Time // Дата заезда (без времени)
	CheckOut    time.Time // Дата выезда, не включается в проживание
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reference   string    // Публичный идентификатор бронирования
	GuestName   string    // Имя гостя
	CheckIn     time.Time // Дата заезда
	CheckOut    time.Time // Дата выезда
	Nights      int       // Количество ночей
	GuestsCount int       // Количество гостей
	TotalAmount int64     // Итоговая сумма, рассчитанная сервером
	Status      string    // Статус бронирования

	// Данные платежного заказа для оплаты на клиенте
	Order *PaymentOrder

	CreatedAt time.Time // Время создания
}

// PaymentOrder данные заказа платежного шлюза
type PaymentOrder struct {
	OrderID  string // ID заказа в шлюзе
	Amount   int64  // Сумма в пайсах
	Currency string // Валюта заказа
}
