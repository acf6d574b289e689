package payments

// Order заказ в платежном шлюзе
// Шлюз принимает сумму в минимальных единицах валюты (пайсы для INR)
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// createOrderRequest тело запроса на создание заказа
type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// ErrorResponse модель ошибки шлюза
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"description"`
}
