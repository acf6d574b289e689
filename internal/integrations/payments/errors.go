package payments

import "errors"

var (
	// ErrOrderNotCreated возвращается, когда шлюз отклонил создание заказа
	ErrOrderNotCreated = errors.New("payments client: order not created")

	// ErrSignatureMismatch возвращается, когда подпись платежа не прошла проверку
	ErrSignatureMismatch = errors.New("payments client: payment signature mismatch")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("payments client: invalid response")
)
