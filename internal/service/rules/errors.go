package rules

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при некорректной дате правила
	ErrInvalidDate = errors.New("invalid rule date")

	// ErrInvalidPrice возвращается при некорректной цене
	ErrInvalidPrice = errors.New("invalid rule price")

	// ErrInvalidStatus возвращается при некорректном статусе правила
	ErrInvalidStatus = errors.New("invalid rule status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
