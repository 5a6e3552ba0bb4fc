package schedule

import "errors"

var (
	// ErrClosureNotFound возвращается, когда закрытие не найдено у этого бизнеса
	ErrClosureNotFound = errors.New("closure not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
