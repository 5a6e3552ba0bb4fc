package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или деактивирован
	ErrBusinessNotFound = errors.New("business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят или недоступен
	ErrSlotNotAvailable = errors.New("slot not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
