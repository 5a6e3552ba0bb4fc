package bookings

import (
	"errors"
	"fmt"

	"github.com/avlasov/ABP-BookingPlatform/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// (в том числе при неизвестном manage-токене)
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому бизнесу
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCannotCancel возвращается, когда бронирование уже в конечном статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancelWindowPassed возвращается, когда до визита осталось меньше
	// минимального окна отмены, установленного бизнесом
	ErrCancelWindowPassed = errors.New("cancellation window has passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// TransitionError уточняет ErrInvalidTransition текущим и целевым статусами,
// чтобы вызывающий мог показать их в сообщении об ошибке
type TransitionError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// CancelWindowError уточняет ErrCancelWindowPassed порогом бизнеса в часах
type CancelWindowError struct {
	WindowHours int
}

func (e *CancelWindowError) Error() string {
	return fmt.Sprintf("%v: at least %dh before start required", ErrCancelWindowPassed, e.WindowHours)
}

func (e *CancelWindowError) Is(target error) bool {
	return target == ErrCancelWindowPassed
}
