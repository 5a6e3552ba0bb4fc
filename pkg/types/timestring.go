// Package types содержит общие value-типы, разделяемые всеми слоями сервиса
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается "HH:MM")
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time out of range")
)

// TimeString время суток в формате "HH:MM" (24-часовой формат)
// Используется для рабочих часов, перерывов и времени начала слотов,
// которые всегда задаются в местном времени бизнеса
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет, что строка имеет формат "HH:MM" и является валидным временем суток
func (t TimeString) Validate() error {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &h, &m); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if len(t) != 5 || t[2] != ':' || h < 0 || h > 23 || m < 0 || m > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	var h, m int
	fmt.Sscanf(string(t), "%02d:%02d", &h, &m)
	return h*60 + m, nil
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает строковые колонки и колонки типа time
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	// Колонки типа time приходят как "HH:MM:SS" - обрезаем секунды
	if len(*t) == 8 && (*t)[5] == ':' {
		*t = (*t)[:5]
	}
	return t.Validate()
}
