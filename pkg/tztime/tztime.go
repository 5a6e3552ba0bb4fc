// Package tztime конвертация между местным временем бизнеса и UTC
//
// Бронирования хранятся в UTC, но все бизнес-правила (рабочие часы,
// перерывы, "этот слот сегодня") определены в местном времени бизнеса.
// Смещение берётся для конкретной даты, а не фиксированное - при
// переходах на летнее/зимнее время смещение меняется в течение года.
//
// Известное ограничение: местное время, попадающее в "дыру" или
// "наложение" перехода DST, разрешается наивной интерпретацией
// (смещение, которое рантайм выбирает для этой временной метки).
// Такие времена не детектируются и не отклоняются.
package tztime

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat формат календарной даты
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDate возвращается при некорректной дате (ожидается YYYY-MM-DD)
	ErrInvalidDate = errors.New("tztime: invalid date")

	// ErrInvalidTime возвращается при некорректном времени суток (ожидается HH:MM)
	ErrInvalidTime = errors.New("tztime: invalid time of day")

	// ErrUnknownTimezone возвращается при неизвестном идентификаторе IANA
	ErrUnknownTimezone = errors.New("tztime: unknown timezone")
)

// ToUTC переводит местную календарную дату + время суток в UTC-момент
// для указанной IANA-таймзоны
func ToUTC(date string, hhmm string, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, tz)
	}

	day, err := time.Parse(DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%02d:%02d", &h, &m); err != nil || len(hhmm) != 5 || h > 23 || m > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc)
	return local.UTC(), nil
}

// FromUTC переводит UTC-момент в местную календарную дату и минуты
// с начала суток для указанной IANA-таймзоны
func FromUTC(t time.Time, tz string) (date string, minutes int, err error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownTimezone, tz)
	}

	local := t.In(loc)
	return local.Format(DateFormat), local.Hour()*60 + local.Minute(), nil
}

// LocalDate возвращает календарную дату момента t в указанной таймзоне
func LocalDate(t time.Time, tz string) (string, error) {
	date, _, err := FromUTC(t, tz)
	return date, err
}

// DayOfWeek возвращает день недели календарной даты (0=воскресенье .. 6=суббота)
// День определяется по самой дате, а не по UTC-полуночи - иначе для
// бизнесов восточнее UTC дата съезжает на день около полуночи
func DayOfWeek(date string) (int, error) {
	day, err := time.Parse(DateFormat, date)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return int(day.Weekday()), nil
}

// ValidDate проверяет формат календарной даты
func ValidDate(date string) error {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
