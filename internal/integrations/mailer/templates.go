package mailer

import "fmt"

// BookingEmailData данные для писем о бронировании.
// Date и StartTime уже переведены в локальное время бизнеса
type BookingEmailData struct {
	CustomerName string
	BusinessName string
	ServiceName  string
	Date         string // "YYYY-MM-DD"
	StartTime    string // "HH:MM"
	ManageURL    string // пустая строка - ссылка не включается
}

// ConfirmedEmail письмо о подтверждённом бронировании
func ConfirmedEmail(data BookingEmailData) (subject, body string) {
	subject = fmt.Sprintf("Booking confirmed - %s", data.BusinessName)
	body = fmt.Sprintf(
		"Hi %s,\n\nYour booking is confirmed.\n\nService: %s\nDate: %s\nTime: %s\n",
		data.CustomerName, data.ServiceName, data.Date, data.StartTime,
	)
	body += manageFooter(data.ManageURL)
	return subject, body
}

// PendingEmail письмо о заявке, ожидающей подтверждения бизнесом
func PendingEmail(data BookingEmailData) (subject, body string) {
	subject = fmt.Sprintf("Booking request received - %s", data.BusinessName)
	body = fmt.Sprintf(
		"Hi %s,\n\nWe received your booking request. %s will confirm it shortly.\n\nService: %s\nDate: %s\nTime: %s\n",
		data.CustomerName, data.BusinessName, data.ServiceName, data.Date, data.StartTime,
	)
	body += manageFooter(data.ManageURL)
	return subject, body
}

// CancelledEmail письмо об отмене бронирования бизнесом
func CancelledEmail(data BookingEmailData, reason string) (subject, body string) {
	subject = fmt.Sprintf("Booking cancelled - %s", data.BusinessName)
	body = fmt.Sprintf(
		"Hi %s,\n\nYour booking has been cancelled.\n\nService: %s\nDate: %s\nTime: %s\n",
		data.CustomerName, data.ServiceName, data.Date, data.StartTime,
	)
	if reason != "" {
		body += fmt.Sprintf("Reason: %s\n", reason)
	}
	return subject, body
}

// CancellationConfirmedEmail письмо-подтверждение отмены самим клиентом
func CancellationConfirmedEmail(data BookingEmailData) (subject, body string) {
	subject = fmt.Sprintf("Cancellation confirmed - %s", data.BusinessName)
	body = fmt.Sprintf(
		"Hi %s,\n\nYour booking has been cancelled as requested.\n\nService: %s\nDate: %s\nTime: %s\n",
		data.CustomerName, data.ServiceName, data.Date, data.StartTime,
	)
	return subject, body
}

// ReminderEmail напоминание о предстоящем визите
func ReminderEmail(data BookingEmailData) (subject, body string) {
	subject = fmt.Sprintf("Reminder: upcoming appointment - %s", data.BusinessName)
	body = fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder about your upcoming appointment.\n\nService: %s\nDate: %s\nTime: %s\n",
		data.CustomerName, data.ServiceName, data.Date, data.StartTime,
	)
	body += manageFooter(data.ManageURL)
	return subject, body
}

func manageFooter(manageURL string) string {
	if manageURL == "" {
		return ""
	}
	return fmt.Sprintf("\nManage your booking: %s\n", manageURL)
}
