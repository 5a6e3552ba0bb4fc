package mailer

import "errors"

var (
	// ErrSendFailed возвращается при ошибке отправки письма через SMTP
	ErrSendFailed = errors.New("mailer: failed to send email")
)
