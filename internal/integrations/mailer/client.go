// Package mailer отправка писем клиентам через SMTP без аутентификации
// (совместимо с Mailpit и большинством внутренних релеев)
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Client клиент для отправки почтовых уведомлений
type Client struct {
	addr string
	from string
	log  Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(host, port, from string, log Logger) *Client {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@bookingplatform.local"
	}
	return &Client{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
		log:  log,
	}
}

// Send отправляет письмо одному получателю.
// Вызывающая сторона запускает отправку в отдельной горутине: доставка
// писем никогда не блокирует и не проваливает бизнес-операцию
func (c *Client) Send(to, subject, body string) error {
	msg := buildMessage(c.from, to, subject, body)
	if err := smtp.SendMail(c.addr, nil, c.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSendFailed, to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
