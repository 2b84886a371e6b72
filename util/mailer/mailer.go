// Package mailer sends outbound notification mail over SMTP.
package mailer

import "gopkg.in/gomail.v2"

type Mailer interface {
	// Send delivers a plain-text message, optionally attaching files.
	Send(to, subject, body string, attachments ...string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, user, password, from string) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *smtpMailer) Send(to, subject, body string, attachments ...string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	for _, a := range attachments {
		msg.Attach(a)
	}
	return m.dialer.DialAndSend(msg)
}
