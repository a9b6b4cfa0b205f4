package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends an HTML email. The SMTP implementation is used in prod,
// tests plug in a recorder.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer sends mail through a plain-auth SMTP server.
type SMTPMailer struct {
	from     string
	password string
	server   string
	addr     string
}

func NewSMTPMailer(from, password, server, addr string) *SMTPMailer {
	return &SMTPMailer{
		from:     from,
		password: password,
		server:   server,
		addr:     addr,
	}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	// Set up authentication information.
	auth := smtp.PlainAuth(
		"",
		m.from,
		m.password,
		m.server,
	)

	fromHeader := fmt.Sprintf("From: \"Notes API\" <%s>\n", m.from)
	toHeader := fmt.Sprintf("To: %s\n", strings.Join(to, " "))
	subjectHeader := "Subject: " + subject + "\n"
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fromHeader + toHeader + subjectHeader + mime + "\n" + body)

	return smtp.SendMail(m.addr, auth, m.from, to, msg)
}

// NopMailer drops every mail. It keeps the services working in
// environments without an SMTP server configured.
type NopMailer struct{}

func (NopMailer) Send([]string, string, string) error { return nil }
