package mailer

import (
	"fmt"
	"time"

	"github.com/doech/Wherenow/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. The zero dependency surface keeps the
// auth service testable with a fake.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

var dialAndSendFn = func(d *gomail.Dialer, m *gomail.Message) error {
	return d.DialAndSend(m)
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return dialAndSendFn(d, m)
}

// CodeHTML renders the verification-code mail body.
func CodeHTML(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Your WhereNow verification code is <b style="font-size:18px;">%s</b>.</p><p>It expires in %d minutes.</p>`, code, int(ttl.Minutes()))
}
