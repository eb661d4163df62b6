package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"freework/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// SMTPSender delivers one-time codes over authenticated SMTP.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
}

var _ interfaces.IMailSender = (*SMTPSender)(nil)

func NewSMTPSender(host, port, user, pass string) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, pass: pass}
}

func (s *SMTPSender) SendOTP(ctx context.Context, to, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your Login OTP\r\n\r\nYour OTP is: %s. It is valid for 5 minutes.\r\n",
		s.user, to, code,
	)

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	type result struct{ err error }
	done := make(chan result, 1)
	go func() {
		done <- result{smtp.SendMail(s.host+":"+s.port, auth, s.user, []string{to}, []byte(msg))}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-done:
		if r.err != nil {
			logrus.Errorf("[user][mail] otp delivery failed to=%s err=%v", to, r.err)
			return r.err
		}
	}
	logrus.Infof("[user][mail] otp delivered to=%s", to)
	return nil
}
