package digestmail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

// Sender delivers rendered digest bodies over SMTP.
type Sender struct {
	config SmtpConfig
}

func NewSender(config SmtpConfig) Sender {
	return Sender{config: config}
}

func (s Sender) Send(recipients []string, subject, body string) error {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("modelwatch <%s>", s.config.EmailAddress)
	mail.To = recipients
	mail.Subject = subject
	mail.HTML = []byte(body)

	addr := fmt.Sprintf("%s:%d", s.config.Server, s.config.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", s.config.EmailAddress, s.config.Password, s.config.Server),
	)
	// some relays (local postfix setups mostly) reject AUTH outright,
	// retry without it
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	return err
}
