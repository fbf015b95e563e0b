// Package service holds the collaborators handlers talk to: the
// outgoing mail path and the avatar storage client.
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer sends account confirmation mail over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	domain   string
	ssl      bool
}

func NewMailer() *Mailer {
	return &Mailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		username: viper.GetString("mail.username"),
		password: viper.GetString("mail.password"),
		from:     viper.GetString("mail.from"),
		fromName: viper.GetString("mail.from_name"),
		domain:   viper.GetString("host.domain"),
		ssl:      viper.GetBool("host.ssl_enabled"),
	}
}

// SendConfirmation mails the confirmation link for the given account.
// Blocking, meant to run on a JobQueue worker.
func (m *Mailer) SendConfirmation(to, username, token string) error {
	scheme := "http"
	if m.ssl {
		scheme = "https"
	}

	link := fmt.Sprintf("%s://%s/api/auth/confirmed_email/%s", scheme, m.domain, token)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirm your email")
	msg.SetBody("text/html", fmt.Sprintf(
		"Hi %s,<br><br>Click <a href='%s'>here</a> to confirm your email.<br><br>This link will expire in 7 days.",
		username, link))

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)

	return d.DialAndSend(msg)
}
