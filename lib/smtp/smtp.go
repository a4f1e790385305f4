package smtp

import (
	"fmt"
	"mime"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

var ErrNotConfigured = errors.New("отправка почты не настроена")

type Provider interface {
	SendEMail(from, to, message, subject string) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(from, to, message, subject string) (err error) {
	logger := log.WithField("sender", from).WithField("to", to)
	if !i.IsConfigured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return ErrNotConfigured
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(BuildMessage(i.user, to, subject, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

// BuildMessage письмо в формате text/plain с заголовками
func BuildMessage(from, to, subject, message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.ReplaceAll(message, "\n", "\r\n")
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Sarah Testing - %s\r\nMIME-version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		from, to, mime.QEncoding.Encode("utf-8", subject), message)
}
