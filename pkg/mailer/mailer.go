package mailer

import (
	"context"

	"hotel-reservations/internal/usecase"
	"hotel-reservations/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer delivers guest notifications over SMTP. When no SMTP host is
// configured it degrades to logging the message, so local setups work
// without a mail server.
type Mailer struct {
	client *mail.Client
	from   string
	log    *zap.Logger
}

func New(config *utils.Config, log *zap.Logger) (*Mailer, error) {
	m := &Mailer{
		from: config.Email.From,
		log:  log.With(zap.String("component", "mailer")),
	}

	if config.Email.Host == "" {
		m.log.Info("SMTP not configured, notifications will be logged only")
		return m, nil
	}

	client, err := mail.NewClient(
		config.Email.Host,
		mail.WithPort(config.Email.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.Email.User),
		mail.WithPassword(config.Email.Password),
	)
	if err != nil {
		return nil, err
	}

	m.client = client
	return m, nil
}

func (m *Mailer) Send(ctx context.Context, notification usecase.Notification) error {
	if m.client == nil {
		m.log.Info("Notification (not sent, SMTP disabled)",
			zap.String("to", notification.To),
			zap.String("subject", notification.Subject),
		)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(notification.To); err != nil {
		return err
	}
	msg.Subject(notification.Subject)
	msg.SetBodyString(mail.TypeTextPlain, notification.Body)

	return m.client.DialAndSendWithContext(ctx, msg)
}
