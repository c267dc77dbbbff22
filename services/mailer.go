package services

import (
	"context"
	"fmt"

	"github.com/kataras/golog"
	"github.com/mailjet/mailjet-apiv3-go"
)

type Mail struct {
	To      string
	ToName  string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a single email.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type MailjetMailer struct {
	client   *mailjet.Client
	from     string
	fromName string
}

func NewMailjetMailer(apiKey, secretKey, from, fromName string) *MailjetMailer {
	return &MailjetMailer{
		client:   mailjet.NewMailjetClient(apiKey, secretKey),
		from:     from,
		fromName: fromName,
	}
}

func (m *MailjetMailer) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info := mailjet.InfoMessagesV31{
		From: &mailjet.RecipientV31{
			Email: m.from,
			Name:  m.fromName,
		},
		To: &mailjet.RecipientsV31{
			mailjet.RecipientV31{
				Email: mail.To,
				Name:  mail.ToName,
			},
		},
		Subject:  mail.Subject,
		TextPart: mail.Text,
		HTMLPart: mail.HTML,
	}
	if mail.ReplyTo != "" {
		info.ReplyTo = &mailjet.RecipientV31{Email: mail.ReplyTo}
	}

	messages := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{info}}
	if _, err := m.client.SendMailV31(&messages); err != nil {
		return fmt.Errorf("mailjet: %w", err)
	}
	return nil
}

// LogMailer writes mails to the logger instead of sending them. It is used
// when no mail provider is configured.
type LogMailer struct {
	logger *golog.Logger
}

func NewLogMailer(logger *golog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, mail Mail) error {
	m.logger.Infof("mail to=%s subject=%q\n%s", mail.To, mail.Subject, mail.Text)
	return nil
}
