package mailer

import (
	"account_service/pkg/logger"

	"github.com/resend/resend-go/v3"
)

type resendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey string, from string) Mailer {
	client := resend.NewClient(apiKey)
	return &resendMailer{client: client, from: from}
}

func (r *resendMailer) SendMail(to string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := r.client.Emails.Send(params)
	return err
}

// SendMailAsync performs delivery in the background. Failures are logged and
// never surfaced to the caller.
func (r *resendMailer) SendMailAsync(to string, subject string, body string, operationName string) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic in email goroutine", "operation", operationName, "panic", rec)
			}
		}()

		err := r.SendMail(to, subject, body)
		if err != nil {
			logger.Error("Failed to send email", "operation", operationName, "to", to, "subject", subject, "error", err)
		}
	}()
}
