package mailer

// Mailer is the notification gateway: best-effort delivery of a plain
// message to a single recipient.
type Mailer interface {
	SendMail(to string, subject string, body string) error
	SendMailAsync(to string, subject string, body string, operationName string)
}
