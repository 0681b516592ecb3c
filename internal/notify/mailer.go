package notify

import (
	"gopkg.in/gomail.v2"
)

// Notifier delivers one composed message to one recipient. Implementations
// make exactly one attempt; retry policy belongs to the transport, not here.
type Notifier interface {
	Send(toEmail string, msg Message) error
}

// SMTPNotifier sends alert emails through an SMTP relay.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPNotifier creates an SMTPNotifier for the given relay and sender.
func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers the message as a multipart mail with text and HTML bodies.
func (n *SMTPNotifier) Send(toEmail string, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	m.AddAlternative("text/html", msg.HTMLBody)
	return n.dialer.DialAndSend(m)
}
