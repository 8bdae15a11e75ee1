package mailer

import (
	"fmt"
	"io"
	"path/filepath"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers one digest per run to a fixed send-to-device address over
// an authenticated SMTP session.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	to       string
}

func New(host string, port int, username, password, to string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		to:       to,
	}
}

// Send delivers a single message with the digest artifact as a base64
// binary attachment. The session upgrades with STARTTLS before AUTH when the
// server offers it. Any failure is returned to the caller and fails the run;
// the artifact stays on disk for manual recovery, and no attachment-less
// message is ever sent.
func (m *Mailer) Send(subject, path string, data []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.username)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", "Attached is today's digest.")
	msg.Attach(filepath.Base(path), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: failed to send digest: %w", err)
	}
	return nil
}
