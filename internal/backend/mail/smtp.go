package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
)

// SMTPMailer sends messages through a plain SMTP relay. Auth is optional:
// leave Username empty for an unauthenticated relay (mailhog, local dev).
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
	Host     string // hostname for AUTH, derived from Addr when empty
}

func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return &SMTPMailer{Addr: addr, From: from, Username: username, Password: password, Host: host}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	body, err := m.encode(msg)
	if err != nil {
		return fmt.Errorf("encode mail to %s: %w", msg.To, err)
	}

	if err := smtp.SendMail(m.Addr, auth, m.From, []string{msg.To}, body); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// encode renders the RFC 5322 message: plain text when only Text is set,
// multipart/alternative with text and HTML parts otherwise.
func (m *SMTPMailer) encode(msg Message) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.Text)
		return b.Bytes(), nil
	}

	mw := multipart.NewWriter(&b)
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	b.WriteString("\r\n")

	// Least-preferred alternative first per RFC 2046.
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(msg.Text)); err != nil {
		return nil, err
	}

	part, err = mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(msg.HTML)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
