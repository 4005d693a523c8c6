// Package mailer delivers e-mail verification codes.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const verificationSubject = "Подтверждение регистрации"

// Sender sends a verification code to an address.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// BuildVerificationMessage renders the RFC 5322 message carrying code.
func BuildVerificationMessage(from, to, code string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", verificationSubject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "Код для подтверждения регистрации: %s\r\n", code)
	return buf.Bytes()
}

// SMTPSender sends mail over an implicit-TLS SMTP connection (port 465 style).
type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
	timeout  time.Duration
}

// NewSMTPSender creates a sender that authenticates as user.
func NewSMTPSender(host string, port int, user, password string, timeout time.Duration) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, password: password, timeout: timeout}
}

// SendVerificationCode dials the server, authenticates and delivers the code.
func (s *SMTPSender) SendVerificationCode(ctx context.Context, to, code string) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: s.timeout},
		Config:    &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}
	if s.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.timeout))
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if s.user != "" {
		if err := client.Auth(smtp.PlainAuth("", s.user, s.password, s.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(s.user); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(BuildVerificationMessage(s.user, to, code)); err != nil {
		_ = w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return client.Quit()
}

// LogSender logs codes instead of mailing them. Used when SMTP is not configured.
type LogSender struct {
	logger *logrus.Entry
}

// NewLogSender creates a LogSender writing to logger.
func NewLogSender(logger *logrus.Logger) *LogSender {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogSender{logger: logger.WithField("component", "mailer")}
}

// SendVerificationCode logs the code at warn level.
func (s *LogSender) SendVerificationCode(_ context.Context, to, code string) error {
	s.logger.WithFields(logrus.Fields{
		"to":   to,
		"code": code,
	}).Warn("SMTP not configured, verification code not mailed")
	return nil
}
