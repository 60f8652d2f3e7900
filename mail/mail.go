// Package mail delivers alert notifications over SMTP.
//
// Recipients are blind-copied: they appear only in the envelope, never in a
// header, so subscribers don't see each other's addresses.
package mail

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// Environment variables holding the sender credentials, typically loaded
// from a .env file by the caller.
const (
	EnvHost     = "SMTP_HOST"
	EnvPort     = "SMTP_PORT"
	EnvSender   = "SMTP_SENDER"
	EnvPassword = "SMTP_PASSWORD"
)

// SMTP sends mail through an authenticated SMTP relay with STARTTLS.
type SMTP struct {
	Host     string
	Port     string
	From     string
	Password string
}

// FromEnv builds a sender from the SMTP_* environment variables.
// Host and port default to Gmail's submission endpoint.
func FromEnv() (*SMTP, error) {
	s := &SMTP{
		Host:     os.Getenv(EnvHost),
		Port:     os.Getenv(EnvPort),
		From:     os.Getenv(EnvSender),
		Password: os.Getenv(EnvPassword),
	}
	if s.Host == "" {
		s.Host = "smtp.gmail.com"
	}
	if s.Port == "" {
		s.Port = "587"
	}
	if s.From == "" || s.Password == "" {
		return nil, fmt.Errorf("email credentials not configured: set %s and %s", EnvSender, EnvPassword)
	}
	return s, nil
}

// Send delivers one message to the blind-copied recipient list.
func (s *SMTP) Send(subject, body string, bcc []string) error {
	if len(bcc) == 0 {
		return fmt.Errorf("no recipients")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=utf-8\r\n")
	fmt.Fprintf(&msg, "\r\n%s", body)

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)
	addr := s.Host + ":" + s.Port
	if err := smtp.SendMail(addr, auth, s.From, bcc, []byte(msg.String())); err != nil {
		return fmt.Errorf("could not send mail via %s: %w", addr, err)
	}
	return nil
}
