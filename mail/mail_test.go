package mail

import "testing"

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvHost, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvSender, "bot@example.com")
	t.Setenv(EnvPassword, "s3cret")

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() failed: %v", err)
	}
	if s.Host != "smtp.gmail.com" || s.Port != "587" {
		t.Errorf("defaults = %s:%s, want smtp.gmail.com:587", s.Host, s.Port)
	}
	if s.From != "bot@example.com" {
		t.Errorf("From = %q", s.From)
	}
}

func TestFromEnvMissingCredentials(t *testing.T) {
	t.Setenv(EnvSender, "")
	t.Setenv(EnvPassword, "")
	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv() without credentials expected an error")
	}
}

func TestSendRequiresRecipients(t *testing.T) {
	s := &SMTP{Host: "localhost", Port: "2525", From: "bot@example.com", Password: "x"}
	if err := s.Send("subject", "body", nil); err == nil {
		t.Error("Send() without recipients expected an error")
	}
}
