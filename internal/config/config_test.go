package config

import (
	"encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SENDGRID_API_KEY", "sg-test")
	t.Setenv("SENDGRID_FROM_EMAIL", "alerts@example.com")
	for _, k := range []string{
		"FIREBASE_TYPE", "FIREBASE_PROJECT_ID", "FIREBASE_PRIVATE_KEY_ID", "FIREBASE_CLIENT_EMAIL",
		"FIREBASE_CLIENT_ID", "FIREBASE_AUTH_URI", "FIREBASE_TOKEN_URI",
		"FIREBASE_AUTH_PROVIDER_X509_CERT_URL", "FIREBASE_CLIENT_X509_CERT_URL",
	} {
		t.Setenv(k, "x")
	}
	t.Setenv("FIREBASE_PRIVATE_KEY", base64.StdEncoding.EncodeToString([]byte(`line1\nline2`)))
}

func TestLoadConfigOrPanic_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_INBOX_URL", "https://app.example.com/")

	c := LoadConfigOrPanic()

	assert.Equal(t, "line1\nline2", c.Firebase.PrivateKey)
	assert.Equal(t, 30*time.Second, c.WriteTimeoutSecond)
	assert.Equal(t, "https://app.example.com", c.InboxUrl)
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, 300, c.MaxOutputTokens)
	assert.Equal(t, 1000, c.MaxReviewTokens)
	assert.InDelta(t, 0.7, c.Temperature, 0.0001)
	assert.Equal(t, 10*time.Second, c.SendGrid.Timeout)
	assert.Equal(t, "gpt-4o-mini", c.Model)
}

func TestLoadConfigOrPanic_MissingRequired(t *testing.T) {
	setRequired(t)
	os.Unsetenv("OPENAI_API_KEY")

	assert.Panics(t, func() { LoadConfigOrPanic() })
}

func TestLoadFirebaseConfigOrPanic_IgnoresServiceKeys(t *testing.T) {
	setRequired(t)
	os.Unsetenv("OPENAI_API_KEY")
	os.Unsetenv("SENDGRID_API_KEY")

	f := LoadFirebaseConfigOrPanic()

	assert.Equal(t, "line1\nline2", f.PrivateKey)
	assert.Equal(t, 30*time.Second, f.WriteTimeoutSecond)
}
