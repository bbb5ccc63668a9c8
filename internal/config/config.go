package config

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

type OpenAI struct {
	ApiKey          string  `env:"OPENAI_API_KEY,required"`
	ApiUrl          string  `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1"`
	Model           string  `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	Temperature     float32 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`
	MaxOutputTokens int     `env:"DRAFT_MAX_OUTPUT_TOKENS" envDefault:"300"`
	MaxReviewTokens int     `env:"DRAFT_MAX_REVIEW_TOKENS" envDefault:"1000"`
}

type Firebase struct {
	Type                    string        `env:"FIREBASE_TYPE,required" json:"type"`
	ProjectId               string        `env:"FIREBASE_PROJECT_ID,required" json:"project_id"`
	PrivateKeyId            string        `env:"FIREBASE_PRIVATE_KEY_ID,required" json:"private_key_id"`
	PrivateKey              string        `env:"FIREBASE_PRIVATE_KEY,required" json:"private_key"`
	ClientEmail             string        `env:"FIREBASE_CLIENT_EMAIL,required" json:"client_email"`
	ClientId                string        `env:"FIREBASE_CLIENT_ID,required" json:"client_id"`
	AuthUri                 string        `env:"FIREBASE_AUTH_URI,required" json:"auth_uri"`
	TokenUri                string        `env:"FIREBASE_TOKEN_URI,required" json:"token_uri"`
	AuthProviderX509CertUrl string        `env:"FIREBASE_AUTH_PROVIDER_X509_CERT_URL,required" json:"auth_provider_x509_cert_url"`
	ClientX509CertUrl       string        `env:"FIREBASE_CLIENT_X509_CERT_URL,required" json:"client_x509_cert_url"`
	WriteTimeoutSecond      time.Duration `env:"FIREBASE_WRITE_TIMEOUT_SECOND" json:"-"`
}

type SendGrid struct {
	ApiKey    string        `env:"SENDGRID_API_KEY,required"`
	BaseUrl   string        `env:"SENDGRID_BASE_URL" envDefault:"https://api.sendgrid.com"`
	FromEmail string        `env:"SENDGRID_FROM_EMAIL,required"`
	FromName  string        `env:"SENDGRID_FROM_NAME" envDefault:"Feedback alerts"`
	Timeout   time.Duration `env:"SENDGRID_TIMEOUT" envDefault:"10s"`
}

type Server struct {
	Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
	InboxUrl string `env:"APP_INBOX_URL" envDefault:"http://localhost:3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type Config struct {
	OpenAI
	Firebase
	SendGrid
	Server
}

func LoadConfigOrPanic() Config {
	var config *Config = new(Config)
	if err := env.Parse(config); err != nil {
		panic(err)
	}

	config.normalize()
	return *config
}

// LoadFirebaseConfigOrPanic is used by tools that only talk to Firestore.
func LoadFirebaseConfigOrPanic() Firebase {
	var config *Firebase = new(Firebase)
	if err := env.Parse(config); err != nil {
		panic(err)
	}

	config.normalize()
	return *config
}

func (c *Config) normalize() {
	c.Firebase.normalize()
	c.Server.InboxUrl = strings.TrimRight(c.Server.InboxUrl, "/")
}

func (f *Firebase) normalize() {
	decodedBytes, err := base64.StdEncoding.DecodeString(f.PrivateKey)
	if err != nil {
		panic(err)
	}
	f.PrivateKey = string(decodedBytes)
	f.PrivateKey = strings.ReplaceAll(f.PrivateKey, "\\n", "\n")

	if f.WriteTimeoutSecond == 0 {
		f.WriteTimeoutSecond = time.Second * 30
	}
}
