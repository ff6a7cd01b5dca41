package config

import (
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Host == "" {
		c.Host = "http://localhost:9000"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Config == "" {
		c.Database.Config = "simantic.sqlite"
	}
	if c.Github.TokenURL == "" {
		c.Github.TokenURL = "https://github.com/login/oauth/access_token"
	}
	if c.MarkerFile == "" {
		c.MarkerFile = "simantic.yaml"
	}
	if c.UploadPath == "" {
		c.UploadPath = "/var/lib/simantic/uploads"
	}
}

// String returns the configuration in string format.
func (c *Config) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

type Config struct {
	Logging   Logging
	Host      string `envconfig:"HOST"`
	JWTSecret string `envconfig:"JWT_SECRET"`
	Github    Github
	Google    Google
	Database  Database

	// MarkerFile is the file whose presence classifies a repo as
	// set up for simulation
	MarkerFile string `envconfig:"MARKER_FILE"`

	UploadPath   string `envconfig:"UPLOAD_PATH"`
	PitchDeckURL string `envconfig:"PITCH_DECK_URL"`
}

// Logging provides the logging configuration.
type Logging struct {
	Debug bool `envconfig:"DEBUG"`
	Trace bool `envconfig:"TRACE"`
}

type Github struct {
	ClientID     string `envconfig:"GITHUB_CLIENT_ID"`
	ClientSecret string `envconfig:"GITHUB_CLIENT_SECRET"`
	TokenURL     string `envconfig:"GITHUB_TOKEN_URL"`
	Debug        bool   `envconfig:"GITHUB_DEBUG"`
}

type Google struct {
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
}

type Database struct {
	Driver        string `envconfig:"DATABASE_DRIVER"`
	Config        string `envconfig:"DATABASE_CONFIG"`
	EncryptionKey string `envconfig:"DATABASE_ENCRYPTION_KEY"`
}

func (c *Config) GoogleEnabled() bool {
	return c.Google.ClientID != ""
}
