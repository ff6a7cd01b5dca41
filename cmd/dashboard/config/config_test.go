package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	c := &Config{}
	defaults(c)

	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "simantic.yaml", c.MarkerFile)
	assert.Equal(t, "https://github.com/login/oauth/access_token", c.Github.TokenURL)

	c = &Config{
		MarkerFile: "hardware.yaml",
		Github:     Github{TokenURL: "http://127.0.0.1:9999/token"},
	}
	defaults(c)

	assert.Equal(t, "hardware.yaml", c.MarkerFile)
	assert.Equal(t, "http://127.0.0.1:9999/token", c.Github.TokenURL)
}

func TestGoogleEnabled(t *testing.T) {
	c := &Config{}
	assert.False(t, c.GoogleEnabled())

	c.Google.ClientID = "xyz.apps.googleusercontent.com"
	assert.True(t, c.GoogleEnabled())
}
