package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{port: 8080, maxUpload: 1024}
	}

	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, true},
		{"cert only", func(c *Config) { c.tlsCert = "cert.pem" }, false},
		{"key only", func(c *Config) { c.tlsKey = "key.pem" }, false},
		{"port zero", func(c *Config) { c.port = 0 }, false},
		{"port too high", func(c *Config) { c.port = 65536 }, false},
		{"port max", func(c *Config) { c.port = 65535 }, true},
		{"no uploads", func(c *Config) { c.maxUpload = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)

			if tt.ok {
				assert.NoError(t, c.validate())
			} else {
				assert.Error(t, c.validate())
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	assert.Equal(t, "http", (&Config{}).scheme())
	assert.Equal(t, "https", (&Config{tlsCert: "c", tlsKey: "k"}).scheme())
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, "0.0.0.0", cfg.bind)
	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, int64(1<<20), cfg.maxUpload)
	assert.Equal(t, time.Hour, cfg.sessionTimeout)
	assert.False(t, cfg.verbose)
}

func TestConfigEnvironment(t *testing.T) {
	t.Setenv("WORDBOX_PORT", "9090")
	t.Setenv("WORDBOX_SESSION_TIMEOUT", "5m")
	t.Setenv("WORDBOX_MAX_UPLOAD", "2048")
	t.Setenv("WORDBOX_VERBOSE", "true")

	cfg := &Config{}
	cmd := newCmd(cfg)

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, 5*time.Minute, cfg.sessionTimeout)
	assert.Equal(t, int64(2048), cfg.maxUpload)
	assert.True(t, cfg.verbose)

	require.NoError(t, cmd.ParseFlags([]string{"--port", "7070"}))
	assert.Equal(t, 7070, cfg.port)
}
