package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCipherConfig_Key(t *testing.T) {
	t.Setenv(keyEnv, "0123456789abcdef")
	cfg := &CipherConfig{MainConfig: &MainConfig{}}
	assert.Equal(t, "0123456789abcdef", cfg.key())
	cfg.Key = "fedcba9876543210"
	assert.Equal(t, "fedcba9876543210", cfg.key())
}

func TestMainConfig_Status(t *testing.T) {
	cfg := &MainConfig{}
	status := cfg.status(new(bytes.Buffer))
	assert.Equal(t, "sent a to 2 recipient(s)", status("sent %s to %d recipient(s)", "a", 2))
}
