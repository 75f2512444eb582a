package main

import (
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/infrastructure/env"
)

func TestOptsDefaults(t *testing.T) {
	var o opts
	_, err := flags.NewParser(&o, flags.Default).ParseArgs([]string{"--menu", "Reports", "-t", "Details"})
	require.NoError(t, err)

	assert.Equal(t, ".", o.EnvDir)
	assert.Equal(t, "smoke", o.Name)
	assert.Equal(t, 5*time.Minute, o.Timeout)
	assert.Equal(t, "Reports", o.Menu)
	assert.Equal(t, "Details", o.Tab)
}

func TestOptsRejectsUnknownDriver(t *testing.T) {
	var o opts
	_, err := flags.NewParser(&o, flags.None).ParseArgs([]string{"--driver", "selenium"})
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	base := env.Settings{BaseURL: "https://env.test", Driver: env.DriverRod, Browser: "chromium", Headless: true, LogLevel: "info"}

	got := applyFlags(base, opts{BaseURL: "https://flag.test", Driver: env.DriverPlaywright, Browser: "firefox", Headed: true, LogLevel: "debug"})
	assert.Equal(t, env.Settings{BaseURL: "https://flag.test", Driver: env.DriverPlaywright, Browser: "firefox", Headless: false, LogLevel: "debug"}, got)

	assert.Equal(t, base, applyFlags(base, opts{}))
}
