package playwright

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, BrowserChromium, cfg.Browser)
	assert.True(t, cfg.Headless)
	assert.Equal(t, defaultActionTimeout, cfg.ActionTimeout)
	assert.False(t, cfg.Install)
}

func TestMilliseconds(t *testing.T) {
	assert.Equal(t, 1500.0, ms(1500*time.Millisecond))
	assert.Equal(t, 0.0, ms(0))
}

func TestNewDriver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDriver(ctx, DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}
