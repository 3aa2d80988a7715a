package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("all flags set", func(t *testing.T) {
		os.Args = []string{"testbin",
			"-e", "https://reg.example.com/api/register",
			"-f", "/tmp/bot.db",
			"-n", "25",
			"-w", "1",
			"-t", "5",
			"-p", "profile.yaml",
			"-o", "trace.json",
			"-y",
		}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "https://reg.example.com/api/register", cfg.EndpointURL)
		assert.Equal(t, "/tmp/bot.db", cfg.DatabasePath)
		assert.Equal(t, 25, cfg.TargetCount)
		assert.Equal(t, 1*time.Second, cfg.RequestDelay)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "profile.yaml", cfg.ProfilePath)
		assert.Equal(t, "trace.json", cfg.TraceFile)
		assert.True(t, cfg.DryRun)
	})

	t.Run("no flags keeps defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Empty(t, cfg.EndpointURL)
		assert.Equal(t, "accounts.db", cfg.DatabasePath)
		assert.Equal(t, 10, cfg.TargetCount)
		assert.Equal(t, 2*time.Second, cfg.RequestDelay)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.False(t, cfg.DryRun)
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-zzz", "1", "-n", "3"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, 3, cfg.TargetCount)
	})
}
