// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/voxstudio-installer/internal/host"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Daemon.URL != "http://127.0.0.1:49613" {
		t.Errorf("Daemon.URL = %q", cfg.Daemon.URL)
	}
	if cfg.Install.ModelVariant != string(host.VariantStandard) {
		t.Errorf("Install.ModelVariant = %q, want standard", cfg.Install.ModelVariant)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installer.toml")
	content := `
version = "1"

[daemon]
url = "http://127.0.0.1:50000"
timeout_secs = 5

[install]
model_variant = "large"
use_gpu = false

[ui]
no_color = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, LoadTOML(cfg, path))
	cfg.SetDefaults()

	assert.Equal(t, "http://127.0.0.1:50000", cfg.Daemon.URL)
	assert.Equal(t, 5, cfg.Daemon.TimeoutSecs)
	assert.Equal(t, 2, cfg.Daemon.MaxRetries, "unset fields keep defaults")
	assert.Equal(t, "large", cfg.Install.ModelVariant)
	assert.True(t, cfg.UI.NoColor)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty daemon url", func(c *Config) { c.Daemon.URL = "" }},
		{"zero timeout", func(c *Config) { c.Daemon.TimeoutSecs = 0 }},
		{"negative retries", func(c *Config) { c.Daemon.MaxRetries = -1 }},
		{"bad model variant", func(c *Config) { c.Install.ModelVariant = "turbo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("VOXSTUDIO_DAEMON_URL", "http://127.0.0.1:60000")
	t.Setenv("VOXSTUDIO_DAEMON_TIMEOUT_SECS", "30")
	t.Setenv("VOXSTUDIO_INSTALL_PATH", "/srv/voxstudio")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Daemon.URL != "http://127.0.0.1:60000" {
		t.Errorf("Daemon.URL = %q", cfg.Daemon.URL)
	}
	if cfg.Daemon.TimeoutSecs != 30 {
		t.Errorf("Daemon.TimeoutSecs = %d, want 30", cfg.Daemon.TimeoutSecs)
	}
	if cfg.Install.Path != "/srv/voxstudio" {
		t.Errorf("Install.Path = %q", cfg.Install.Path)
	}
}

func TestEnvOverrideIgnoresBadTimeout(t *testing.T) {
	t.Setenv("VOXSTUDIO_DAEMON_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Daemon.TimeoutSecs != 10 {
		t.Errorf("Daemon.TimeoutSecs = %d, want default 10", cfg.Daemon.TimeoutSecs)
	}
}

func TestClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Daemon.TimeoutSecs = 7
	cfg.Daemon.MaxRetries = 4

	cc := cfg.ClientConfig()
	assert.Equal(t, cfg.Daemon.URL, cc.BaseURL)
	assert.Equal(t, 7*time.Second, cc.Timeout)
	assert.Equal(t, 4, cc.MaxRetries)
}
