package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlog/internal/config"
)

func TestConfigPathFromEnv(t *testing.T) {
	t.Setenv(configEnv, "")
	assert.Equal(t, defaultConfigPath, configPathFromEnv())

	t.Setenv(configEnv, "  runs/a.yaml ")
	assert.Equal(t, "runs/a.yaml", configPathFromEnv())

	cmd, opts := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, "runs/a.yaml", opts.configPath)
}

func TestApplyOverrides(t *testing.T) {
	cases := []struct {
		name      string
		base      func(*config.Config)
		args      []string
		input     string
		memory    bool
		transform bool
	}{
		{
			name:   "no flags keeps config",
			args:   nil,
			input:  "../log/output.log",
			memory: true,
		},
		{
			name:   "input path",
			args:   []string{"--input", "run/engine.log"},
			input:  "run/engine.log",
			memory: true,
		},
		{
			name:  "memory off",
			args:  []string{"--memory=false"},
			input: "../log/output.log",
		},
		{
			name:      "transform on",
			args:      []string{"--transform"},
			input:     "../log/output.log",
			memory:    true,
			transform: true,
		},
		{
			name:   "unset flag leaves file value",
			base:   func(cfg *config.Config) { cfg.Plot.Transform = true; cfg.Plot.PlotMemory = false },
			args:   []string{"-c", "other.yaml"},
			input:  "../log/output.log",
			memory: false, transform: true,
		},
		{
			name:   "memory on overrides file",
			base:   func(cfg *config.Config) { cfg.Plot.PlotMemory = false },
			args:   []string{"--memory", "-i", "x.log"},
			input:  "x.log",
			memory: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			if tc.base != nil {
				tc.base(cfg)
			}
			cmd, opts := newRootCmd()
			require.NoError(t, cmd.ParseFlags(tc.args))
			opts.applyOverrides(cmd, cfg)

			assert.Equal(t, tc.input, cfg.Input.LogPath)
			assert.Equal(t, tc.memory, cfg.Plot.PlotMemory)
			assert.Equal(t, tc.transform, cfg.Plot.Transform)
		})
	}
}
