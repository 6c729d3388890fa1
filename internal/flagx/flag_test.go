package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-d=games.db", "-a", "http://localhost"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d=games.db"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value",
			args:         []string{"-i"},
			allowedFlags: []string{"-i"},
			want:         []string{"-i"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-a", "http://h", "-c", "conf.json", "-l", "debug"},
			allowedFlags: []string{"-c", "-a"},
			want:         []string{"-a", "http://h", "-c", "conf.json"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/path/short.json", ConfigFile([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", ConfigFile([]string{"-a", "x", "-config", "/path/long.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
	assert.Equal(t, "/path/2.json", ConfigFile([]string{"-c", "/path/1.json", "-config=/path/2.json"}))
}

func TestEnvFile(t *testing.T) {
	assert.Equal(t, "prod.env", EnvFile([]string{"-e", "prod.env", "-c", "x.json"}))
	assert.Empty(t, EnvFile([]string{"-c", "x.json"}))
}
