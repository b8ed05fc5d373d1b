package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-u", "http://localhost:3000", "-x", "junk"},
			allowed: []string{"-u"},
			want:    []string{"-u", "http://localhost:3000"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "--other=1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value",
			args:    []string{"-v", "-u", "addr"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "-b"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "value looking like flag is not consumed",
			args:    []string{"-u", "-v"},
			allowed: []string{"-u", "-v"},
			want:    []string{"-u", "-v"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"cxpress", "-c", "/path/short.json"}
	assert.Equal(t, "/path/short.json", ConfigFilePath())

	os.Args = []string{"cxpress", "-config", "/path/long.json"}
	assert.Equal(t, "/path/long.json", ConfigFilePath())

	os.Args = []string{"cxpress", "-u", "http://api"}
	assert.Equal(t, "", ConfigFilePath())
}
