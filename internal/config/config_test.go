package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{
			name: "development defaults pass",
			cfg: Config{
				Env:       "development",
				Port:      "5000",
				JWTSecret: "your-secret-key-change-in-production",
			},
			expectError: false,
		},
		{
			name: "missing port",
			cfg: Config{
				Env:       "development",
				JWTSecret: "secret",
			},
			expectError: true,
		},
		{
			name: "missing jwt secret",
			cfg: Config{
				Env:  "development",
				Port: "5000",
			},
			expectError: true,
		},
		{
			name: "production rejects default jwt secret",
			cfg: Config{
				Env:        "production",
				Port:       "5000",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "strong-password",
			},
			expectError: true,
		},
		{
			name: "production rejects short jwt secret",
			cfg: Config{
				Env:        "production",
				Port:       "5000",
				JWTSecret:  "short",
				DBPassword: "strong-password",
			},
			expectError: true,
		},
		{
			name: "production rejects default db password",
			cfg: Config{
				Env:        "production",
				Port:       "5000",
				JWTSecret:  "a-very-long-production-grade-secret-key",
				DBPassword: "password",
			},
			expectError: true,
		},
		{
			name: "production with strong values passes",
			cfg: Config{
				Env:        "production",
				Port:       "5000",
				JWTSecret:  "a-very-long-production-grade-secret-key",
				DBPassword: "strong-password",
				DBSSLMode:  "require",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
