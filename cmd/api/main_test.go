package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	type testCase struct {
		name    string
		env     map[string]string
		wantErr string
	}

	tests := []testCase{
		{
			name:    "InvalidConfig",
			env:     map[string]string{"DB_PORT": "not-a-number"},
			wantErr: "load config",
		},
		{
			name: "UnreachableDatabase",
			env: map[string]string{
				"DB_HOST": "127.0.0.1",
				"DB_PORT": "1",
			},
			wantErr: "connect to database",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SENTRY_DSN", "")

			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			err := run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
