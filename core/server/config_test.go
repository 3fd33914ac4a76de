package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/server"
)

func TestConfig_AuthEnabled(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"WithKey", "secret", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ApiKey: tt.apiKey}
			assert.Equal(t, tt.want, c.AuthEnabled())
		})
	}
}
